package models

import (
	"encoding/json"
	"fmt"
)

// RecordStatus is the soft-state of a durable record. Records are never
// physically removed; a logical delete moves them to StatusDeleted.
//
// On the wire it renders as a boolean flag (true while active).
type RecordStatus string

const (
	StatusActive  RecordStatus = "active"
	StatusDeleted RecordStatus = "deleted"
)

func StatusFromBool(active bool) RecordStatus {
	if active {
		return StatusActive
	}
	return StatusDeleted
}

func (s RecordStatus) Active() bool {
	return s == StatusActive
}

func (s RecordStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Active())
}

func (s *RecordStatus) UnmarshalJSON(data []byte) error {
	var active bool
	if err := json.Unmarshal(data, &active); err == nil {
		*s = StatusFromBool(active)
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("record status must be a boolean: %w", err)
	}

	switch RecordStatus(raw) {
	case StatusActive, StatusDeleted:
		*s = RecordStatus(raw)
		return nil
	}
	return fmt.Errorf("unknown record status %q", raw)
}
