package models

import "time"

type Role struct {
	RoleType    string `json:"roleType"`
	Description string `json:"description,omitempty"`
}

type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         Role         `json:"role"`
	Phone        string       `json:"phone"`
	CreatedAt    time.Time    `json:"createdDate"`
	DeletedAt    *time.Time   `json:"deleteDate,omitempty"`
	Status       RecordStatus `json:"status"`
}
