package models

type MenuItem struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Path   string       `json:"path"`
	Icon   string       `json:"icon"`
	Roles  []string     `json:"roles"`
	Status RecordStatus `json:"isActive"`
}

// VisibleTo reports whether the item is active and role is one of its roles.
func (m MenuItem) VisibleTo(role string) bool {
	if !m.Status.Active() {
		return false
	}
	for _, r := range m.Roles {
		if r == role {
			return true
		}
	}
	return false
}
