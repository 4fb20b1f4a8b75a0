// Package auth carries the caller identity that the token middleware
// extracts. Use cases receive it explicitly instead of reading globals.
package auth

const (
	RoleOwner        = "owner"
	RoleProfessional = "professional"
	RoleReception    = "reception"
)

type Session struct {
	UserID  uint
	SalonID uint
	Role    string
}

func (s Session) Valid() bool {
	return s.UserID != 0 && s.SalonID != 0
}
