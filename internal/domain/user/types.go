package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role is the access level carried by an authenticated account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleCoach Role = "COACH"
	RoleAdmin Role = "ADMIN"
)

func NewRole(value string) (Role, error) {
	role := Role(value)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleCoach, RoleAdmin:
		return true
	default:
		return false
	}
}
