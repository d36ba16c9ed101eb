package identity

// Role gates which lifecycle transitions an account may invoke
type Role string

const (
	RoleLeader  Role = "leader"
	RoleManager Role = "manager"
)

// Valid reports whether the role is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleLeader || r == RoleManager
}

// Account represents a registered actor
type Account struct {
	ID             string `json:"id"`
	DisplayName    string `json:"display_name"`
	Username       string `json:"username"`
	PasswordSecret string `json:"password_secret"`
	Role           Role   `json:"role"`
}
