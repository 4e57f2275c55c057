package domain

import (
	"strings"
	"time"
)

// Role is the authorization role carried by a user and by the tokens issued to it.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User models a registered account. PasswordHash never leaves the service layer;
// callers outside it receive a UserView or Profile instead.
type User struct {
	ID           string
	Email        string
	Name         string
	Telephone    string
	Role         Role
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserView is the public projection of a user: no password hash, no timestamps.
type UserView struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Telephone string `json:"telephone,omitempty"`
	Role      Role   `json:"role"`
}

// Profile is the projection returned by profile reads and updates.
type Profile struct {
	UserView
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// View strips the credential and bookkeeping fields from u.
func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Telephone: u.Telephone,
		Role:      u.Role,
	}
}

// Profile strips the credential from u but keeps its timestamps.
func (u *User) Profile() *Profile {
	return &Profile{
		UserView:  u.View(),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserPatch lists the mutable fields of a user. Nil fields are left untouched.
type UserPatch struct {
	Name      *string
	Email     *string
	Telephone *string
	Role      *Role
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Telephone == nil && p.Role == nil
}

// NormalizeEmail returns the canonical form used for uniqueness and lookups.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
