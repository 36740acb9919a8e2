package user

import "github.com/shareit-marketplace/shareit-backend/internal/pkg/apperror"

// User is a registered member of the marketplace.
type User struct {
	id    int64
	name  string
	email string
}

// NewUser creates a new User with validated fields. The id is assigned by the
// store on save.
func NewUser(name, email string) (*User, error) {
	if name == "" {
		return nil, apperror.InvalidArgument("user name is required")
	}
	if email == "" {
		return nil, apperror.InvalidArgument("user email is required")
	}
	return &User{name: name, email: email}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id int64, name, email string) *User {
	return &User{id: id, name: name, email: email}
}

func (u *User) ID() int64     { return u.id }
func (u *User) Name() string  { return u.name }
func (u *User) Email() string { return u.email }

// Update applies a partial update: empty fields keep their current value.
func (u *User) Update(name, email string) {
	if name != "" {
		u.name = name
	}
	if email != "" {
		u.email = email
	}
}
