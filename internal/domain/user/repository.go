package user

import "context"

// Repository is the persistence port for users.
type Repository interface {
	Save(ctx context.Context, u *User) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id int64) error
}
