package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"phonebook-server/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate indicates a uniqueness conflict.
var ErrDuplicate = errors.New("record already exists")

// PhoneFilter narrows person listings by presence of a phone number.
type PhoneFilter int

const (
	PhoneAny PhoneFilter = iota
	PhoneSet
	PhoneUnset
)

// PersonStore captures the contact persistence operations resolvers need.
type PersonStore interface {
	Insert(ctx context.Context, person models.Person) (models.Person, error)
	FindByName(ctx context.Context, name string) (models.Person, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Person, error)
	All(ctx context.Context, filter PhoneFilter) ([]models.Person, error)
	Count(ctx context.Context) (int64, error)
	UpdatePhone(ctx context.Context, id primitive.ObjectID, phone string) (models.Person, error)
}

// UserStore captures the identity persistence operations resolvers need.
// SetFriends replaces the whole friends list; concurrent writers race with
// last-write-wins semantics on the user document.
type UserStore interface {
	Insert(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	SetFriends(ctx context.Context, id primitive.ObjectID, friends []primitive.ObjectID) (models.User, error)
}
