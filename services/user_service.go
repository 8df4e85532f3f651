package services

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"phonebook-server/models"
	"phonebook-server/storage"
	apierrors "phonebook-server/utils/errors"
)

// ResolvedUser is a user document with its friend references dereferenced
// into full Person records. This is the shape resolvers hand to the API.
type ResolvedUser struct {
	User    models.User
	Friends []models.Person
}

// UserService owns identity reads and friends-list maintenance. It needs the
// person store to dereference friend ids.
type UserService struct {
	users   storage.UserStore
	persons storage.PersonStore
}

func NewUserService(users storage.UserStore, persons storage.PersonStore) *UserService {
	return &UserService{users: users, persons: persons}
}

func (s *UserService) Create(ctx context.Context, username string) (ResolvedUser, error) {
	user := models.User{Username: username, Friends: []primitive.ObjectID{}}
	created, err := s.users.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return ResolvedUser{}, apierrors.Validation("username must be unique", map[string]any{
				"username": username,
			})
		}
		return ResolvedUser{}, apierrors.Wrap(err, apierrors.CodeInternal, "failed to save user", http.StatusInternalServerError)
	}
	return ResolvedUser{User: created, Friends: []models.Person{}}, nil
}

// FindByUsername returns storage.ErrNotFound untranslated; login folds it
// into its single wrong-credentials error.
func (s *UserService) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// Load fetches a user by id and eagerly resolves its friends.
func (s *UserService) Load(ctx context.Context, id primitive.ObjectID) (ResolvedUser, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return ResolvedUser{}, err
	}
	return s.resolve(ctx, user)
}

// AddFriend puts the person on the user's friends list if it is not already
// there, keyed by person id. Calling it twice with the same person is a no-op
// the second time. The user document is re-read before the check; two
// concurrent calls still race with last-write-wins.
func (s *UserService) AddFriend(ctx context.Context, userID primitive.ObjectID, person models.Person) (ResolvedUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ResolvedUser{}, apierrors.NotFound("user not found")
		}
		return ResolvedUser{}, apierrors.Wrap(err, apierrors.CodeInternal, "failed to look up user", http.StatusInternalServerError)
	}
	friends := user.Friends
	if !user.IsFriend(person.ID) {
		friends = append(friends, person.ID)
	}
	return s.saveFriends(ctx, user.ID, friends)
}

// AppendFriend records the person on the user's friends list without
// checking for duplicates.
func (s *UserService) AppendFriend(ctx context.Context, userID primitive.ObjectID, person models.Person) (ResolvedUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ResolvedUser{}, apierrors.NotFound("user not found")
		}
		return ResolvedUser{}, apierrors.Wrap(err, apierrors.CodeInternal, "failed to look up user", http.StatusInternalServerError)
	}
	return s.saveFriends(ctx, user.ID, append(user.Friends, person.ID))
}

func (s *UserService) saveFriends(ctx context.Context, id primitive.ObjectID, friends []primitive.ObjectID) (ResolvedUser, error) {
	updated, err := s.users.SetFriends(ctx, id, friends)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ResolvedUser{}, apierrors.NotFound("user not found")
		}
		return ResolvedUser{}, apierrors.Wrap(err, apierrors.CodeInternal, "failed to save user", http.StatusInternalServerError)
	}
	return s.resolve(ctx, updated)
}

// resolve dereferences friend ids into persons. Friends are weak references:
// ids whose person no longer exists are skipped rather than failing the read.
func (s *UserService) resolve(ctx context.Context, user models.User) (ResolvedUser, error) {
	friends := make([]models.Person, 0, len(user.Friends))
	for _, friendID := range user.Friends {
		person, err := s.persons.FindByID(ctx, friendID)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return ResolvedUser{}, apierrors.Wrap(err, apierrors.CodeInternal, "failed to resolve friends", http.StatusInternalServerError)
		}
		friends = append(friends, person)
	}
	return ResolvedUser{User: user, Friends: friends}, nil
}
