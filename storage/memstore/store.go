package memstore

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"phonebook-server/models"
	"phonebook-server/storage"
)

var _ storage.PersonStore = (*PersonStore)(nil)
var _ storage.UserStore = (*UserStore)(nil)

// PersonStore is a map-backed contact store. It enforces the same name
// uniqueness the mongo index does, so it can stand in for it in tests and
// local runs without a database.
type PersonStore struct {
	mu      sync.Mutex
	persons map[primitive.ObjectID]models.Person
}

func NewPersonStore() *PersonStore {
	return &PersonStore{persons: make(map[primitive.ObjectID]models.Person)}
}

func (s *PersonStore) Insert(_ context.Context, person models.Person) (models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.persons {
		if existing.Name == person.Name {
			return models.Person{}, storage.ErrDuplicate
		}
	}
	if person.ID.IsZero() {
		person.ID = primitive.NewObjectID()
	}
	s.persons[person.ID] = person
	return person, nil
}

func (s *PersonStore) FindByName(_ context.Context, name string) (models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, person := range s.persons {
		if person.Name == name {
			return person, nil
		}
	}
	return models.Person{}, storage.ErrNotFound
}

func (s *PersonStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	person, ok := s.persons[id]
	if !ok {
		return models.Person{}, storage.ErrNotFound
	}
	return person, nil
}

func (s *PersonStore) All(_ context.Context, filter storage.PhoneFilter) ([]models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	persons := []models.Person{}
	for _, person := range s.persons {
		switch filter {
		case storage.PhoneSet:
			if !person.HasPhone() {
				continue
			}
		case storage.PhoneUnset:
			if person.HasPhone() {
				continue
			}
		}
		persons = append(persons, person)
	}
	return persons, nil
}

func (s *PersonStore) Count(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.persons)), nil
}

func (s *PersonStore) UpdatePhone(_ context.Context, id primitive.ObjectID, phone string) (models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	person, ok := s.persons[id]
	if !ok {
		return models.Person{}, storage.ErrNotFound
	}
	person.Phone = phone
	s.persons[id] = person
	return person, nil
}

// Delete removes a contact. Mongo-backed deployments have no delete path;
// this exists so tests can produce dangling friend references.
func (s *PersonStore) Delete(_ context.Context, id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.persons, id)
}

// UserStore is a map-backed identity store enforcing username uniqueness.
type UserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *UserStore) Insert(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return models.User{}, storage.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Friends == nil {
		user.Friends = []primitive.ObjectID{}
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (s *UserStore) FindByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

func (s *UserStore) SetFriends(_ context.Context, id primitive.ObjectID, friends []primitive.ObjectID) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	if friends == nil {
		friends = []primitive.ObjectID{}
	}
	user.Friends = friends
	s.users[id] = user
	return user, nil
}
