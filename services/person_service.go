package services

import (
	"context"
	"errors"
	"net/http"

	"phonebook-server/models"
	"phonebook-server/storage"
	apierrors "phonebook-server/utils/errors"
)

// PersonService owns contact reads and writes.
type PersonService struct {
	persons storage.PersonStore
}

func NewPersonService(persons storage.PersonStore) *PersonService {
	return &PersonService{persons: persons}
}

func (s *PersonService) Count(ctx context.Context) (int, error) {
	count, err := s.persons.Count(ctx)
	if err != nil {
		return 0, apierrors.Wrap(err, apierrors.CodeInternal, "failed to count persons", http.StatusInternalServerError)
	}
	return int(count), nil
}

func (s *PersonService) All(ctx context.Context, filter storage.PhoneFilter) ([]models.Person, error) {
	persons, err := s.persons.All(ctx, filter)
	if err != nil {
		return nil, apierrors.Wrap(err, apierrors.CodeInternal, "failed to list persons", http.StatusInternalServerError)
	}
	return persons, nil
}

// FindByName returns storage.ErrNotFound untranslated so callers can choose
// between a GraphQL null and a NOT_FOUND failure.
func (s *PersonService) FindByName(ctx context.Context, name string) (models.Person, error) {
	return s.persons.FindByName(ctx, name)
}

func (s *PersonService) Create(ctx context.Context, name, phone, street, city string) (models.Person, error) {
	person := models.Person{
		Name:   name,
		Phone:  phone,
		Street: street,
		City:   city,
	}
	created, err := s.persons.Insert(ctx, person)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return models.Person{}, apierrors.Validation("person name must be unique", map[string]any{
				"name": name, "phone": phone, "street": street, "city": city,
			})
		}
		return models.Person{}, apierrors.Wrap(err, apierrors.CodeInternal, "failed to save person", http.StatusInternalServerError)
	}
	return created, nil
}

// ChangePhone looks the contact up by name and replaces its number.
func (s *PersonService) ChangePhone(ctx context.Context, name, phone string) (models.Person, error) {
	person, err := s.persons.FindByName(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Person{}, apierrors.NotFound("person not found: " + name)
	}
	if err != nil {
		return models.Person{}, apierrors.Wrap(err, apierrors.CodeInternal, "failed to look up person", http.StatusInternalServerError)
	}

	updated, err := s.persons.UpdatePhone(ctx, person.ID, phone)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Deleted between lookup and update.
			return models.Person{}, apierrors.NotFound("person not found: " + name)
		}
		return models.Person{}, apierrors.Validation("failed to update phone", map[string]any{
			"name": name, "phone": phone,
		})
	}
	return updated, nil
}
