package graph

import (
	"errors"
	"net/http"

	"github.com/graphql-go/graphql"

	"phonebook-server/services"
	"phonebook-server/storage"
	apierrors "phonebook-server/utils/errors"
)

// Resolver holds the dependencies GraphQL operations execute against.
type Resolver struct {
	persons *services.PersonService
	users   *services.UserService
	codec   *services.TokenCodec

	// loginPassword is the single shared login secret every account uses.
	// A per-user credential scheme deliberately does not exist here.
	loginPassword string
}

func NewResolver(persons *services.PersonService, users *services.UserService, codec *services.TokenCodec, loginPassword string) *Resolver {
	return &Resolver{
		persons:       persons,
		users:         users,
		codec:         codec,
		loginPassword: loginPassword,
	}
}

func (r *Resolver) personCount(p graphql.ResolveParams) (any, error) {
	return r.persons.Count(p.Context)
}

func (r *Resolver) allPersons(p graphql.ResolveParams) (any, error) {
	filter := storage.PhoneAny
	if value, ok := p.Args["phone"].(string); ok {
		if value == "YES" {
			filter = storage.PhoneSet
		} else {
			filter = storage.PhoneUnset
		}
	}
	return r.persons.All(p.Context, filter)
}

func (r *Resolver) findPerson(p graphql.ResolveParams) (any, error) {
	name := p.Args["name"].(string)
	person, err := r.persons.FindByName(p.Context, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apierrors.Wrap(err, apierrors.CodeInternal, "failed to look up person", http.StatusInternalServerError)
	}
	return person, nil
}

func (r *Resolver) me(p graphql.ResolveParams) (any, error) {
	currentUser := CurrentUser(p.Context)
	if currentUser == nil {
		return nil, nil
	}
	return currentUser, nil
}

func (r *Resolver) addPerson(p graphql.ResolveParams) (any, error) {
	currentUser := CurrentUser(p.Context)
	if currentUser == nil {
		return nil, apierrors.ErrNotAuthenticated
	}

	name := p.Args["name"].(string)
	street := p.Args["street"].(string)
	city := p.Args["city"].(string)
	phone, _ := p.Args["phone"].(string)

	person, err := r.persons.Create(p.Context, name, phone, street, city)
	if err != nil {
		return nil, err
	}

	// Second write on a different document; a crash between the two leaves
	// a person referenced by nobody.
	if _, err := r.users.AppendFriend(p.Context, currentUser.User.ID, person); err != nil {
		return nil, err
	}
	return person, nil
}

func (r *Resolver) editNumber(p graphql.ResolveParams) (any, error) {
	name := p.Args["name"].(string)
	phone := p.Args["phone"].(string)
	return r.persons.ChangePhone(p.Context, name, phone)
}

func (r *Resolver) createUser(p graphql.ResolveParams) (any, error) {
	username := p.Args["username"].(string)
	user, err := r.users.Create(p.Context, username)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Resolver) login(p graphql.ResolveParams) (any, error) {
	username := p.Args["username"].(string)
	password := p.Args["password"].(string)

	// Unknown user and wrong password produce the same error.
	user, err := r.users.FindByUsername(p.Context, username)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && password != r.loginPassword) {
		return nil, apierrors.Validation("wrong credentials", nil)
	}
	if err != nil {
		return nil, apierrors.Wrap(err, apierrors.CodeInternal, "failed to look up user", http.StatusInternalServerError)
	}

	value, err := r.codec.Issue(user)
	if err != nil {
		return nil, apierrors.Wrap(err, apierrors.CodeInternal, "failed to sign token", http.StatusInternalServerError)
	}
	return authToken{Value: value}, nil
}

func (r *Resolver) addAsFriend(p graphql.ResolveParams) (any, error) {
	currentUser := CurrentUser(p.Context)
	if currentUser == nil {
		return nil, apierrors.ErrNotAuthenticated
	}

	name := p.Args["name"].(string)
	person, err := r.persons.FindByName(p.Context, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apierrors.NotFound("person not found: " + name)
	}
	if err != nil {
		return nil, apierrors.Wrap(err, apierrors.CodeInternal, "failed to look up person", http.StatusInternalServerError)
	}

	updated, err := r.users.AddFriend(p.Context, currentUser.User.ID, person)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
