package graph

import (
	"github.com/graphql-go/graphql"

	"phonebook-server/models"
	"phonebook-server/services"
	apierrors "phonebook-server/utils/errors"
)

// authToken is the login mutation payload.
type authToken struct {
	Value string `json:"value"`
}

var yesNoEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "YesNo",
	Values: graphql.EnumValueConfigMap{
		"YES": &graphql.EnumValueConfig{Value: "YES"},
		"NO":  &graphql.EnumValueConfig{Value: "NO"},
	},
})

var addressType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Address",
	Fields: graphql.Fields{
		"street": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: addressField(func(a models.Address) (any, error) {
				return a.Street, nil
			}),
		},
		"city": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: addressField(func(a models.Address) (any, error) {
				return a.City, nil
			}),
		},
	},
})

var personType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Person",
	Fields: graphql.Fields{
		"name": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: personField(func(p models.Person) (any, error) {
				return p.Name, nil
			}),
		},
		"phone": &graphql.Field{
			Type: graphql.String,
			Resolve: personField(func(p models.Person) (any, error) {
				if !p.HasPhone() {
					return nil, nil
				}
				return p.Phone, nil
			}),
		},
		// address is derived from the stored street and city at read time.
		"address": &graphql.Field{
			Type: graphql.NewNonNull(addressType),
			Resolve: personField(func(p models.Person) (any, error) {
				return p.Address(), nil
			}),
		},
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: personField(func(p models.Person) (any, error) {
				return p.ID.Hex(), nil
			}),
		},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"username": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: userField(func(u *services.ResolvedUser) (any, error) {
				return u.User.Username, nil
			}),
		},
		"friends": &graphql.Field{
			Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(personType))),
			Resolve: userField(func(u *services.ResolvedUser) (any, error) {
				return u.Friends, nil
			}),
		},
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: userField(func(u *services.ResolvedUser) (any, error) {
				return u.User.ID.Hex(), nil
			}),
		},
	},
})

var tokenType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Token",
	Fields: graphql.Fields{
		"value": &graphql.Field{
			Type: graphql.NewNonNull(graphql.String),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				token, ok := p.Source.(authToken)
				if !ok {
					return nil, apierrors.ErrInternal
				}
				return token.Value, nil
			},
		},
	},
})

func personField(resolve func(models.Person) (any, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		person, ok := p.Source.(models.Person)
		if !ok {
			return nil, apierrors.ErrInternal
		}
		return resolve(person)
	}
}

func addressField(resolve func(models.Address) (any, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		address, ok := p.Source.(models.Address)
		if !ok {
			return nil, apierrors.ErrInternal
		}
		return resolve(address)
	}
}

func userField(resolve func(*services.ResolvedUser) (any, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		user, ok := p.Source.(*services.ResolvedUser)
		if !ok || user == nil {
			return nil, apierrors.ErrInternal
		}
		return resolve(user)
	}
}

// NewSchema builds the executable schema around the given resolver.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"personCount": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.Int),
				Resolve: r.personCount,
			},
			"allPersons": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(personType))),
				Args: graphql.FieldConfigArgument{
					"phone": &graphql.ArgumentConfig{Type: yesNoEnum},
				},
				Resolve: r.allPersons,
			},
			"findPerson": &graphql.Field{
				Type: personType,
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.findPerson,
			},
			"me": &graphql.Field{
				Type:    userType,
				Resolve: r.me,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"addPerson": &graphql.Field{
				Type: personType,
				Args: graphql.FieldConfigArgument{
					"name":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"phone":  &graphql.ArgumentConfig{Type: graphql.String},
					"street": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"city":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.addPerson,
			},
			"editNumber": &graphql.Field{
				Type: personType,
				Args: graphql.FieldConfigArgument{
					"name":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"phone": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.editNumber,
			},
			"createUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.createUser,
			},
			"login": &graphql.Field{
				Type: tokenType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.login,
			},
			"addAsFriend": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.addAsFriend,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}
