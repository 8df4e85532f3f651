package main

import (
	"time"

	"github.com/gorilla/mux"

	"phonebook-server/config"
	"phonebook-server/graph"
	"phonebook-server/handlers"
	"phonebook-server/middleware"
	"phonebook-server/services"
	"phonebook-server/storage"
)

// buildRouter wires stores, services, schema, and middleware into the HTTP
// router. Pulled out of main so tests can stand up the full stack.
func buildRouter(cfg config.Config, personStore storage.PersonStore, userStore storage.UserStore) (*mux.Router, error) {
	personService := services.NewPersonService(personStore)
	userService := services.NewUserService(userStore, personStore)
	codec := services.NewTokenCodec(cfg.JWTSecret)
	authService := services.NewAuthService(codec, userService)

	resolver := graph.NewResolver(personService, userService, codec, cfg.LoginPassword)
	schema, err := graph.NewSchema(resolver)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middleware.ErrorMiddleware())

	graphqlHandler := handlers.NewGraphQLHandler(&schema)
	r.Handle("/graphql", middleware.AuthMiddleware(authService)(graphqlHandler)).
		Methods("GET", "POST", "OPTIONS")
	r.Handle("/health", handlers.NewHealthHandler(time.Now())).Methods("GET")

	return r, nil
}
