package handlers

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
)

// NewGraphQLHandler serves the GraphQL endpoint. GET requests from a browser
// get the playground; POSTs execute operations with the request context, so
// values placed there by the auth middleware reach the resolvers.
func NewGraphQLHandler(schema *graphql.Schema) http.Handler {
	return handler.New(&handler.Config{
		Schema:     schema,
		Pretty:     true,
		Playground: true,
	})
}
