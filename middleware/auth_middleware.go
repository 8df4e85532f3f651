package middleware

import (
	"net/http"

	"phonebook-server/graph"
	"phonebook-server/services"
)

// AuthMiddleware resolves the current user from the Authorization header and
// places it on the request context for resolvers. Requests without a bearer
// token continue anonymously; requests with an invalid token fail outright
// with 401 instead of degrading to anonymous.
func AuthMiddleware(authService *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			currentUser, err := authService.CurrentUser(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				WriteError(w, err)
				return
			}
			if currentUser != nil {
				r = r.WithContext(graph.WithCurrentUser(r.Context(), currentUser))
			}
			next.ServeHTTP(w, r)
		})
	}
}
