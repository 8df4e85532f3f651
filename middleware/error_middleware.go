package middleware

import (
	"encoding/json"
	"log"
	"net/http"

	apierrors "phonebook-server/utils/errors"
)

// ErrorMiddleware turns panics anywhere below it into a JSON 500 response.
func ErrorMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Printf("panic recovered: %v", rec)
					WriteError(w, apierrors.ErrInternal)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WriteError writes an APIError as a JSON response with its HTTP status.
func WriteError(w http.ResponseWriter, err error) {
	apiErr, ok := err.(*apierrors.APIError)
	if !ok {
		apiErr = apierrors.Wrap(err, apierrors.CodeInternal, "unexpected error", http.StatusInternalServerError)
	}
	if apiErr.Status >= 500 {
		log.Printf("server error: %v", apiErr)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(apiErr)
}
