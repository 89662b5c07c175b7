package middleware

import (
	"net/http"
)

// forgeryValidator checks the double-submit token carried by a request.
type forgeryValidator interface {
	Validate(r *http.Request) error
}

// CSRF returns middleware that enforces anti-forgery validation on mutating
// methods. Safe methods (GET, HEAD, OPTIONS) pass through untouched; any
// validation failure is a hard 403.
func CSRF(validator forgeryValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			if err := validator.Validate(r); err != nil {
				writeJSONError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
