package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError emits a rejection in the same {"error": ...} shape the REST
// handlers use, so clients see one error contract regardless of which layer
// refused the request.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
