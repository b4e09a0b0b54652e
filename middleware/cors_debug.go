package middleware

import (
	"log"
	"net/http"
)

// CORSDebugMiddleware logs request origins and headers while chasing
// CORS misconfigurations. Wired only when CORS_DEBUG is set.
func CORSDebugMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[CORS Debug] Request from Origin: %s", r.Header.Get("Origin"))
		log.Printf("[CORS Debug] Request Method: %s", r.Method)

		next.ServeHTTP(w, r)

		log.Printf("[CORS Debug] Response Headers: %v", w.Header())
	})
}
