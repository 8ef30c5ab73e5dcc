package handler

import (
	"net/http"

	"newsletter/services/newsletter/serverless"
)

// Handler is the entry point for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	serverless.Handler(w, r)
}
