// Package serverless serves the newsletter router from a function runtime
// that calls a plain http handler per request.
package serverless

import (
	"encoding/json"
	"net/http"
	"sync"

	"newsletter/pkg/config"
	"newsletter/pkg/logger"
	app "newsletter/services/newsletter/internal/app"
)

var (
	handler http.Handler
	initErr error
	once    sync.Once
)

func initApp() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config: %v", err)
		initErr = err
		return
	}

	application, err := app.NewAppWithLogger(cfg, log)
	if err != nil {
		initErr = err
		return
	}
	handler = application.Handler()
}

// Handler builds the router on first use and serves r with it.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(initApp)
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Service unavailable"})
		return
	}
	handler.ServeHTTP(w, r)
}
