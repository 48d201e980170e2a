// Package server provides the HTTP service that runs the induction engine
// on demand and keeps a history of past runs.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wespiper/ufr-ds/server/dao"
	"github.com/wespiper/ufr-ds/server/middle"
	"github.com/wespiper/ufr-ds/server/token"
)

// Server is a run server: an HTTP API in front of a dao.Store.
type Server struct {
	router http.Handler
	store  dao.Store
}

// New creates a Server using the given config, connecting to its
// configured database.
func New(cfg Config) (Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return Server{}, fmt.Errorf("invalid config: %w", err)
	}

	store, err := cfg.DB.Connect()
	if err != nil {
		return Server{}, fmt.Errorf("connect to DB: %w", err)
	}

	a := api{store: store}

	r := chi.NewRouter()
	r.Use(middle.DontPanic())

	r.Route(PathPrefix, func(r chi.Router) {
		r.Get("/info", Endpoint(a.epGetInfo))

		r.Group(func(r chi.Router) {
			r.Use(middle.RequireAPIKey(cfg.TokenSecret, cfg.UnauthDelay()))
			r.Post("/runs", Endpoint(a.epCreateRun))
			r.Get("/runs/{id}", Endpoint(a.epGetRun))
		})
	})

	return Server{router: r, store: store}, nil
}

// IssueToken returns the single non-expiring bearer token callers must
// present to reach the authenticated routes, derived from secret.
func IssueToken(secret []byte) (string, error) {
	return token.Generate(secret)
}

// ServeForever starts listening on addr:port and blocks until the process
// is terminated or the listener fails.
func (s Server) ServeForever(addr string, port int) {
	listenOn := fmt.Sprintf("%s:%d", addr, port)
	log.Printf("INFO  Listening on %s", listenOn)
	if err := http.ListenAndServe(listenOn, s.router); err != nil {
		log.Fatalf("FATAL server exited: %s", err.Error())
	}
}

// Close releases the resources held by the server's store.
func (s Server) Close() error {
	return s.store.Close()
}
