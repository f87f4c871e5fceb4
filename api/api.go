// Package api exposes the polynomial store and its operations over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/vocdoni/davinci-poly/crypto/kzg"
	"github.com/vocdoni/davinci-poly/log"
	"github.com/vocdoni/davinci-poly/storage"
)

const (
	maxRequestBodyLog = 512      // Maximum length of request body to log
	maxRequestBody    = 64 << 20 // Maximum request body size
	// DefaultMaxPoints bounds the points of a single evaluate request.
	DefaultMaxPoints = 1 << 16
)

// APIConfig type represents the configuration for the API HTTP server.
type APIConfig struct {
	Host      string
	Port      int
	Storage   *storage.Storage
	Prover    *kzg.Prover // Optional: enables the open endpoint
	MaxPoints int         // Optional: defaults to DefaultMaxPoints
}

// API type represents the API HTTP server.
type API struct {
	router    *chi.Mux
	storage   *storage.Storage
	prover    *kzg.Prover
	maxPoints int
	addr      string
	server    *http.Server
}

// New creates a new API instance with the given configuration. The server is
// started by Start.
func New(conf *APIConfig) (*API, error) {
	if conf == nil {
		return nil, fmt.Errorf("missing API configuration")
	}
	if conf.Storage == nil {
		return nil, fmt.Errorf("missing storage instance")
	}
	a := &API{
		storage:   conf.Storage,
		prover:    conf.Prover,
		maxPoints: conf.MaxPoints,
		addr:      net.JoinHostPort(conf.Host, fmt.Sprint(conf.Port)),
	}
	if a.maxPoints <= 0 {
		a.maxPoints = DefaultMaxPoints
	}
	a.initRouter()
	return a, nil
}

// Router returns the chi router for testing purposes
func (a *API) Router() *chi.Mux {
	return a.router
}

// Start serves the API in the background. Listen errors other than a
// shutdown are fatal.
func (a *API) Start() {
	a.server = &http.Server{
		Addr:              a.addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Infow("starting API server", "addr", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
}

// Stop gracefully shuts the server down.
func (a *API) Stop(ctx context.Context) error {
	if a.server == nil {
		return nil
	}
	return a.server.Shutdown(ctx)
}

// registerHandlers registers all the HTTP handlers for the API endpoints.
func (a *API) registerHandlers() {
	log.Debugw("register handler", "endpoint", PingEndpoint, "method", "GET")
	a.router.Get(PingEndpoint, func(w http.ResponseWriter, r *http.Request) {
		httpWriteOK(w)
	})
	log.Debugw("register handler", "endpoint", InfoEndpoint, "method", "GET")
	a.router.Get(InfoEndpoint, a.info)

	log.Debugw("register handler", "endpoint", PolynomialsEndpoint, "method", "POST")
	a.router.Post(PolynomialsEndpoint, a.newPolynomial)
	log.Debugw("register handler", "endpoint", PolynomialsEndpoint, "method", "GET")
	a.router.Get(PolynomialsEndpoint, a.listPolynomials)
	log.Debugw("register handler", "endpoint", PolynomialEndpoint, "method", "GET")
	a.router.Get(PolynomialEndpoint, a.polynomial)
	log.Debugw("register handler", "endpoint", PolynomialEndpoint, "method", "DELETE")
	a.router.Delete(PolynomialEndpoint, a.deletePolynomial)
	log.Debugw("register handler", "endpoint", PolynomialEvaluateEndpoint, "method", "POST")
	a.router.Post(PolynomialEvaluateEndpoint, a.evaluate)
	log.Debugw("register handler", "endpoint", PolynomialDivideEndpoint, "method", "POST")
	a.router.Post(PolynomialDivideEndpoint, a.divide)
	log.Debugw("register handler", "endpoint", PolynomialOpenEndpoint, "method", "POST")
	a.router.Post(PolynomialOpenEndpoint, a.open)
	log.Debugw("register handler", "endpoint", PolynomialBlobProofEndpoint, "method", "POST")
	a.router.Post(PolynomialBlobProofEndpoint, a.blobProof)
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() {
	a.router = chi.NewRouter()
	a.router.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}).Handler)
	a.router.Use(maxBodyMiddleware(maxRequestBody))
	a.router.Use(loggingMiddleware(maxRequestBodyLog))
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Throttle(100))
	a.router.Use(middleware.Timeout(45 * time.Second))

	a.registerHandlers()
}
