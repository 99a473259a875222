package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/tycoon/pkg/api/handlers"
	"github.com/cbodonnell/tycoon/pkg/api/middleware"
	"github.com/cbodonnell/tycoon/pkg/log"
	"github.com/cbodonnell/tycoon/pkg/messages"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port           int
	TLS            *TLSConfig
	Games          handlers.GameService
	Viewers        handlers.ViewerServer
	AllowedOrigins []string
}

// NewRouter returns the API routes wrapped in the CORS and logging middleware.
func NewRouter(opts NewAPIServerOptions) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.NewLoggingMiddleware())
	r.Use(middleware.NewBodyLimitMiddleware(messages.MessageBufferSize))

	r.HandleFunc("/games", handlers.HandleCreateGame(opts.Games)).Methods(http.MethodPost)
	r.HandleFunc("/games/join", handlers.HandleJoinGame(opts.Games)).Methods(http.MethodPost)
	r.HandleFunc("/games/{gameID}", handlers.HandleGetGame(opts.Games)).Methods(http.MethodGet)
	r.HandleFunc("/games/{gameID}/start", handlers.HandleStartGame(opts.Games)).Methods(http.MethodPost)
	r.HandleFunc("/games/{gameID}/actions", handlers.HandleApplyAction(opts.Games)).Methods(http.MethodPost)
	if opts.Viewers != nil {
		r.HandleFunc("/games/{gameID}/ws", handlers.HandleWatchGame(opts.Games, opts.Viewers)).Methods(http.MethodGet)
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

// NewAPIServer creates a new http.Server for handling API requests
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
