// Package server exposes the cartkeeper HTTP API.
//
// The API accepts free-form voice-command text, runs it through the
// interpretation engine, and applies the resulting command to the shopping
// list or the product catalog. It also serves list, suggestion, and swagger
// endpoints. JSON in, JSON out; 400 for malformed or unresolvable commands,
// 404 when a removal target doesn't exist.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/cartkeeper/cartkeeper/docs" // swagger spec registration
	"github.com/cartkeeper/cartkeeper/internal/interpret"
	"github.com/cartkeeper/cartkeeper/internal/store"
	"github.com/cartkeeper/cartkeeper/internal/suggest"
)

// Server is the cartkeeper API server.
type Server struct {
	port   int
	engine *interpret.Engine
	store  *store.Store
	tables *suggest.Tables
	now    func() time.Time
	server *http.Server
}

// New creates a Server on the given port.
func New(port int, engine *interpret.Engine, st *store.Store, tables *suggest.Tables) *Server {
	return &Server{
		port:   port,
		engine: engine,
		store:  st,
		tables: tables,
		now:    time.Now,
	}
}

// Listen starts the HTTP server. It blocks until the context is cancelled.
func (s *Server) Listen(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /voice-command", s.handleVoiceCommand)
	mux.HandleFunc("POST /search", s.handleSearch)
	mux.HandleFunc("GET /suggestions", s.handleSuggestions)
	mux.HandleFunc("GET /list", s.handleList)
	mux.HandleFunc("DELETE /item/{id}", s.handleDeleteItem)

	// Swagger UI — serves the generated OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	handler := cors.Default().Handler(requestID(mux))

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("api server listening", "port", s.port)

	go func() {
		<-ctx.Done()
		slog.Info("api server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("api listen: %w", err)
	}
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(ctx)
	}
	return nil
}

// requestID tags every request with a UUID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		slog.Debug("request received", "request_id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// statusResponse is the envelope for command outcomes and errors.
type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`

	// Item is the list entry created by an add command.
	Item *store.ShoppingItem `json:"item,omitempty"`

	// SubstituteSuggestions lists alternatives for an added item.
	SubstituteSuggestions []string `json:"substitute_suggestions,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, statusResponse{Status: "error", Message: message})
}
