// Package server exposes the routing manager over HTTP, with a WebSocket
// endpoint for clients that submit requests over a long-lived connection.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bridgekit-ai/aibridge/providers"
	"github.com/bridgekit-ai/aibridge/types"
)

// Processor is the part of the manager the server depends on
type Processor interface {
	ProcessRequest(ctx context.Context, req types.Request, crit types.SelectionCriteria) (*types.Response, error)
	CheckAllProviderHealth(ctx context.Context) map[providers.Provider]types.ProviderHealth
	ProviderHealth() map[providers.Provider]types.ProviderHealth
	UsageStats() map[providers.Provider]types.UsageStats
}

// ServerOptions represents the configuration options for the server
type ServerOptions struct {
	Verbose bool
}

// Server serves the routing API
type Server struct {
	port      int
	opts      ServerOptions
	processor Processor
	server    *http.Server
}

// NewServer creates a new routing server
func NewServer(port int, processor Processor, opts ServerOptions) (*Server, error) {
	if processor == nil {
		return nil, fmt.Errorf("requires processor")
	}
	return &Server{
		port:      port,
		opts:      opts,
		processor: processor,
	}, nil
}

// Start starts the HTTP server
func Start(port int, processor Processor, opts ServerOptions) error {
	server, err := NewServer(port, processor, opts)
	if err != nil {
		return err
	}
	return server.Start()
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting server on %s", addr)
	server := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}
	s.server = server

	err := server.ListenAndServe()
	if err != nil {
		if err == http.ErrServerClosed {
			log.Println("Server shutdown gracefully")
			return nil
		}
		return err
	}
	return nil
}

// Handler returns the route mux, exposed separately for tests
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/request", s.handleRequest)
	mux.HandleFunc("/v1/stream", s.handleWebSocket)
	mux.HandleFunc("/v1/health", s.handleHealth)
	mux.HandleFunc("/v1/usage", s.handleUsage)
	mux.HandleFunc("/shutdown", s.handleShutdown)
	return mux
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// apiRequest is the wire form of one routing call
type apiRequest struct {
	Request  types.Request            `json:"request"`
	Criteria *types.SelectionCriteria `json:"criteria,omitempty"`
}

type apiError struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, apiError{Error: "method not allowed"})
		return
	}

	var body apiRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: fmt.Sprintf("decode request: %v", err)})
		return
	}

	crit := types.DefaultCriteria(body.Request.Task)
	if body.Criteria != nil {
		crit = *body.Criteria
		if crit.Task == "" {
			crit.Task = body.Request.Task
		}
	}

	resp, err := s.processor.ProcessRequest(r.Context(), body.Request, crit)
	if err != nil {
		writeJSON(w, statusFromError(err), apiError{
			Error: err.Error(),
			Kind:  string(providers.KindOf(err)),
		})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	// ?check=true forces a live probe instead of returning cached records
	health := s.processor.ProviderHealth()
	if r.URL.Query().Get("check") == "true" {
		health = s.processor.CheckAllProviderHealth(r.Context())
	}
	writeJSON(w, http.StatusOK, health)
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.processor.UsageStats())
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// handleWebSocket accepts a stream of apiRequest JSON frames and answers
// each with the response or an error frame, in order.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var body apiRequest
		if err := conn.ReadJSON(&body); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}

		crit := types.DefaultCriteria(body.Request.Task)
		if body.Criteria != nil {
			crit = *body.Criteria
			if crit.Task == "" {
				crit.Task = body.Request.Task
			}
		}

		resp, err := s.processor.ProcessRequest(r.Context(), body.Request, crit)
		if err != nil {
			if werr := conn.WriteJSON(apiError{
				Error: err.Error(),
				Kind:  string(providers.KindOf(err)),
			}); werr != nil {
				log.Printf("Failed to send error frame: %v", werr)
				return
			}
			continue
		}
		if err := conn.WriteJSON(resp); err != nil {
			log.Printf("Failed to send response frame: %v", err)
			return
		}
	}
}

func (s *Server) handleShutdown(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down...\n"))
	go func() {
		time.Sleep(200 * time.Millisecond)
		s.Shutdown(context.Background())
	}()
}

func statusFromError(err error) int {
	switch providers.KindOf(err) {
	case providers.ErrKindInvalidRequest:
		return http.StatusBadRequest
	case providers.ErrKindQuotaExceeded:
		return http.StatusTooManyRequests
	case providers.ErrKindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
