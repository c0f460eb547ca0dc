// Package server provides the development server for lens. It implements
// the same HTTP surface the production dataset service exposes: the SSE
// event stream, the dataset API, and the websocket message endpoint.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/lenslab/lens/client"
)

// Server manages the dev server's HTTP listener.
type Server struct {
	log      *logrus.Entry
	server   *http.Server
	store    *Store
	upgrader websocket.Upgrader
}

// New creates a new Server instance over the given store.
func New(logger *logrus.Entry, store *Store) *Server {
	return &Server{
		log:   logger,
		store: store,
	}
}

// Store returns the server's state store.
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the server's HTTP handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/api/datasets/", s.handleGetDataset)
	mux.HandleFunc("/api/push", s.handlePush)
	mux.HandleFunc("/events", s.handleEvents)
	mux.HandleFunc("/ws", s.handleSocket)

	return h2c.NewHandler(mux, &http2.Server{})
}

// ListenAndServe starts the dev server on the given address.
// It blocks until the server stops or fails.
func (s *Server) ListenAndServe(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.server = &http.Server{Handler: s.Handler()}

	s.log.WithField("addr", listener.Addr().String()).Info("Dev server listening")
	return s.server.Serve(listener)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// handleGetDataset resolves a dataset by name. Pending datasets answer
// 202, unknown datasets 404.
func (s *Server) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/datasets/")
	if name == "" {
		http.Error(w, "dataset name required", http.StatusBadRequest)
		return
	}

	ds, pending := s.store.GetDataset(name)
	if pending {
		w.WriteHeader(http.StatusAccepted)
		return
	}
	if ds == nil {
		http.Error(w, "dataset not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ds)
}

// handlePush accepts a state payload for a dataset and broadcasts it to
// event-stream subscribers.
func (s *Server) handlePush(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Dataset string                 `json:"dataset"`
		State   map[string]interface{} `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.store.ApplyState(req.Dataset, req.State)
	s.log.WithField("dataset", req.Dataset).Debug("State pushed")
	w.WriteHeader(http.StatusOK)
}

// handleEvents provides Server-Sent Events for real-time state updates.
// Clients subscribe with an initializer (dataset name) and receive a
// state_update event whenever that dataset's state changes.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	dataset := r.URL.Query().Get("initializer")
	if dataset == "" {
		http.Error(w, "initializer required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := s.store.Subscribe()
	defer s.store.Unsubscribe(ch)

	// Initial ping confirms the connection
	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	s.log.WithField("dataset", dataset).Debug("Event stream client connected")

	// Send current state immediately so the client has data right away
	if state := s.store.GetState(dataset); state != nil {
		s.writeEvent(w, flusher, state)
	}

	for {
		select {
		case <-r.Context().Done():
			s.log.Debug("Event stream client disconnected")
			return
		case update := <-ch:
			if update.Dataset != dataset {
				continue
			}
			s.writeEvent(w, flusher, update.State)
		}
	}
}

func (s *Server) writeEvent(w http.ResponseWriter, flusher http.Flusher, state map[string]interface{}) {
	data, err := json.Marshal(map[string]interface{}{"state": state})
	if err != nil {
		s.log.WithError(err).Error("Failed to marshal state update")
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", client.EventStateUpdate, data)
	flusher.Flush()
}

// handleSocket accepts the outbound message channel from a client and
// applies the typed messages it carries.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	dataset := r.URL.Query().Get("dataset")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	s.log.WithField("dataset", dataset).Debug("Message channel connected")

	for {
		var msg map[string]interface{}
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.WithError(err).Debug("Message channel closed unexpectedly")
			}
			return
		}

		msgType, _ := msg["type"].(string)
		switch msgType {
		case "filters_update":
			s.store.ApplyFilters(dataset, msg["filters"])
			s.log.WithField("dataset", dataset).Debug("Filters updated")
		default:
			s.log.WithField("type", msgType).Debug("Ignoring unknown message type")
		}
	}
}
