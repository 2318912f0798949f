// Package service provides an in-memory implementation of the configuration
// service contract the editor consumes. It exists for examples and
// end-to-end tests; it is a reference double, not a product service.
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-configform/pkg/configdoc"
)

// Option customises the service.
type Option func(*Service)

// WithUISchema registers the UI schema document served in every envelope.
func WithUISchema(uiSchema map[string]any) Option {
	return func(s *Service) {
		s.uiSchema = uiSchema
	}
}

// WithConfig seeds the stored configuration for an assistant identity.
func WithConfig(assistantID string, config configdoc.Document) Option {
	return func(s *Service) {
		s.configs[assistantID] = config.Clone()
	}
}

// Service stores one configuration document per assistant identity and
// serves the getConfig/updateConfig contract over HTTP.
type Service struct {
	mu        sync.RWMutex
	schema    map[string]any
	uiSchema  map[string]any
	configs   map[string]configdoc.Document
	saveError error
}

// New constructs a Service that publishes the supplied JSON schema.
func New(schemaRaw []byte, options ...Option) (*Service, error) {
	if len(schemaRaw) == 0 {
		return nil, errors.New("service: schema payload is required")
	}
	var schema map[string]any
	if err := json.Unmarshal(schemaRaw, &schema); err != nil {
		return nil, fmt.Errorf("service: parse schema: %w", err)
	}

	s := &Service{
		schema:  schema,
		configs: make(map[string]configdoc.Document),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s, nil
}

// Handler mounts the service routes on a chi router.
func (s *Service) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/assistants/{assistantID}/config", s.handleGet)
	r.Put("/assistants/{assistantID}/config", s.handlePut)
	return r
}

// Config returns a copy of the stored document for the assistant identity.
func (s *Service) Config(assistantID string) (configdoc.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	config, ok := s.configs[assistantID]
	if !ok {
		return nil, false
	}
	return config.Clone(), true
}

// SetConfig replaces the stored document for the assistant identity.
func (s *Service) SetConfig(assistantID string, config configdoc.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[assistantID] = config.Clone()
}

// FailSaves makes every subsequent update request respond with a server
// error until called again with nil. Used to exercise save-failure paths.
func (s *Service) FailSaves(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveError = err
}

type envelopeResponse struct {
	Config     map[string]any `json:"config"`
	JSONSchema map[string]any `json:"jsonSchema"`
	UISchema   map[string]any `json:"uiSchema,omitempty"`
}

type updateRequest struct {
	Config map[string]any `json:"config"`
}

func (s *Service) handleGet(w http.ResponseWriter, r *http.Request) {
	assistantID := chi.URLParam(r, "assistantID")

	s.mu.RLock()
	config, ok := s.configs[assistantID]
	if ok {
		config = config.Clone()
	}
	response := envelopeResponse{
		Config:     config,
		JSONSchema: s.schema,
		UISchema:   s.uiSchema,
	}
	s.mu.RUnlock()

	if !ok {
		http.Error(w, "unknown assistant", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Service) handlePut(w http.ResponseWriter, r *http.Request) {
	assistantID := chi.URLParam(r, "assistantID")

	var request updateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if request.Config == nil {
		http.Error(w, "config is required", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	if s.saveError != nil {
		err := s.saveError
		s.mu.Unlock()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if _, ok := s.configs[assistantID]; !ok {
		s.mu.Unlock()
		http.Error(w, "unknown assistant", http.StatusNotFound)
		return
	}
	saved := configdoc.Document(request.Config).Clone()
	s.configs[assistantID] = saved
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, updateRequest{Config: saved})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
