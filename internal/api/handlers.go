package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aescanero/dago-node-preview/internal/preview"
	"github.com/aescanero/dago-node-preview/internal/variables"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// maxBodyBytes bounds request bodies independently of the template limit
const maxBodyBytes = 8 << 20

// ErrorResponse is returned for rejected requests
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidateRequest carries the rows to judge
type ValidateRequest struct {
	Rows []variables.Row `json:"rows"`
}

// BindRoutes registers the preview endpoints on r
func (s *Server) BindRoutes(r *mux.Router) {
	r.HandleFunc("/validate", s.handleValidate).Methods(http.MethodPost)
	r.HandleFunc("/render", s.handleRender).Methods(http.MethodPost)
	r.HandleFunc("/preview", s.handlePreview).Methods(http.MethodPost)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.respondJSON(w, http.StatusOK, s.service.Validate(req.Rows))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req preview.Request
	if !s.decode(w, r, &req) {
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	result, err := s.service.Render(&req)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req preview.Request
	if !s.decode(w, r, &req) {
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	result, err := s.service.Preview(r.Context(), &req)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

// decode reads a JSON body into v and answers 400 on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large"})
			return false
		}
		s.logger.Debug("rejected malformed request", zap.String("path", r.URL.Path), zap.Error(err))
		s.respondJSON(w, http.StatusBadRequest, ErrorResponse{Error: "malformed JSON body"})
		return false
	}
	return true
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, preview.ErrTemplateTooLarge) {
		s.respondJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: err.Error()})
		return
	}

	s.logger.Error("preview request failed", zap.Error(err))
	s.respondJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
