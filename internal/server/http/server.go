// Package httpserver exposes the files-manager HTTP API.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Taiwopeter-babs/alx-files-manager/internal/errs"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/service"
)

// Server wires services into HTTP handlers.
type Server struct {
	app   service.AppService
	auth  service.AuthService
	files service.FileService
	log   *zap.Logger
}

// New constructs a Server with injected services.
func New(app service.AppService, auth service.AuthService, files service.FileService, log *zap.Logger) *Server {
	return &Server{app: app, auth: auth, files: files, log: log}
}

// Handler returns the routed handler with recover and logging middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /status", s.getStatus)
	mux.HandleFunc("GET /stats", s.getStats)

	mux.HandleFunc("POST /users", s.postUsers)
	mux.HandleFunc("GET /users/me", s.getMe)
	mux.HandleFunc("GET /connect", s.getConnect)
	mux.HandleFunc("GET /disconnect", s.getDisconnect)

	mux.HandleFunc("POST /files", s.postFiles)
	mux.HandleFunc("GET /files", s.getFiles)
	mux.HandleFunc("GET /files/{id}", s.getFileByID)
	mux.HandleFunc("PUT /files/{id}/publish", s.putPublish(true))
	mux.HandleFunc("PUT /files/{id}/unpublish", s.putPublish(false))
	mux.HandleFunc("GET /files/{id}/data", s.getFileData)

	return Recover(s.log, RequestLog(s.log, mux))
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// writeError maps service errors onto the API's error responses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	if msg, ok := errs.ValidationMessage(err); ok {
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
		return
	}
	switch {
	case errors.Is(err, errs.ErrUnauthorized):
		s.writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
	case errors.Is(err, errs.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
	case errors.Is(err, errs.ErrAlreadyExists):
		s.writeJSON(w, http.StatusBadRequest, errorBody{Error: "Already exist"})
	case errors.Is(err, errs.ErrRateLimited):
		s.writeJSON(w, http.StatusTooManyRequests, errorBody{Error: "Too many requests"})
	default:
		s.log.Error("request failed", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Internal error"})
	}
}
