package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/Taiwopeter-babs/alx-files-manager/internal/errs"
)

type userDoc struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// postUsers registers a new user.
func (s *Server) postUsers(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, errs.ErrMissingEmail)
		return
	}
	u, err := s.auth.Register(r.Context(), body.Email, body.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, userDoc{ID: u.ID.String(), Email: u.Email})
}

// getMe returns the authenticated user.
func (s *Server) getMe(w http.ResponseWriter, r *http.Request) {
	u, err := s.sessionUser(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, userDoc{ID: u.ID.String(), Email: u.Email})
}
