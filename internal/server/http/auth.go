package httpserver

import (
	"encoding/base64"
	"net"
	"net/http"
	"strings"

	"github.com/Taiwopeter-babs/alx-files-manager/internal/errs"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/model"
)

const tokenHeader = "X-Token"

// decodeBasicAuth parses "Basic <base64(email:password)>". The decoded
// payload splits at the first colon only, so passwords may contain colons.
func decodeBasicAuth(headerValue string) (email, password string, err error) {
	scheme, b64, found := strings.Cut(headerValue, " ")
	if !found || scheme != "Basic" || b64 == "" {
		return "", "", errs.ErrUnauthorized
	}
	decoded, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", "", errs.ErrUnauthorized
	}
	email, password, found = strings.Cut(string(decoded), ":")
	if !found {
		return "", "", errs.ErrUnauthorized
	}
	return email, password, nil
}

// sessionUser resolves the X-Token header to a user, or ErrUnauthorized.
func (s *Server) sessionUser(r *http.Request) (*model.User, error) {
	return s.auth.UserFromToken(r.Context(), r.Header.Get(tokenHeader))
}

// remoteIP strips the port from the request's remote address.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// getConnect authenticates Basic credentials and issues a session token.
func (s *Server) getConnect(w http.ResponseWriter, r *http.Request) {
	email, password, err := decodeBasicAuth(r.Header.Get("Authorization"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	token, err := s.auth.SignInWithIP(r.Context(), email, password, remoteIP(r))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// getDisconnect revokes the caller's session.
func (s *Server) getDisconnect(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.SignOut(r.Context(), r.Header.Get(tokenHeader)); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
