package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Taiwopeter-babs/alx-files-manager/internal/errs"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/model"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/service"
	"github.com/gofrs/uuid/v5"
)

// postFiles creates a folder or uploads a file/image.
func (s *Server) postFiles(w http.ResponseWriter, r *http.Request) {
	u, err := s.sessionUser(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var body struct {
		Name     string         `json:"name"`
		Type     string         `json:"type"`
		ParentID model.ParentID `json:"parentId"`
		IsPublic bool           `json:"isPublic"`
		Data     string         `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, errs.ErrMissingName)
		return
	}
	f, err := s.files.Create(r.Context(), u.ID, service.CreateFileInput{
		Name:     body.Name,
		Kind:     model.Kind(body.Type),
		ParentID: body.ParentID,
		IsPublic: body.IsPublic,
		Data:     body.Data,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, f)
}

// getFileByID returns an owned file document.
func (s *Server) getFileByID(w http.ResponseWriter, r *http.Request) {
	u, err := s.sessionUser(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	id, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		s.writeError(w, errs.ErrNotFound)
		return
	}
	f, err := s.files.Get(r.Context(), id, u.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, f)
}

// getFiles lists one page of the caller's files under a parent folder.
func (s *Server) getFiles(w http.ResponseWriter, r *http.Request) {
	u, err := s.sessionUser(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	parent := model.ParentID{}
	if raw := r.URL.Query().Get("parentId"); raw != "" && raw != "0" {
		id, err := uuid.FromString(raw)
		if err != nil {
			// an unparseable parent matches nothing
			s.writeJSON(w, http.StatusOK, []model.File{})
			return
		}
		parent = model.Parent(id)
	}

	page := 0
	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err = strconv.Atoi(raw); err != nil {
			page = 0
		}
	}

	files, err := s.files.List(r.Context(), u.ID, parent, page)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, files)
}

// putPublish returns a handler that sets isPublic to the given value.
func (s *Server) putPublish(public bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := s.sessionUser(r)
		if err != nil {
			s.writeError(w, err)
			return
		}
		id, err := uuid.FromString(r.PathValue("id"))
		if err != nil {
			s.writeError(w, errs.ErrNotFound)
			return
		}
		f, err := s.files.SetPublic(r.Context(), id, u.ID, public)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.writeJSON(w, http.StatusOK, f)
	}
}

// getFileData streams a document's content. Anonymous callers may read
// public documents; the size query selects an image thumbnail width.
func (s *Server) getFileData(w http.ResponseWriter, r *http.Request) {
	viewer := uuid.Nil
	if u, err := s.sessionUser(r); err == nil {
		viewer = u.ID
	}

	id, err := uuid.FromString(r.PathValue("id"))
	if err != nil {
		s.writeError(w, errs.ErrNotFound)
		return
	}

	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		if size, err = strconv.Atoi(raw); err != nil {
			s.writeError(w, errs.ErrNotFound)
			return
		}
	}

	data, mimeType, err := s.files.Content(r.Context(), id, viewer, size)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", mimeType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
