package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Taiwopeter-babs/alx-files-manager/internal/errs"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/model"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/queue"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/repository"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/storage"
	"github.com/gofrs/uuid/v5"
)

// CreateFileInput carries a requested file/folder creation.
type CreateFileInput struct {
	Name     string
	Kind     model.Kind
	ParentID model.ParentID
	IsPublic bool
	Data     string // base64-encoded content, empty for folders
}

// FileService defines operations over the file/folder hierarchy.
type FileService interface {
	// Create validates input, persists the blob (for file/image) and then
	// the metadata, and returns the created document.
	Create(ctx context.Context, ownerID uuid.UUID, in CreateFileInput) (*model.File, error)
	// Get returns the document only if it exists and is owned by ownerID.
	Get(ctx context.Context, id, ownerID uuid.UUID) (*model.File, error)
	// List returns one page of file/image documents under parent.
	List(ctx context.Context, ownerID uuid.UUID, parent model.ParentID, page int) ([]model.File, error)
	// SetPublic flips the isPublic flag on an owned document.
	SetPublic(ctx context.Context, id, ownerID uuid.UUID, public bool) (*model.File, error)
	// Content returns the stored bytes and MIME type of a document readable
	// by viewer (the owner, or anyone when public). size selects a
	// thumbnail width for images, 0 the original.
	Content(ctx context.Context, id, viewer uuid.UUID, size int) ([]byte, string, error)
}

type FileServiceImpl struct {
	files repository.FileRepository
	blobs storage.Store
	jobs  queue.Enqueuer
	log   *zap.Logger
}

// NewFileService constructs FileService with required dependencies.
func NewFileService(
	files repository.FileRepository,
	blobs storage.Store,
	jobs queue.Enqueuer,
	log *zap.Logger,
) *FileServiceImpl {
	return &FileServiceImpl{files: files, blobs: blobs, jobs: jobs, log: log}
}

// Create persists a folder, or decodes and stores a file/image blob followed
// by its metadata. The metadata insert happens only after a successful blob
// write; a blob orphaned by a failed insert is an accepted gap.
func (s *FileServiceImpl) Create(ctx context.Context, ownerID uuid.UUID, in CreateFileInput) (*model.File, error) {
	if in.Name == "" {
		return nil, errs.ErrMissingName
	}
	if !in.Kind.Valid() {
		return nil, errs.ErrInvalidKind
	}
	if in.Data == "" && in.Kind != model.KindFolder {
		return nil, errs.ErrMissingData
	}
	if !in.ParentID.Root() {
		parent, err := s.files.Get(ctx, in.ParentID.UUID)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				return nil, errs.ErrParentNotFound
			}
			return nil, err
		}
		if parent.Kind != model.KindFolder {
			return nil, errs.ErrParentNotFolder
		}
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	f := &model.File{
		ID:       id,
		UserID:   ownerID,
		Name:     in.Name,
		Kind:     in.Kind,
		ParentID: in.ParentID,
		IsPublic: in.IsPublic,
	}

	if in.Kind != model.KindFolder {
		// raw bytes for both kinds; a lossy text re-encode would corrupt
		// binary payloads uploaded as type "file"
		data, err := base64.StdEncoding.DecodeString(in.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid base64", errs.ErrMissingData)
		}
		if err := s.blobs.EnsureRoot(ctx); err != nil {
			return nil, err
		}
		path := s.blobs.NewPath()
		if err := s.blobs.WriteBytes(ctx, path, data); err != nil {
			return nil, err
		}
		f.LocalPath = path
	}

	if err := s.files.Create(ctx, f); err != nil {
		return nil, err
	}

	if f.Kind == model.KindImage {
		if err := s.jobs.EnqueueThumbnail(ctx, ownerID, f.ID); err != nil {
			s.log.Warn("enqueue thumbnail job",
				zap.String("fileId", f.ID.String()), zap.Error(err))
		}
	}
	return f, nil
}

// Get enforces ownership as existence: a document owned by someone else is
// reported as ErrNotFound.
func (s *FileServiceImpl) Get(ctx context.Context, id, ownerID uuid.UUID) (*model.File, error) {
	return s.files.GetOwned(ctx, id, ownerID)
}

// List returns up to model.PageSize documents for the requested page.
// Pages beyond the data yield an empty slice, not an error.
func (s *FileServiceImpl) List(ctx context.Context, ownerID uuid.UUID, parent model.ParentID, page int) ([]model.File, error) {
	if page < 0 {
		return []model.File{}, nil
	}
	return s.files.ListByParent(ctx, ownerID, parent, page*model.PageSize, model.PageSize)
}

// SetPublic atomically updates isPublic on the owned document.
func (s *FileServiceImpl) SetPublic(ctx context.Context, id, ownerID uuid.UUID, public bool) (*model.File, error) {
	return s.files.SetPublic(ctx, id, ownerID, public)
}

// Content reads a document's stored bytes. viewer may be uuid.Nil for an
// anonymous caller, who only sees public documents.
func (s *FileServiceImpl) Content(ctx context.Context, id, viewer uuid.UUID, size int) ([]byte, string, error) {
	f, err := s.files.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if !f.IsPublic && f.UserID != viewer {
		return nil, "", errs.ErrNotFound
	}
	if f.Kind == model.KindFolder {
		return nil, "", errs.ErrFolderNoContent
	}

	path := f.LocalPath
	if f.Kind == model.KindImage && size != 0 {
		if !validThumbnailSize(size) {
			return nil, "", errs.ErrNotFound
		}
		path = fmt.Sprintf("%s_%d", f.LocalPath, size)
	}
	data, err := s.blobs.ReadBytes(ctx, path)
	if err != nil {
		return nil, "", errs.ErrNotFound
	}
	return data, mimeTypeFor(f.Name), nil
}

func validThumbnailSize(size int) bool {
	for _, w := range model.ThumbnailWidths {
		if size == w {
			return true
		}
	}
	return false
}

func mimeTypeFor(name string) string {
	if mt := mime.TypeByExtension(filepath.Ext(name)); mt != "" {
		return mt
	}
	return "application/octet-stream"
}
