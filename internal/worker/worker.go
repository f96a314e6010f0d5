// Package worker consumes queue jobs: thumbnail generation and welcomes.
package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/Taiwopeter-babs/alx-files-manager/internal/errs"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/model"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/queue"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/repository"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/storage"
	"github.com/gofrs/uuid/v5"
)

// Job validation errors. Failed jobs are not retried.
var (
	ErrMissingFileID = errors.New("Missing fileId")
	ErrMissingUserID = errors.New("Missing userId")
	ErrFileNotFound  = errors.New("File not found")
	ErrUserNotFound  = errors.New("User not found")
)

// Handler processes queue jobs against the stores.
type Handler struct {
	files repository.FileRepository
	users repository.UserRepository
	blobs storage.Store
	log   *zap.Logger
}

// NewHandler constructs a job handler.
func NewHandler(
	files repository.FileRepository,
	users repository.UserRepository,
	blobs storage.Store,
	log *zap.Logger,
) *Handler {
	return &Handler{files: files, users: users, blobs: blobs, log: log}
}

// Register attaches the handlers to an asynq mux.
func (h *Handler) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TypeThumbnail, h.ProcessThumbnail)
	mux.HandleFunc(queue.TypeWelcome, h.ProcessWelcome)
}

// ProcessThumbnail generates resized variants of an image at
// "<localPath>_<width>" for each configured width, in order. The three
// writes are not atomic; a failure mid-job leaves earlier variants behind.
func (h *Handler) ProcessThumbnail(ctx context.Context, t *asynq.Task) error {
	var p queue.ThumbnailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	if p.FileID == "" {
		return ErrMissingFileID
	}
	if p.UserID == "" {
		return ErrMissingUserID
	}
	fileID, err := uuid.FromString(p.FileID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMissingFileID, err)
	}
	userID, err := uuid.FromString(p.UserID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMissingUserID, err)
	}

	f, err := h.files.GetOwned(ctx, fileID, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return ErrFileNotFound
		}
		return err
	}

	src, err := h.blobs.ReadBytes(ctx, f.LocalPath)
	if err != nil {
		return err
	}
	img, err := imaging.Decode(bytes.NewReader(src))
	if err != nil {
		return fmt.Errorf("decode %s: %w", f.LocalPath, err)
	}

	for _, width := range model.ThumbnailWidths {
		thumb := imaging.Resize(img, width, 0, imaging.Lanczos)
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
			return fmt.Errorf("encode %dpx: %w", width, err)
		}
		path := fmt.Sprintf("%s_%d", f.LocalPath, width)
		if err := h.blobs.WriteBytes(ctx, path, buf.Bytes()); err != nil {
			return err
		}
		h.log.Info("thumbnail written",
			zap.String("fileId", f.ID.String()),
			zap.Int("width", width),
		)
	}
	return nil
}

// ProcessWelcome logs a greeting for a freshly signed-in user.
func (h *Handler) ProcessWelcome(ctx context.Context, t *asynq.Task) error {
	var p queue.WelcomePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return err
	}
	if p.UserID == "" {
		return ErrMissingUserID
	}
	userID, err := uuid.FromString(p.UserID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMissingUserID, err)
	}
	u, err := h.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	h.log.Info("welcome", zap.String("email", u.Email))
	return nil
}
