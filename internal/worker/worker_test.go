package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"testing"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/Taiwopeter-babs/alx-files-manager/internal/errs"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/model"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/queue"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/repository"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/storage"
	"github.com/gofrs/uuid/v5"
)

type fakeFiles struct{ byID map[uuid.UUID]*model.File }

var _ repository.FileRepository = (*fakeFiles)(nil)

func (f *fakeFiles) Create(_ context.Context, doc *model.File) error {
	f.byID[doc.ID] = doc
	return nil
}

func (f *fakeFiles) Get(_ context.Context, id uuid.UUID) (*model.File, error) {
	doc, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return doc, nil
}

func (f *fakeFiles) GetOwned(_ context.Context, id, ownerID uuid.UUID) (*model.File, error) {
	doc, ok := f.byID[id]
	if !ok || doc.UserID != ownerID {
		return nil, errs.ErrNotFound
	}
	return doc, nil
}

func (f *fakeFiles) ListByParent(context.Context, uuid.UUID, model.ParentID, int, int) ([]model.File, error) {
	return nil, nil
}

func (f *fakeFiles) SetPublic(context.Context, uuid.UUID, uuid.UUID, bool) (*model.File, error) {
	return nil, errs.ErrNotFound
}

func (f *fakeFiles) Count(context.Context) (int64, error) { return int64(len(f.byID)), nil }

type fakeUsers struct{ byID map[uuid.UUID]*model.User }

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(context.Context, string) (*model.User, error) {
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) Count(context.Context) (int64, error) { return int64(len(f.byID)), nil }

// writePNG stores a generated image blob and the matching file document.
func writePNG(t *testing.T, blobs storage.Store, files *fakeFiles, owner uuid.UUID, w, h int) *model.File {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	path := blobs.NewPath()
	if err := blobs.WriteBytes(context.Background(), path, buf.Bytes()); err != nil {
		t.Fatalf("write blob: %v", err)
	}
	f := &model.File{
		ID:        uuid.Must(uuid.NewV4()),
		UserID:    owner,
		Name:      "pic.png",
		Kind:      model.KindImage,
		LocalPath: path,
	}
	files.byID[f.ID] = f
	return f
}

func thumbnailTask(t *testing.T, p queue.ThumbnailPayload) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return asynq.NewTask(queue.TypeThumbnail, b)
}

func TestProcessThumbnail_GeneratesAllWidths(t *testing.T) {
	t.Parallel()
	blobs := storage.NewDisk(t.TempDir())
	files := &fakeFiles{byID: map[uuid.UUID]*model.File{}}
	owner := uuid.Must(uuid.NewV4())
	f := writePNG(t, blobs, files, owner, 800, 600)

	h := NewHandler(files, &fakeUsers{byID: map[uuid.UUID]*model.User{}}, blobs, zap.NewNop())
	task := thumbnailTask(t, queue.ThumbnailPayload{UserID: owner.String(), FileID: f.ID.String()})

	if err := h.ProcessThumbnail(context.Background(), task); err != nil {
		t.Fatalf("ProcessThumbnail: %v", err)
	}

	for _, width := range model.ThumbnailWidths {
		path := fmt.Sprintf("%s_%d", f.LocalPath, width)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("missing artifact %s: %v", path, err)
		}
		cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("artifact %s is not a JPEG: %v", path, err)
		}
		if cfg.Width != width {
			t.Fatalf("artifact %s width = %d, want %d", path, cfg.Width, width)
		}
	}
}

func TestProcessThumbnail_MissingFields(t *testing.T) {
	t.Parallel()
	blobs := storage.NewDisk(t.TempDir())
	h := NewHandler(
		&fakeFiles{byID: map[uuid.UUID]*model.File{}},
		&fakeUsers{byID: map[uuid.UUID]*model.User{}},
		blobs, zap.NewNop(),
	)
	ctx := context.Background()

	err := h.ProcessThumbnail(ctx, thumbnailTask(t, queue.ThumbnailPayload{UserID: "u"}))
	if !errors.Is(err, ErrMissingFileID) {
		t.Fatalf("want ErrMissingFileID, got %v", err)
	}
	err = h.ProcessThumbnail(ctx, thumbnailTask(t, queue.ThumbnailPayload{FileID: uuid.Must(uuid.NewV4()).String()}))
	if !errors.Is(err, ErrMissingUserID) {
		t.Fatalf("want ErrMissingUserID, got %v", err)
	}
}

func TestProcessThumbnail_FileNotFound_NoArtifacts(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	blobs := storage.NewDisk(dir)
	files := &fakeFiles{byID: map[uuid.UUID]*model.File{}}
	h := NewHandler(files, &fakeUsers{byID: map[uuid.UUID]*model.User{}}, blobs, zap.NewNop())

	task := thumbnailTask(t, queue.ThumbnailPayload{
		UserID: uuid.Must(uuid.NewV4()).String(),
		FileID: uuid.Must(uuid.NewV4()).String(),
	})
	if err := h.ProcessThumbnail(context.Background(), task); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("want ErrFileNotFound, got %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("artifacts written for a failed job: %v", entries)
	}
}

func TestProcessThumbnail_WrongOwner(t *testing.T) {
	t.Parallel()
	blobs := storage.NewDisk(t.TempDir())
	files := &fakeFiles{byID: map[uuid.UUID]*model.File{}}
	owner := uuid.Must(uuid.NewV4())
	f := writePNG(t, blobs, files, owner, 100, 100)

	h := NewHandler(files, &fakeUsers{byID: map[uuid.UUID]*model.User{}}, blobs, zap.NewNop())
	task := thumbnailTask(t, queue.ThumbnailPayload{
		UserID: uuid.Must(uuid.NewV4()).String(), // not the owner
		FileID: f.ID.String(),
	})
	if err := h.ProcessThumbnail(context.Background(), task); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("want ErrFileNotFound, got %v", err)
	}
}

func TestProcessWelcome(t *testing.T) {
	t.Parallel()
	users := &fakeUsers{byID: map[uuid.UUID]*model.User{}}
	u := &model.User{ID: uuid.Must(uuid.NewV4()), Email: "a@x.com"}
	users.byID[u.ID] = u

	h := NewHandler(
		&fakeFiles{byID: map[uuid.UUID]*model.File{}},
		users, storage.NewDisk(t.TempDir()), zap.NewNop(),
	)
	ctx := context.Background()

	b, _ := json.Marshal(queue.WelcomePayload{UserID: u.ID.String()})
	if err := h.ProcessWelcome(ctx, asynq.NewTask(queue.TypeWelcome, b)); err != nil {
		t.Fatalf("ProcessWelcome: %v", err)
	}

	b, _ = json.Marshal(queue.WelcomePayload{UserID: uuid.Must(uuid.NewV4()).String()})
	if err := h.ProcessWelcome(ctx, asynq.NewTask(queue.TypeWelcome, b)); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("want ErrUserNotFound, got %v", err)
	}

	b, _ = json.Marshal(queue.WelcomePayload{})
	if err := h.ProcessWelcome(ctx, asynq.NewTask(queue.TypeWelcome, b)); !errors.Is(err, ErrMissingUserID) {
		t.Fatalf("want ErrMissingUserID, got %v", err)
	}
}
