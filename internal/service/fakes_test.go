package service

import (
	"context"
	"time"

	"github.com/Taiwopeter-babs/alx-files-manager/internal/errs"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/limiter"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/model"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/queue"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/repository"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/session"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/storage"
	"github.com/gofrs/uuid/v5"
)

type fakeUsers struct {
	byEmail map[string]*model.User

	createErr error
	getErr    error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func newFakeUsers() *fakeUsers { return &fakeUsers{byEmail: map[string]*model.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *u
	f.byEmail[u.Email] = &cpy
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUsers) Count(context.Context) (int64, error) {
	return int64(len(f.byEmail)), nil
}

type fakeFiles struct {
	byID map[uuid.UUID]*model.File

	createErr error
}

var _ repository.FileRepository = (*fakeFiles)(nil)

func newFakeFiles() *fakeFiles { return &fakeFiles{byID: map[uuid.UUID]*model.File{}} }

func (f *fakeFiles) Create(_ context.Context, doc *model.File) error {
	if f.createErr != nil {
		return f.createErr
	}
	cpy := *doc
	cpy.CreatedAt = time.Now()
	f.byID[doc.ID] = &cpy
	return nil
}

func (f *fakeFiles) Get(_ context.Context, id uuid.UUID) (*model.File, error) {
	doc, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *doc
	return &c, nil
}

func (f *fakeFiles) GetOwned(_ context.Context, id, ownerID uuid.UUID) (*model.File, error) {
	doc, ok := f.byID[id]
	if !ok || doc.UserID != ownerID {
		return nil, errs.ErrNotFound
	}
	c := *doc
	return &c, nil
}

func (f *fakeFiles) ListByParent(
	_ context.Context, ownerID uuid.UUID, parent model.ParentID, offset, limit int,
) ([]model.File, error) {
	var all []model.File
	for _, doc := range f.byID {
		if doc.UserID != ownerID || doc.Kind == model.KindFolder {
			continue
		}
		if doc.ParentID.Root() != parent.Root() {
			continue
		}
		if !parent.Root() && doc.ParentID.UUID != parent.UUID {
			continue
		}
		all = append(all, *doc)
	}
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[j].CreatedAt.Before(all[i].CreatedAt) {
				all[i], all[j] = all[j], all[i]
			}
		}
	}
	if offset >= len(all) {
		return []model.File{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (f *fakeFiles) SetPublic(_ context.Context, id, ownerID uuid.UUID, public bool) (*model.File, error) {
	doc, ok := f.byID[id]
	if !ok || doc.UserID != ownerID {
		return nil, errs.ErrNotFound
	}
	doc.IsPublic = public
	c := *doc
	return &c, nil
}

func (f *fakeFiles) Count(context.Context) (int64, error) {
	return int64(len(f.byID)), nil
}

type fakeKV struct {
	m       map[string]string
	pingErr error
}

var _ session.KV = (*fakeKV)(nil)

func newFakeKV() *fakeKV { return &fakeKV{m: map[string]string{}} }

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	v, ok := f.m[key]
	if !ok {
		return "", errs.ErrNotFound
	}
	return v, nil
}

func (f *fakeKV) SetEX(_ context.Context, key, value string, _ time.Duration) error {
	f.m[key] = value
	return nil
}

func (f *fakeKV) Del(_ context.Context, key string) error {
	delete(f.m, key)
	return nil
}

func (f *fakeKV) Ping(context.Context) error { return f.pingErr }

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	l.allowCalls++
	return l.allowOK, 0, l.allowErr
}

func (l *fakeLimiter) Success(context.Context, string, []byte) error {
	l.successCalls++
	return nil
}

func (l *fakeLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, 0, nil
}

type fakeQueue struct {
	thumbnails []queue.ThumbnailPayload
	welcomes   []queue.WelcomePayload

	enqueueErr error
}

var _ queue.Enqueuer = (*fakeQueue)(nil)

func (q *fakeQueue) EnqueueThumbnail(_ context.Context, userID, fileID uuid.UUID) error {
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.thumbnails = append(q.thumbnails, queue.ThumbnailPayload{
		UserID: userID.String(), FileID: fileID.String(),
	})
	return nil
}

func (q *fakeQueue) EnqueueWelcome(_ context.Context, userID uuid.UUID) error {
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.welcomes = append(q.welcomes, queue.WelcomePayload{UserID: userID.String()})
	return nil
}

type fakeStore struct {
	m map[string][]byte

	next     int
	writeErr error
}

var _ storage.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore { return &fakeStore{m: map[string][]byte{}} }

func (s *fakeStore) EnsureRoot(context.Context) error { return nil }

func (s *fakeStore) NewPath() string {
	s.next++
	return "/blobs/" + string(rune('a'+s.next-1))
}

func (s *fakeStore) WriteBytes(_ context.Context, path string, data []byte) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.m[path] = append([]byte(nil), data...)
	return nil
}

func (s *fakeStore) ReadBytes(_ context.Context, path string) ([]byte, error) {
	b, ok := s.m[path]
	if !ok {
		return nil, storage.ErrRead
	}
	return b, nil
}
