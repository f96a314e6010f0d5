package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Taiwopeter-babs/alx-files-manager/internal/errs"
	"github.com/gofrs/uuid/v5"
)

type fakeKV struct {
	m map[string]string

	setErr error
	getErr error
}

var _ KV = (*fakeKV)(nil)

func newFakeKV() *fakeKV { return &fakeKV{m: map[string]string{}} }

func (f *fakeKV) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.m[key]
	if !ok {
		return "", errs.ErrNotFound
	}
	return v, nil
}

func (f *fakeKV) SetEX(_ context.Context, key, value string, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.m[key] = value
	return nil
}

func (f *fakeKV) Del(_ context.Context, key string) error {
	delete(f.m, key)
	return nil
}

func (f *fakeKV) Ping(context.Context) error { return nil }

func TestManager_CreateResolve(t *testing.T) {
	t.Parallel()
	kv := newFakeKV()
	m := NewManager(kv)
	ctx := context.Background()

	uid := uuid.Must(uuid.NewV4())
	token, err := m.Create(ctx, uid)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if token == "" {
		t.Fatalf("empty token")
	}
	if _, ok := kv.m[keyPrefix+token]; !ok {
		t.Fatalf("token not stored under %q prefix", keyPrefix)
	}

	got, err := m.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != uid {
		t.Fatalf("Resolve = %s, want %s", got, uid)
	}
}

func TestManager_Resolve_UnknownToken(t *testing.T) {
	t.Parallel()
	m := NewManager(newFakeKV())

	if _, err := m.Resolve(context.Background(), "nope"); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
	if _, err := m.Resolve(context.Background(), ""); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("empty token: want ErrUnauthorized, got %v", err)
	}
}

func TestManager_DestroyIsIdempotent(t *testing.T) {
	t.Parallel()
	kv := newFakeKV()
	m := NewManager(kv)
	ctx := context.Background()

	token, err := m.Create(ctx, uuid.Must(uuid.NewV4()))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := m.Destroy(ctx, token); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if _, err := m.Resolve(ctx, token); !errors.Is(err, errs.ErrUnauthorized) {
		t.Fatalf("resolve after destroy: want ErrUnauthorized, got %v", err)
	}
	// second destroy must not error
	if err := m.Destroy(ctx, token); err != nil {
		t.Fatalf("Destroy twice: %v", err)
	}
}

func TestManager_TokensAreUnique(t *testing.T) {
	t.Parallel()
	m := NewManager(newFakeKV())
	ctx := context.Background()
	uid := uuid.Must(uuid.NewV4())

	a, _ := m.Create(ctx, uid)
	b, _ := m.Create(ctx, uid)
	if a == b {
		t.Fatalf("two sessions got the same token")
	}
}
