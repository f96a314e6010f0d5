package service

import (
	"context"
	"errors"
	"testing"
)

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestApp_Status(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	files := newFakeFiles()

	up := NewAppService(fakePinger{}, fakePinger{}, users, files)
	if st := up.Status(context.Background()); !st.DB || !st.Redis {
		t.Fatalf("status = %+v, want both true", st)
	}

	down := NewAppService(fakePinger{err: errors.New("dead")}, fakePinger{}, users, files)
	if st := down.Status(context.Background()); st.DB || !st.Redis {
		t.Fatalf("status = %+v, want db=false redis=true", st)
	}
}

func TestApp_Stats(t *testing.T) {
	t.Parallel()
	users := newFakeUsers()
	files := newFakeFiles()
	s := NewAppService(fakePinger{}, fakePinger{}, users, files)

	auth := newAuth(users, &fakeLimiter{allowOK: true}, &fakeQueue{})
	fsvc := newFiles(files, newFakeStore(), &fakeQueue{})
	ctx := context.Background()

	if _, err := auth.Register(ctx, "a@x.com", "pw1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := fsvc.Create(ctx, users.byEmail["a@x.com"].ID, CreateFileInput{
		Name: "docs", Kind: "folder",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Users != 1 || stats.Files != 1 {
		t.Fatalf("stats = %+v", stats)
	}
}
