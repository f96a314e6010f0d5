package service

import (
	"context"

	"github.com/Taiwopeter-babs/alx-files-manager/internal/repository"
)

// Pinger reports reachability of an external collaborator.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Status reports which backing stores are alive.
type Status struct {
	Redis bool `json:"redis"`
	DB    bool `json:"db"`
}

// Stats carries the document counts exposed on /stats.
type Stats struct {
	Users int64 `json:"users"`
	Files int64 `json:"files"`
}

// AppService serves operational status and counters.
type AppService interface {
	Status(ctx context.Context) Status
	Stats(ctx context.Context) (Stats, error)
}

type AppServiceImpl struct {
	db    Pinger
	cache Pinger
	users repository.UserRepository
	files repository.FileRepository
}

// NewAppService constructs AppService over the two stores and repositories.
func NewAppService(db, cache Pinger, users repository.UserRepository, files repository.FileRepository) *AppServiceImpl {
	return &AppServiceImpl{db: db, cache: cache, users: users, files: files}
}

// Status pings both stores; a failed ping reports false, never an error.
func (s *AppServiceImpl) Status(ctx context.Context) Status {
	return Status{
		Redis: s.cache.Ping(ctx) == nil,
		DB:    s.db.Ping(ctx) == nil,
	}
}

// Stats counts users and files.
func (s *AppServiceImpl) Stats(ctx context.Context) (Stats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	files, err := s.files.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{Users: users, Files: files}, nil
}
