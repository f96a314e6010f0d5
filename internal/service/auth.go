// Package service contains application services for auth, files, and status.
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	pkgcrypto "github.com/Taiwopeter-babs/alx-files-manager/internal/crypto"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/errs"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/limiter"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/model"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/queue"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/repository"
	"github.com/Taiwopeter-babs/alx-files-manager/internal/session"
	"github.com/gofrs/uuid/v5"
)

// AuthService defines registration and session operations.
type AuthService interface {
	// Register creates a new user with secure password hashing.
	Register(ctx context.Context, email, password string) (*model.User, error)
	// SignInWithIP applies rate limiting, authenticates, and issues a session token.
	SignInWithIP(ctx context.Context, email, password, ip string) (string, error)
	// SignOut revokes the session behind token.
	SignOut(ctx context.Context, token string) error
	// UserFromToken resolves token to its user.
	UserFromToken(ctx context.Context, token string) (*model.User, error)
}

type AuthServiceImpl struct {
	users    repository.UserRepository
	sessions *session.Manager
	lim      limiter.Limiter
	jobs     queue.Enqueuer
	log      *zap.Logger
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(
	users repository.UserRepository,
	sessions *session.Manager,
	lim limiter.Limiter,
	jobs queue.Enqueuer,
	log *zap.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, sessions: sessions, lim: lim, jobs: jobs, log: log}
}

// Register creates a new user record with a per-user salt.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" {
		return nil, errs.ErrMissingEmail
	}
	if password == "" {
		return nil, errs.ErrMissingPassword
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	salt, err := pkgcrypto.DefaultParams.NewSalt()
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:      uid,
		Email:   email,
		PwdHash: pkgcrypto.DefaultParams.Hash([]byte(password), salt),
		Salt:    salt,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SignInWithIP authenticates with rate limiting by (email, ip) and returns
// a session token. Bad password and unknown email are indistinguishable.
func (s *AuthServiceImpl) SignInWithIP(ctx context.Context, email, password, ip string) (string, error) {
	if email == "" || password == "" {
		return "", errs.ErrUnauthorized
	}
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.DefaultParams.Verify([]byte(password), u.Salt, u.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return "", errs.ErrRateLimited
		}
		// unknown email and wrong password are reported identically
		return "", errs.ErrUnauthorized
	}

	_ = s.lim.Success(ctx, email, ipHash)

	token, err := s.sessions.Create(ctx, u.ID)
	if err != nil {
		return "", err
	}
	if err := s.jobs.EnqueueWelcome(ctx, u.ID); err != nil {
		// the session is valid regardless; the greeting is best-effort
		s.log.Warn("enqueue welcome job", zap.Error(err))
	}
	return token, nil
}

// SignOut resolves the token and revokes it. Unknown tokens are rejected.
func (s *AuthServiceImpl) SignOut(ctx context.Context, token string) error {
	if _, err := s.sessions.Resolve(ctx, token); err != nil {
		return err
	}
	return s.sessions.Destroy(ctx, token)
}

// UserFromToken resolves a session token and loads its user.
func (s *AuthServiceImpl) UserFromToken(ctx context.Context, token string) (*model.User, error) {
	uid, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrUnauthorized
		}
		return nil, err
	}
	return u, nil
}
