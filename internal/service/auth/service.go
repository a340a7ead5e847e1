package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/portalbd/employee-portal-go/internal/domain/auth"
	"github.com/portalbd/employee-portal-go/internal/domain/session"
	"github.com/portalbd/employee-portal-go/internal/domain/user"
	"github.com/portalbd/employee-portal-go/internal/pkg/password"
	"github.com/portalbd/employee-portal-go/internal/pkg/rowstore"
)

type AuthServiceImpl struct {
	store    rowstore.Store
	sessions session.Manager
	now      func() time.Time

	// Serializes scan-then-write against the Users partition so two
	// concurrent registrations cannot both pass the duplicate check.
	mu sync.Mutex
}

func NewAuthService(store rowstore.Store, sessions session.Manager) auth.AuthService {
	return &AuthServiceImpl{
		store:    store,
		sessions: sessions,
		now:      time.Now,
	}
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	id := strings.TrimSpace(req.ID)
	if err := a.createUser(ctx, id, req); err != nil {
		return auth.TokenResponse{}, err
	}
	slog.Info("User registered", "user_id", id)

	token, err := a.sessions.Issue(ctx, id)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to issue session: %w", err)
	}
	return auth.TokenResponse{Token: token}, nil
}

func (a *AuthServiceImpl) createUser(ctx context.Context, id string, req auth.RegisterRequest) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.store.EnsurePartition(ctx, user.Partition, user.PartitionHeader); err != nil {
		return fmt.Errorf("failed to ensure users partition: %w", err)
	}

	rows, err := a.store.ScanRows(ctx, user.Partition)
	if err != nil {
		return fmt.Errorf("failed to scan users: %w", err)
	}

	for _, row := range rows {
		if strings.TrimSpace(row.Cell(user.ColID)) == id {
			return auth.ErrUserIDTaken
		}
	}

	u := user.User{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: password.Hash(req.Password, ""),
		CreatedAt:    a.now(),
	}
	if err := a.store.AppendRow(ctx, user.Partition, toRow(u)); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	rows, err := a.store.ScanRows(ctx, user.Partition)
	if err != nil {
		if err == rowstore.ErrPartitionNotFound {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to scan users: %w", err)
	}

	id := strings.TrimSpace(req.ID)
	for i, row := range rows {
		if strings.TrimSpace(row.Cell(user.ColID)) != id {
			continue
		}

		if !password.Verify(req.Password, strings.TrimSpace(row.Cell(user.ColPassword))) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}

		stamped := row.Clone()
		stamped[user.ColLastLogin] = a.now().Format(time.RFC3339)
		if err := a.store.UpdateRow(ctx, user.Partition, i, stamped); err != nil {
			slog.Error("Failed to stamp last login", "user_id", id, "error", err)
		}

		token, err := a.sessions.Issue(ctx, id)
		if err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to issue session: %w", err)
		}
		slog.Info("User logged in", "user_id", id)
		return auth.TokenResponse{Token: token}, nil
	}

	return auth.TokenResponse{}, auth.ErrInvalidCredentials
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, bearerHeader string) error {
	return a.sessions.Revoke(ctx, bearerHeader)
}

func toRow(u user.User) rowstore.Row {
	lastLogin := ""
	if u.LastLoginAt != nil {
		lastLogin = u.LastLoginAt.Format(time.RFC3339)
	}
	return rowstore.Row{
		u.ID,
		u.Name,
		u.PasswordHash,
		u.CreatedAt.Format(time.RFC3339),
		lastLogin,
	}
}
