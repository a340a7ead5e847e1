package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/portalbd/employee-portal-go/internal/domain/session"
	"github.com/portalbd/employee-portal-go/internal/pkg/rowstore"
)

const bearerPrefix = "Bearer "

type ManagerImpl struct {
	store rowstore.Store
	ttl   time.Duration
	now   func() time.Time

	// Serializes scan-then-write against the Sessions partition. Without it
	// a concurrent delete shifts row indexes under a lookup and the wrong
	// session gets evicted.
	mu sync.Mutex
}

func NewManager(store rowstore.Store, ttl time.Duration) session.Manager {
	return &ManagerImpl{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Issue implements session.Manager. The token encodes userID, issue time
// and a random UUID; unguessability comes from the random component, the
// encoding itself is not a secret.
func (m *ManagerImpl) Issue(ctx context.Context, userID string) (string, error) {
	created := m.now()
	raw := fmt.Sprintf("%s:%d:%s", userID, created.UnixMilli(), uuid.NewString())

	sess := session.Session{
		Token:     base64.StdEncoding.EncodeToString([]byte(raw)),
		UserID:    userID,
		CreatedAt: created,
		ExpiresAt: created.Add(m.ttl),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.EnsurePartition(ctx, session.Partition, session.PartitionHeader); err != nil {
		return "", fmt.Errorf("failed to ensure sessions partition: %w", err)
	}
	if err := m.store.AppendRow(ctx, session.Partition, toRow(sess, created)); err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}

	return sess.Token, nil
}

// Validate implements session.Manager. Expired rows are deleted on sight;
// there is no background sweep.
func (m *ManagerImpl) Validate(ctx context.Context, bearerHeader string) (string, error) {
	token, ok := parseBearer(bearerHeader)
	if !ok {
		return "", session.ErrUnauthenticated
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows, err := m.store.ScanRows(ctx, session.Partition)
	if err != nil {
		if err == rowstore.ErrPartitionNotFound {
			return "", session.ErrUnauthenticated
		}
		return "", fmt.Errorf("failed to scan sessions: %w", err)
	}

	for i, row := range rows {
		sess, parseErr := fromRow(row)
		if sess.Token != token {
			continue
		}

		if parseErr != nil || !m.now().Before(sess.ExpiresAt) {
			// Lazy eviction: reclaim the row and fail closed.
			if delErr := m.store.DeleteRow(ctx, session.Partition, i); delErr != nil {
				slog.Error("Failed to evict expired session", "error", delErr)
			}
			return "", session.ErrUnauthenticated
		}

		touched := row.Clone()
		touched[session.ColLastUsed] = m.now().Format(time.RFC3339)
		if err := m.store.UpdateRow(ctx, session.Partition, i, touched); err != nil {
			slog.Error("Failed to stamp session last use", "error", err)
		}

		return sess.UserID, nil
	}

	return "", session.ErrUnauthenticated
}

// Revoke implements session.Manager. A no-op when the session is already
// gone.
func (m *ManagerImpl) Revoke(ctx context.Context, bearerHeader string) error {
	token, ok := parseBearer(bearerHeader)
	if !ok {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows, err := m.store.ScanRows(ctx, session.Partition)
	if err != nil {
		if err == rowstore.ErrPartitionNotFound {
			return nil
		}
		return fmt.Errorf("failed to scan sessions: %w", err)
	}

	for i, row := range rows {
		if strings.TrimSpace(row.Cell(session.ColToken)) == token {
			if err := m.store.DeleteRow(ctx, session.Partition, i); err != nil {
				return fmt.Errorf("failed to delete session: %w", err)
			}
			return nil
		}
	}
	return nil
}

func parseBearer(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}

func toRow(sess session.Session, lastUsed time.Time) rowstore.Row {
	return rowstore.Row{
		sess.Token,
		sess.UserID,
		sess.CreatedAt.Format(time.RFC3339),
		sess.ExpiresAt.Format(time.RFC3339),
		lastUsed.Format(time.RFC3339),
	}
}

// fromRow always yields the token and user id; the error reports an
// unparseable expiry, which callers treat as expired.
func fromRow(row rowstore.Row) (session.Session, error) {
	sess := session.Session{
		Token:  strings.TrimSpace(row.Cell(session.ColToken)),
		UserID: row.Cell(session.ColUserID),
	}
	created, err := time.Parse(time.RFC3339, row.Cell(session.ColCreated))
	if err == nil {
		sess.CreatedAt = created
	}
	expires, err := time.Parse(time.RFC3339, row.Cell(session.ColExpires))
	if err != nil {
		return sess, fmt.Errorf("invalid session expiry: %w", err)
	}
	sess.ExpiresAt = expires
	return sess, nil
}
