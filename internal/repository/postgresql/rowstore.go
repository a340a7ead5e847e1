package postgresql

import (
	"context"
	"fmt"

	"github.com/portalbd/employee-portal-go/internal/pkg/database"
	"github.com/portalbd/employee-portal-go/internal/pkg/rowstore"
)

// rowStore implements rowstore.Store on PostgreSQL. Each partition is a row
// in the partitions table; its data rows live in partition_rows keyed by a
// zero-based, contiguous idx. Appends and deletes run inside transactions so
// idx stays contiguous under concurrent writers.
type rowStore struct {
	db *database.DB
}

func NewRowStore(db *database.DB) rowstore.Store {
	return &rowStore{db: db}
}

// Migrate creates the row-store schema.
func Migrate(ctx context.Context, db *database.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS partitions (
			name       TEXT PRIMARY KEY,
			header     TEXT[] NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS partition_rows (
			id        BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			partition TEXT NOT NULL REFERENCES partitions(name) ON DELETE CASCADE,
			idx       INT NOT NULL,
			cells     TEXT[] NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS partition_rows_partition_idx
			ON partition_rows (partition, idx)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate row store: %w", err)
		}
	}
	return nil
}

// EnsurePartition implements rowstore.Store.
func (s *rowStore) EnsurePartition(ctx context.Context, name string, header []string) error {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO partitions (name, header)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
	`
	if _, err := q.Exec(ctx, query, name, header); err != nil {
		return fmt.Errorf("failed to ensure partition %s: %w", name, err)
	}
	return nil
}

func (s *rowStore) partitionExists(ctx context.Context, name string) (bool, error) {
	q := GetQuerier(ctx, s.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM partitions WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check partition %s: %w", name, err)
	}
	return exists, nil
}

// ScanRows implements rowstore.Store.
func (s *rowStore) ScanRows(ctx context.Context, name string) ([]rowstore.Row, error) {
	exists, err := s.partitionExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, rowstore.ErrPartitionNotFound
	}

	q := GetQuerier(ctx, s.db)
	rows, err := q.Query(ctx, `
		SELECT cells FROM partition_rows
		WHERE partition = $1
		ORDER BY idx
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to scan partition %s: %w", name, err)
	}
	defer rows.Close()

	var result []rowstore.Row
	for rows.Next() {
		var cells []string
		if err := rows.Scan(&cells); err != nil {
			return nil, fmt.Errorf("failed to scan row in %s: %w", name, err)
		}
		result = append(result, rowstore.Row(cells))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read partition %s: %w", name, err)
	}
	return result, nil
}

// AppendRow implements rowstore.Store.
func (s *rowStore) AppendRow(ctx context.Context, name string, row rowstore.Row) error {
	return WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		exists, err := s.partitionExists(txCtx, name)
		if err != nil {
			return err
		}
		if !exists {
			return rowstore.ErrPartitionNotFound
		}

		q := GetQuerier(txCtx, s.db)
		_, err = q.Exec(txCtx, `
			INSERT INTO partition_rows (partition, idx, cells)
			SELECT $1, COALESCE(MAX(idx) + 1, 0), $2
			FROM partition_rows WHERE partition = $1
		`, name, []string(row))
		if err != nil {
			return fmt.Errorf("failed to append row to %s: %w", name, err)
		}
		return nil
	})
}

// UpdateRow implements rowstore.Store.
func (s *rowStore) UpdateRow(ctx context.Context, name string, index int, row rowstore.Row) error {
	exists, err := s.partitionExists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return rowstore.ErrPartitionNotFound
	}

	q := GetQuerier(ctx, s.db)
	tag, err := q.Exec(ctx, `
		UPDATE partition_rows SET cells = $3
		WHERE partition = $1 AND idx = $2
	`, name, index, []string(row))
	if err != nil {
		return fmt.Errorf("failed to update row %d in %s: %w", index, name, err)
	}
	if tag.RowsAffected() == 0 {
		return rowstore.ErrRowOutOfRange
	}
	return nil
}

// DeleteRow implements rowstore.Store. Rows after the deleted index shift
// down by one, preserving sheet-like contiguous indexing.
func (s *rowStore) DeleteRow(ctx context.Context, name string, index int) error {
	return WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		exists, err := s.partitionExists(txCtx, name)
		if err != nil {
			return err
		}
		if !exists {
			return rowstore.ErrPartitionNotFound
		}

		q := GetQuerier(txCtx, s.db)
		tag, err := q.Exec(txCtx, `
			DELETE FROM partition_rows
			WHERE partition = $1 AND idx = $2
		`, name, index)
		if err != nil {
			return fmt.Errorf("failed to delete row %d in %s: %w", index, name, err)
		}
		if tag.RowsAffected() == 0 {
			return rowstore.ErrRowOutOfRange
		}

		_, err = q.Exec(txCtx, `
			UPDATE partition_rows SET idx = idx - 1
			WHERE partition = $1 AND idx > $2
		`, name, index)
		if err != nil {
			return fmt.Errorf("failed to reindex rows in %s: %w", name, err)
		}
		return nil
	})
}

// ListPartitions implements rowstore.Store.
func (s *rowStore) ListPartitions(ctx context.Context, prefix string) ([]string, error) {
	q := GetQuerier(ctx, s.db)

	rows, err := q.Query(ctx, `
		SELECT name FROM partitions
		WHERE name LIKE $1 || '%'
		ORDER BY name
	`, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan partition name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read partition names: %w", err)
	}
	return names, nil
}
