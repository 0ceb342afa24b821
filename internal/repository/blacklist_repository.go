package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/listing-portal/internal/domain"
)

// BlacklistRepository encapsulates banned-identifier persistence. Matching is
// expressed over candidate pairs so any backend can satisfy the contract; the
// screening service decides precedence among returned rows.
type BlacklistRepository interface {
	FindMatches(ctx context.Context, candidates []domain.BlacklistCandidate) ([]domain.BlacklistEntry, error)
	InsertIfAbsent(ctx context.Context, kind domain.BlacklistKind, value string, reason *string) error
	List(ctx context.Context, limit, offset int) ([]domain.BlacklistEntry, error)
}

type blacklistRepository struct {
	pool *pgxpool.Pool
}

// NewBlacklistRepository instantiates repository.
func NewBlacklistRepository(pool *pgxpool.Pool) BlacklistRepository {
	return &blacklistRepository{pool: pool}
}

func (r *blacklistRepository) FindMatches(ctx context.Context, candidates []domain.BlacklistCandidate) ([]domain.BlacklistEntry, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	clauses := make([]string, 0, len(candidates))
	args := []any{}
	for _, candidate := range candidates {
		args = append(args, candidate.Kind)
		kindPlaceholder := fmt.Sprintf("$%d", len(args))
		args = append(args, candidate.Value)
		valuePlaceholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(kind=%s AND value=%s)", kindPlaceholder, valuePlaceholder))
	}

	query := fmt.Sprintf(`
        SELECT id, kind, value, reason, created_at
        FROM blacklist_entries WHERE %s`, strings.Join(clauses, " OR "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBlacklistEntries(rows)
}

// InsertIfAbsent inserts an entry; a duplicate (kind, value) is a silent no-op.
func (r *blacklistRepository) InsertIfAbsent(ctx context.Context, kind domain.BlacklistKind, value string, reason *string) error {
	const query = `
        INSERT INTO blacklist_entries (kind, value, reason)
        VALUES ($1,$2,$3)
        ON CONFLICT (kind, value) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, kind, value, reason)
	return err
}

func (r *blacklistRepository) List(ctx context.Context, limit, offset int) ([]domain.BlacklistEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, kind, value, reason, created_at
        FROM blacklist_entries ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBlacklistEntries(rows)
}

func scanBlacklistEntries(rows pgx.Rows) ([]domain.BlacklistEntry, error) {
	var result []domain.BlacklistEntry
	for rows.Next() {
		var entry domain.BlacklistEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.Kind,
			&entry.Value,
			&entry.Reason,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
