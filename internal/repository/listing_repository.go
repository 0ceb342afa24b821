package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/listing-portal/internal/domain"
)

// ListingFilter captures directory and moderation-queue search parameters.
type ListingFilter struct {
	Statuses   []domain.ListingStatus
	City       *string
	Category   *string
	SearchTerm *string
	Limit      int
	Offset     int
}

// ListingRepository encapsulates listing persistence. It is the single writer
// of the status column; UpdateStatus is the only mutation of a decided record.
type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ListingStatus, reason *string) (*domain.Contact, error)
	ListWithFilter(ctx context.Context, filter ListingFilter) ([]domain.Listing, error)
}

type listingRepository struct {
	pool *pgxpool.Pool
}

// NewListingRepository instantiates repository.
func NewListingRepository(pool *pgxpool.Pool) ListingRepository {
	return &listingRepository{pool: pool}
}

func (r *listingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	const query = `
        INSERT INTO listings (name, email, whatsapp, website, city, category, description, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		listing.Name,
		listing.Email,
		listing.WhatsApp,
		listing.Website,
		listing.City,
		listing.Category,
		listing.Description,
		listing.Status,
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
}

func (r *listingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	const query = `
        SELECT id, name, email, whatsapp, website, city, category, description,
               status, decision_reason, created_at, updated_at
        FROM listings WHERE id=$1`
	var listing domain.Listing
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&listing.ID,
		&listing.Name,
		&listing.Email,
		&listing.WhatsApp,
		&listing.Website,
		&listing.City,
		&listing.Category,
		&listing.Description,
		&listing.Status,
		&listing.DecisionReason,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &listing, nil
}

// UpdateStatus overwrites the status in a single atomic statement and returns
// the stored contact fields. It deliberately does not guard on the prior
// status; repeating a decision succeeds again with the same outcome.
func (r *listingRepository) UpdateStatus(ctx context.Context, id int64, status domain.ListingStatus, reason *string) (*domain.Contact, error) {
	const query = `
        UPDATE listings SET status=$1, decision_reason=$2, updated_at=NOW()
        WHERE id=$3
        RETURNING name, email, whatsapp, website`
	var contact domain.Contact
	if err := r.pool.QueryRow(ctx, query, status, reason, id).Scan(
		&contact.Name,
		&contact.Email,
		&contact.WhatsApp,
		&contact.Website,
	); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *listingRepository) ListWithFilter(ctx context.Context, filter ListingFilter) ([]domain.Listing, error) {
	base := `SELECT id, name, email, whatsapp, website, city, category, description,
                    status, decision_reason, created_at, updated_at
             FROM listings`
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.City != nil && strings.TrimSpace(*filter.City) != "" {
		args = append(args, strings.TrimSpace(*filter.City))
		clauses = append(clauses, fmt.Sprintf("city=$%d", len(args)))
	}
	if filter.Category != nil && strings.TrimSpace(*filter.Category) != "" {
		args = append(args, strings.TrimSpace(*filter.Category))
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(name) LIKE %s OR LOWER(description) LIKE %s)", placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanListings(rows)
}

func scanListings(rows pgx.Rows) ([]domain.Listing, error) {
	var result []domain.Listing
	for rows.Next() {
		var listing domain.Listing
		if err := rows.Scan(
			&listing.ID,
			&listing.Name,
			&listing.Email,
			&listing.WhatsApp,
			&listing.Website,
			&listing.City,
			&listing.Category,
			&listing.Description,
			&listing.Status,
			&listing.DecisionReason,
			&listing.CreatedAt,
			&listing.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, listing)
	}
	return result, rows.Err()
}
