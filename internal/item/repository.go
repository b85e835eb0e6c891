package item

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nekogravitycat/shareit-backend/internal/itemrequest"
)

type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string, offset, size int) ([]*Item, int, error)
	Search(ctx context.Context, text string, offset, size int) ([]*Item, int, error)
	SetPhoto(ctx context.Context, itemID string, fileID *string) error

	// BookingsFor returns every booking of the given items keyed by item id.
	BookingsFor(ctx context.Context, itemIDs []string) (map[string][]BookingSummary, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var itemColumns = []string{
	"id", "name", "description", "available", "owner_id", "request_id", "photo_id", "created_at",
}

func scanItem(row pgx.Row, extra ...any) (*Item, error) {
	var it Item
	dest := []any{
		&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID, &it.PhotoID, &it.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *pgxRepository) Create(ctx context.Context, it *Item) error {
	query, args, err := psql.Insert("public.items").
		Columns("name", "description", "available", "owner_id", "request_id").
		Values(it.Name, it.Description, it.Available, it.OwnerID, it.RequestID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&it.ID, &it.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation && e.ConstraintName == "items_request_id_fkey" {
			return itemrequest.ErrNotFound
		}
		return fmt.Errorf("create item failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Item, error) {
	query, args, err := psql.Select(itemColumns...).
		From("public.items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item query failed: %w", err)
	}

	it, err := scanItem(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return it, nil
}

func (r *pgxRepository) Update(ctx context.Context, it *Item) error {
	const query = `
		UPDATE public.items
		SET name = $1, description = $2, available = $3
		WHERE id = $4
	`
	ct, err := r.pool.Exec(ctx, query, it.Name, it.Description, it.Available, it.ID)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.items WHERE id = $1`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) SetPhoto(ctx context.Context, itemID string, fileID *string) error {
	const query = `UPDATE public.items SET photo_id = $1 WHERE id = $2`
	ct, err := r.pool.Exec(ctx, query, fileID, itemID)
	if err != nil {
		return fmt.Errorf("set item photo failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func ownerQuery(ownerID string, offset, size int) squirrel.SelectBuilder {
	return psql.Select(append(itemColumns, "count(*) OVER() AS total_count")...).
		From("public.items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("created_at", "id").
		Limit(uint64(size)).
		Offset(uint64(offset))
}

// searchQuery matches available items by name or description, case-insensitively.
func searchQuery(text string, offset, size int) squirrel.SelectBuilder {
	pattern := "%" + text + "%"
	return psql.Select(append(itemColumns, "count(*) OVER() AS total_count")...).
		From("public.items").
		Where(squirrel.Eq{"available": true}).
		Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"description": pattern},
		}).
		OrderBy("created_at", "id").
		Limit(uint64(size)).
		Offset(uint64(offset))
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string, offset, size int) ([]*Item, int, error) {
	return r.list(ctx, ownerQuery(ownerID, offset, size))
}

func (r *pgxRepository) Search(ctx context.Context, text string, offset, size int) ([]*Item, int, error) {
	return r.list(ctx, searchQuery(text, offset, size))
}

func (r *pgxRepository) list(ctx context.Context, builder squirrel.SelectBuilder) ([]*Item, int, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list items query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items failed: %w", err)
	}
	defer rows.Close()

	var result []*Item
	var total int
	for rows.Next() {
		it, err := scanItem(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item failed: %w", err)
		}
		result = append(result, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate items failed: %w", err)
	}
	return result, total, nil
}

func bookingsQuery(itemIDs []string) squirrel.SelectBuilder {
	return psql.Select("item_id", "id", "booker_id", "start_time", "end_time", "status").
		From("public.bookings").
		Where(squirrel.Eq{"item_id": itemIDs})
}

func (r *pgxRepository) BookingsFor(ctx context.Context, itemIDs []string) (map[string][]BookingSummary, error) {
	result := make(map[string][]BookingSummary, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}

	query, args, err := bookingsQuery(itemIDs).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build item bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list item bookings failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemID string
		var b BookingSummary
		if err := rows.Scan(&itemID, &b.ID, &b.BookerID, &b.Start, &b.End, &b.Status); err != nil {
			return nil, fmt.Errorf("scan item booking failed: %w", err)
		}
		result[itemID] = append(result[itemID], b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item bookings failed: %w", err)
	}
	return result, nil
}
