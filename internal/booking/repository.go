package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	UpdateStatus(ctx context.Context, b *Booking) error
	List(ctx context.Context, q Query) ([]*Booking, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var bookingColumns = []string{
	"b.id", "b.item_id", "i.name", "i.owner_id", "b.booker_id", "u.name",
	"b.start_time", "b.end_time", "b.status", "b.created_at", "b.updated_at",
}

func selectBookings(extra ...string) squirrel.SelectBuilder {
	return psql.Select(append(bookingColumns, extra...)...).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")
}

func scanBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	dest := []any{
		&b.ID, &b.ItemID, &b.ItemName, &b.OwnerID, &b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	query, args, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status", "created_at", "updated_at").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status, b.CreatedAt, b.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query, args, err := selectBookings().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

// UpdateStatus writes b.Status unconditionally. Concurrent decisions on
// the same booking resolve as last write wins.
func (r *pgxRepository) UpdateStatus(ctx context.Context, b *Booking) error {
	query, args, err := psql.Update("public.bookings").
		Set("status", b.Status).
		Set("updated_at", b.UpdatedAt).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// scoped applies the scope filter and the bucket predicate of q.
func scoped(query squirrel.SelectBuilder, q Query) squirrel.SelectBuilder {
	switch q.Scope {
	case ScopeOwner:
		query = query.Where(squirrel.Eq{"i.owner_id": q.UserID})
	default:
		query = query.Where(squirrel.Eq{"b.booker_id": q.UserID})
	}

	if pred := q.Bucket.Predicate(q.Now); pred != nil {
		query = query.Where(pred)
	}
	return query
}

// listQuery builds the bucket listing: scope filter, bucket predicate,
// newest start first with id as tie breaker.
func listQuery(q Query) squirrel.SelectBuilder {
	return scoped(selectBookings("count(*) OVER() AS total_count"), q).
		OrderBy("b.start_time DESC", "b.id DESC").
		Limit(uint64(q.Size)).
		Offset(uint64(q.Offset))
}

// countQuery counts the bucket without paging. The window count of
// listQuery is unavailable once the offset is past the last row.
func countQuery(q Query) squirrel.SelectBuilder {
	return scoped(psql.Select("count(*)").
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id"), q)
}

func (r *pgxRepository) List(ctx context.Context, q Query) ([]*Booking, int, error) {
	sql, args, err := listQuery(q).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var result []*Booking
	var total int
	for rows.Next() {
		b, err := scanBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate bookings failed: %w", err)
	}

	if len(result) == 0 && q.Offset > 0 {
		total, err = r.count(ctx, q)
		if err != nil {
			return nil, 0, err
		}
	}

	return result, total, nil
}

func (r *pgxRepository) count(ctx context.Context, q Query) (int, error) {
	sql, args, err := countQuery(q).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count bookings query failed: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count bookings failed: %w", err)
	}
	return total, nil
}
