package itemrequest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type Repository interface {
	Create(ctx context.Context, req *ItemRequest) error
	GetByID(ctx context.Context, id string) (*ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*ItemRequest, error)
	ListOthers(ctx context.Context, userID string, offset, size int) ([]*ItemRequest, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

func NewPgxRepository(pool *pgxpool.Pool, log zerolog.Logger) Repository {
	return &pgxRepository{pool: pool, log: log}
}

// answersColumn aggregates the items created for a request into a JSON array.
const answersColumn = `COALESCE(
		(
			SELECT json_agg(json_build_object(
				'id', i.id, 'name', i.name, 'description', i.description,
				'available', i.available, 'owner_id', i.owner_id
			) ORDER BY i.id)
			FROM public.items i
			WHERE i.request_id = r.id
		),
		'[]'::json
	) AS items`

func selectRequests(extra ...string) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append([]string{"r.id", "r.description", "r.requester_id", "r.created_at", answersColumn}, extra...)
	return psql.Select(cols...).From("public.item_requests r")
}

func (r *pgxRepository) scan(row pgx.Row, extra ...any) (*ItemRequest, error) {
	var req ItemRequest
	var itemsJSON []byte
	dest := append([]any{&req.ID, &req.Description, &req.RequesterID, &req.CreatedAt, &itemsJSON}, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	req.Items = []ItemBrief{}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &req.Items); err != nil {
			r.log.Warn().Err(err).Str("request_id", req.ID).Msg("failed to unmarshal request items")
		}
	}
	return &req, nil
}

func (r *pgxRepository) Create(ctx context.Context, req *ItemRequest) error {
	const query = `
		INSERT INTO public.item_requests (description, requester_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := r.pool.QueryRow(ctx, query, req.Description, req.RequesterID, req.CreatedAt).Scan(&req.ID); err != nil {
		return fmt.Errorf("create item request failed: %w", err)
	}
	req.Items = []ItemBrief{}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*ItemRequest, error) {
	query, args, err := selectRequests().Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item request query failed: %w", err)
	}

	req, err := r.scan(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item request failed: %w", err)
	}
	return req, nil
}

func ownQuery(requesterID string) squirrel.SelectBuilder {
	return selectRequests().
		Where(squirrel.Eq{"r.requester_id": requesterID}).
		OrderBy("r.created_at DESC", "r.id DESC")
}

func othersQuery(userID string, offset, size int) squirrel.SelectBuilder {
	return selectRequests("count(*) OVER() AS total_count").
		Where(squirrel.NotEq{"r.requester_id": userID}).
		OrderBy("r.created_at DESC", "r.id DESC").
		Limit(uint64(size)).
		Offset(uint64(offset))
}

func (r *pgxRepository) ListByRequester(ctx context.Context, requesterID string) ([]*ItemRequest, error) {
	query, args, err := ownQuery(requesterID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list own requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list own requests failed: %w", err)
	}
	defer rows.Close()

	var result []*ItemRequest
	for rows.Next() {
		req, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item request failed: %w", err)
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item requests failed: %w", err)
	}
	return result, nil
}

func (r *pgxRepository) ListOthers(ctx context.Context, userID string, offset, size int) ([]*ItemRequest, int, error) {
	query, args, err := othersQuery(userID, offset, size).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list requests query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list requests failed: %w", err)
	}
	defer rows.Close()

	var result []*ItemRequest
	var total int
	for rows.Next() {
		req, err := r.scan(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan item request failed: %w", err)
		}
		result = append(result, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate item requests failed: %w", err)
	}
	return result, total, nil
}
