package item

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	// ListForItems returns comments keyed by item id, oldest first.
	ListForItems(ctx context.Context, itemIDs []string) (map[string][]*Comment, error)
}

type pgxCommentRepository struct {
	pool *pgxpool.Pool
}

func NewPgxCommentRepository(pool *pgxpool.Pool) CommentRepository {
	return &pgxCommentRepository{pool: pool}
}

func (r *pgxCommentRepository) Create(ctx context.Context, c *Comment) error {
	const query = `
		INSERT INTO public.comments (text, item_id, author_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := r.pool.QueryRow(ctx, query, c.Text, c.ItemID, c.AuthorID, c.CreatedAt).Scan(&c.ID); err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}
	return nil
}

func commentsQuery(itemIDs []string) squirrel.SelectBuilder {
	return psql.Select("c.id", "c.text", "c.item_id", "c.author_id", "u.name", "c.created_at").
		From("public.comments c").
		Join("public.users u ON c.author_id = u.id").
		Where(squirrel.Eq{"c.item_id": itemIDs}).
		OrderBy("c.created_at", "c.id")
}

func (r *pgxCommentRepository) ListForItems(ctx context.Context, itemIDs []string) (map[string][]*Comment, error) {
	result := make(map[string][]*Comment, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}

	query, args, err := commentsQuery(itemIDs).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list comments query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		result[c.ItemID] = append(result[c.ItemID], &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments failed: %w", err)
	}
	return result, nil
}
