package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tubeshelf/tubeshelf-go/internal/model"
)

type CategoryRepo struct {
	pool *pgxpool.Pool
}

func NewCategoryRepo(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

const categoryColumns = `id, name, slug, parent_id, created_at, updated_at`

func scanCategory(row pgxRow, c *model.Category) error {
	return row.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.CreatedAt, &c.UpdatedAt)
}

// List returns all categories ordered by name.
func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := scanCategory(rows, &c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// FindByID returns a single category by primary key.
func (r *CategoryRepo) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	err := scanCategory(r.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id), &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new category. Slug collisions surface as unique violations.
func (r *CategoryRepo) Create(ctx context.Context, name, slug string, parentID *int64) (*model.Category, error) {
	query := `
		INSERT INTO categories (name, slug, parent_id)
		VALUES ($1, $2, $3)
		RETURNING ` + categoryColumns

	var c model.Category
	if err := scanCategory(r.pool.QueryRow(ctx, query, name, slug, parentID), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Update renames a category. Returns ErrNotFound when no row matches.
func (r *CategoryRepo) Update(ctx context.Context, id int64, name, slug string, parentID *int64) (*model.Category, error) {
	query := `
		UPDATE categories
		SET name = $2, slug = $3, parent_id = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + categoryColumns

	var c model.Category
	if err := scanCategory(r.pool.QueryRow(ctx, query, id, name, slug, parentID), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a category unless subcategories, child categories, or
// videos still reference it. Returns false without deleting when dependents
// exist, so the handler can produce a 409.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var dependents int
	err = tx.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM subcategories WHERE category_id = $1)
		     + (SELECT COUNT(*) FROM categories WHERE parent_id = $1)
		     + (SELECT COUNT(*) FROM videos WHERE category_id = $1)`, id).Scan(&dependents)
	if err != nil {
		return false, err
	}
	if dependents > 0 {
		return false, nil
	}

	tag, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, ErrNotFound
	}

	return true, tx.Commit(ctx)
}
