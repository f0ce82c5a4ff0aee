package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tubeshelf/tubeshelf-go/internal/model"
)

type SubcategoryRepo struct {
	pool *pgxpool.Pool
}

func NewSubcategoryRepo(pool *pgxpool.Pool) *SubcategoryRepo {
	return &SubcategoryRepo{pool: pool}
}

const subcategoryColumns = `id, name, slug, category_id, created_at, updated_at`

func scanSubcategory(row pgxRow, s *model.Subcategory) error {
	return row.Scan(&s.ID, &s.Name, &s.Slug, &s.CategoryID, &s.CreatedAt, &s.UpdatedAt)
}

// List returns all subcategories, optionally filtered by category.
func (r *SubcategoryRepo) List(ctx context.Context, categoryID *int64) ([]model.Subcategory, error) {
	query := `SELECT ` + subcategoryColumns + ` FROM subcategories`
	args := []any{}
	if categoryID != nil {
		query += ` WHERE category_id = $1`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := make([]model.Subcategory, 0)
	for rows.Next() {
		var s model.Subcategory
		if err := scanSubcategory(rows, &s); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// FindByID returns a single subcategory by primary key.
func (r *SubcategoryRepo) FindByID(ctx context.Context, id int64) (*model.Subcategory, error) {
	var s model.Subcategory
	err := scanSubcategory(r.pool.QueryRow(ctx, `SELECT `+subcategoryColumns+` FROM subcategories WHERE id = $1`, id), &s)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a new subcategory. A foreign-key violation surfaces when
// the parent category does not exist.
func (r *SubcategoryRepo) Create(ctx context.Context, name, slug string, categoryID int64) (*model.Subcategory, error) {
	query := `
		INSERT INTO subcategories (name, slug, category_id)
		VALUES ($1, $2, $3)
		RETURNING ` + subcategoryColumns

	var s model.Subcategory
	if err := scanSubcategory(r.pool.QueryRow(ctx, query, name, slug, categoryID), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Update renames or re-parents a subcategory.
func (r *SubcategoryRepo) Update(ctx context.Context, id int64, name, slug string, categoryID int64) (*model.Subcategory, error) {
	query := `
		UPDATE subcategories
		SET name = $2, slug = $3, category_id = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + subcategoryColumns

	var s model.Subcategory
	if err := scanSubcategory(r.pool.QueryRow(ctx, query, id, name, slug, categoryID), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes a subcategory unless videos still reference it.
// Returns false without deleting when dependents exist.
func (r *SubcategoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var dependents int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM videos WHERE subcategory_id = $1`, id).Scan(&dependents)
	if err != nil {
		return false, err
	}
	if dependents > 0 {
		return false, nil
	}

	tag, err := tx.Exec(ctx, `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, ErrNotFound
	}

	return true, tx.Commit(ctx)
}
