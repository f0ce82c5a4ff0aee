package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tubeshelf/tubeshelf-go/internal/model"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, username, email, password_hash, is_admin, created_at, updated_at`

func scanUser(row pgxRow, u *model.User) error {
	return row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
}

// pgxRow is the single-row scan interface shared by QueryRow results.
type pgxRow interface {
	Scan(dest ...any) error
}

// Create inserts a new user. A unique violation surfaces when the username
// or email is already taken.
func (r *UserRepo) Create(ctx context.Context, username, email, passwordHash string, isAdmin bool) (*model.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns

	var u model.User
	if err := scanUser(r.pool.QueryRow(ctx, query, username, email, passwordHash, isAdmin), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID returns a single user by primary key.
func (r *UserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id), &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByUsername returns a single user by their unique username.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username), &u)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns a page of users plus the total count.
func (r *UserRepo) List(ctx context.Context, page, limit int) ([]model.User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]model.User, 0, limit)
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// Update applies a partial update. Nil fields keep their current values.
func (r *UserRepo) Update(ctx context.Context, id int64, email, passwordHash *string, isAdmin *bool) (*model.User, error) {
	query := `
		UPDATE users
		SET email         = COALESCE($2, email),
		    password_hash = COALESCE($3, password_hash),
		    is_admin      = COALESCE($4, is_admin),
		    updated_at    = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	var u model.User
	if err := scanUser(r.pool.QueryRow(ctx, query, id, email, passwordHash, isAdmin), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes a user. Comments and ratings keep their FK, so deletion
// fails with a foreign-key violation while content by the user exists.
func (r *UserRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// GetStats returns aggregate catalog statistics.
func (r *UserRepo) GetStats(ctx context.Context) (*model.StatsResponse, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM videos)     AS total_videos,
			(SELECT COUNT(*) FROM categories) AS total_categories,
			(SELECT COUNT(*) FROM tags)       AS total_tags,
			(SELECT COUNT(*) FROM comments)   AS total_comments,
			(SELECT COUNT(*) FROM ratings)    AS total_ratings,
			(SELECT COUNT(*) FROM users)      AS total_users`

	var stats model.StatsResponse
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalVideos, &stats.TotalCategories, &stats.TotalTags,
		&stats.TotalComments, &stats.TotalRatings, &stats.TotalUsers,
	)
	if err != nil {
		return nil, err
	}

	catQuery := `
		SELECT c.name, COUNT(v.id) AS total
		FROM categories c
		JOIN videos v ON v.category_id = c.id
		GROUP BY c.name
		ORDER BY total DESC
		LIMIT 10`

	rows, err := r.pool.Query(ctx, catQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats.TopCategories = make(map[string]int)
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, err
		}
		stats.TopCategories[name] = count
	}
	return &stats, rows.Err()
}
