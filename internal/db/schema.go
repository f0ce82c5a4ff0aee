package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied at startup. Statements are idempotent so restarts
// and multi-instance deployments are safe.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	username      VARCHAR(50) NOT NULL UNIQUE,
	email         VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(100) NOT NULL,
	is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS categories (
	id         BIGSERIAL PRIMARY KEY,
	name       VARCHAR(100) NOT NULL,
	slug       VARCHAR(120) NOT NULL UNIQUE,
	parent_id  BIGINT REFERENCES categories(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS subcategories (
	id          BIGSERIAL PRIMARY KEY,
	name        VARCHAR(100) NOT NULL,
	slug        VARCHAR(120) NOT NULL UNIQUE,
	category_id BIGINT NOT NULL REFERENCES categories(id),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS tags (
	id   BIGSERIAL PRIMARY KEY,
	name VARCHAR(50) NOT NULL UNIQUE,
	slug VARCHAR(120) NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS videos (
	id             BIGSERIAL PRIMARY KEY,
	title          VARCHAR(255) NOT NULL,
	youtube_id     VARCHAR(16) NOT NULL UNIQUE,
	description    TEXT NOT NULL DEFAULT '',
	category_id    BIGINT REFERENCES categories(id),
	subcategory_id BIGINT REFERENCES subcategories(id),
	duration       INTEGER NOT NULL DEFAULT 0,
	views          BIGINT NOT NULL DEFAULT 0,
	thumbnail_url  VARCHAR(255) NOT NULL DEFAULT '',
	published_at   TIMESTAMPTZ,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS video_tags (
	video_id BIGINT NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
	tag_id   BIGINT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY (video_id, tag_id)
);

CREATE TABLE IF NOT EXISTS comments (
	id         BIGSERIAL PRIMARY KEY,
	video_id   BIGINT NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
	user_id    BIGINT NOT NULL REFERENCES users(id),
	content    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS ratings (
	video_id   BIGINT NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
	user_id    BIGINT NOT NULL REFERENCES users(id),
	score      SMALLINT NOT NULL CHECK (score BETWEEN 1 AND 5),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (video_id, user_id)
);

CREATE TABLE IF NOT EXISTS activity_logs (
	id          BIGSERIAL PRIMARY KEY,
	user_id     BIGINT REFERENCES users(id) ON DELETE SET NULL,
	action      VARCHAR(20) NOT NULL,
	entity_type VARCHAR(30) NOT NULL,
	entity_id   BIGINT NOT NULL,
	details     TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS watched_channels (
	id         BIGSERIAL PRIMARY KEY,
	channel_id VARCHAR(32) NOT NULL UNIQUE,
	title      VARCHAR(255) NOT NULL DEFAULT '',
	frequency  VARCHAR(10) NOT NULL CHECK (frequency IN ('daily', 'weekly')),
	last_check TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_videos_category ON videos(category_id);
CREATE INDEX IF NOT EXISTS idx_videos_subcategory ON videos(subcategory_id);
CREATE INDEX IF NOT EXISTS idx_subcategories_category ON subcategories(category_id);
CREATE INDEX IF NOT EXISTS idx_comments_video ON comments(video_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_comments_user ON comments(user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_activity_logs_created ON activity_logs(created_at DESC);
`

// Bootstrap creates all tables and indexes if they do not exist yet.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
