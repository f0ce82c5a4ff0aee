package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tubeshelf/tubeshelf-go/internal/model"
)

type WatchedChannelRepo struct {
	pool *pgxpool.Pool
}

func NewWatchedChannelRepo(pool *pgxpool.Pool) *WatchedChannelRepo {
	return &WatchedChannelRepo{pool: pool}
}

const channelColumns = `id, channel_id, title, frequency, last_check, created_at`

func scanChannel(row pgxRow, ch *model.WatchedChannel) error {
	return row.Scan(&ch.ID, &ch.ChannelID, &ch.Title, &ch.Frequency, &ch.LastCheck, &ch.CreatedAt)
}

// List returns all watched channels.
func (r *WatchedChannelRepo) List(ctx context.Context) ([]model.WatchedChannel, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+channelColumns+` FROM watched_channels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	channels := make([]model.WatchedChannel, 0)
	for rows.Next() {
		var ch model.WatchedChannel
		if err := scanChannel(rows, &ch); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

// ListDue returns channels of the given frequency whose last check is older
// than the frequency interval (or that were never checked).
func (r *WatchedChannelRepo) ListDue(ctx context.Context, frequency string) ([]model.WatchedChannel, error) {
	interval := "1 day"
	if frequency == model.FrequencyWeekly {
		interval = "7 days"
	}

	query := `
		SELECT ` + channelColumns + `
		FROM watched_channels
		WHERE frequency = $1
		  AND (last_check IS NULL OR last_check < NOW() - $2::interval)
		ORDER BY last_check NULLS FIRST`

	rows, err := r.pool.Query(ctx, query, frequency, interval)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	channels := make([]model.WatchedChannel, 0)
	for rows.Next() {
		var ch model.WatchedChannel
		if err := scanChannel(rows, &ch); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}

// Create registers a channel for scheduled imports. The channel_id unique
// constraint rejects duplicates.
func (r *WatchedChannelRepo) Create(ctx context.Context, channelID, title, frequency string) (*model.WatchedChannel, error) {
	query := `
		INSERT INTO watched_channels (channel_id, title, frequency)
		VALUES ($1, $2, $3)
		RETURNING ` + channelColumns

	var ch model.WatchedChannel
	if err := scanChannel(r.pool.QueryRow(ctx, query, channelID, title, frequency), &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// Delete unregisters a channel.
func (r *WatchedChannelRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM watched_channels WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// MarkChecked stamps last_check after an import run.
func (r *WatchedChannelRepo) MarkChecked(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE watched_channels SET last_check = NOW() WHERE id = $1`, id)
	return err
}
