package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/tubeshelf/tubeshelf-go/internal/model"
	"github.com/tubeshelf/tubeshelf-go/internal/repository"
)

// ErrImporterDisabled maps to 503: no YouTube API key configured.
var ErrImporterDisabled = errors.New("youtube importer is not configured")

// ErrChannelWatched signals a duplicate watched-channel registration.
var ErrChannelWatched = errors.New("channel is already watched")

const playlistPageSize = 50

var playlistIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{10,64}$`)

// Playlist items whose video is gone keep a placeholder title.
var unavailableTitles = map[string]bool{
	"Private video": true,
	"Deleted video": true,
}

// playlistPager abstracts the YouTube Data API for testing.
type playlistPager interface {
	// Page fetches one page of playlist items.
	Page(ctx context.Context, playlistID, pageToken string) (*youtube.PlaylistItemListResponse, error)
	// Durations returns the duration in seconds per video ID.
	Durations(ctx context.Context, videoIDs []string) (map[string]int, error)
}

type ytPager struct {
	svc *youtube.Service
}

func (p *ytPager) Page(ctx context.Context, playlistID, pageToken string) (*youtube.PlaylistItemListResponse, error) {
	call := p.svc.PlaylistItems.List([]string{"snippet", "contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(playlistPageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}
	return call.Do()
}

func (p *ytPager) Durations(ctx context.Context, videoIDs []string) (map[string]int, error) {
	resp, err := p.svc.Videos.List([]string{"contentDetails"}).
		Id(videoIDs...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	durations := make(map[string]int, len(resp.Items))
	for _, item := range resp.Items {
		if item.ContentDetails == nil {
			continue
		}
		durations[item.Id] = ParseISO8601Duration(item.ContentDetails.Duration)
	}
	return durations, nil
}

// ImportService pulls YouTube playlists into the catalog. Re-imports are
// idempotent: videos upsert on their YouTube ID.
type ImportService struct {
	pager    playlistPager
	videos   *repository.VideoRepo
	channels *repository.WatchedChannelRepo
	cache    *CacheService
	activity *ActivityService
}

// NewImportService builds the service. With an empty API key the importer
// stays disabled and every import returns ErrImporterDisabled.
func NewImportService(ctx context.Context, apiKey string, videos *repository.VideoRepo,
	channels *repository.WatchedChannelRepo, cache *CacheService, activity *ActivityService) (*ImportService, error) {

	s := &ImportService{
		videos:   videos,
		channels: channels,
		cache:    cache,
		activity: activity,
	}

	if apiKey == "" {
		log.Println("youtube: no API key configured, importer disabled")
		return s, nil
	}

	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("youtube service: %w", err)
	}
	s.pager = &ytPager{svc: svc}
	return s, nil
}

// Enabled reports whether an API key was configured.
func (s *ImportService) Enabled() bool {
	return s.pager != nil
}

// ExtractPlaylistID pulls the playlist identifier out of a YouTube URL, or
// accepts a raw playlist ID.
func ExtractPlaylistID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("playlist URL is empty")
	}

	if strings.Contains(raw, "://") || strings.Contains(raw, "list=") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("invalid playlist URL: %w", err)
		}
		id := u.Query().Get("list")
		if id == "" {
			return "", errors.New("playlist URL has no list parameter")
		}
		if !playlistIDRe.MatchString(id) {
			return "", errors.New("playlist ID contains invalid characters")
		}
		return id, nil
	}

	if !playlistIDRe.MatchString(raw) {
		return "", errors.New("playlist ID contains invalid characters")
	}
	return raw, nil
}

// UploadsPlaylistID maps a channel ID to its uploads playlist (UC... -> UU...).
func UploadsPlaylistID(channelID string) string {
	if strings.HasPrefix(channelID, "UC") {
		return "UU" + channelID[2:]
	}
	return channelID
}

// ParseISO8601Duration converts a YouTube duration (PT1H2M3S) to seconds.
// Malformed input yields 0.
var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

func ParseISO8601Duration(d string) int {
	m := isoDurationRe.FindStringSubmatch(d)
	if m == nil {
		return 0
	}
	secs := 0
	for i, mult := range []int{3600, 60, 1} {
		if m[i+1] != "" {
			n := 0
			for _, c := range m[i+1] {
				n = n*10 + int(c-'0')
			}
			secs += n * mult
		}
	}
	return secs
}

// ImportPlaylist pages through the playlist and upserts each video.
// Individual failures are counted and skipped; the batch is never atomic.
// actorID is nil for scheduled imports.
func (s *ImportService) ImportPlaylist(ctx context.Context, actorID *int64, playlistURL string, categoryID *int64) (*model.ImportSummary, error) {
	if s.pager == nil {
		return nil, ErrImporterDisabled
	}

	playlistID, err := ExtractPlaylistID(playlistURL)
	if err != nil {
		return nil, err
	}

	summary := &model.ImportSummary{PlaylistID: playlistID}

	pageToken := ""
	for {
		resp, err := s.pager.Page(ctx, playlistID, pageToken)
		if err != nil {
			// A failed page fetch aborts only when nothing was processed yet;
			// later pages report partial success.
			if summary.Imported+summary.Updated+summary.Failed+summary.Skipped == 0 {
				return nil, fmt.Errorf("playlist fetch: %w", err)
			}
			log.Printf("import: page fetch failed after partial import: %v", err)
			summary.Failed++
			break
		}

		durations := s.fetchDurations(ctx, resp.Items)

		for _, item := range resp.Items {
			s.importItem(ctx, item, durations, categoryID, summary)
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	s.activity.Record(ctx, actorID, model.ActionImport, "playlist", 0,
		fmt.Sprintf("%s: %d imported, %d updated, %d skipped, %d failed",
			playlistID, summary.Imported, summary.Updated, summary.Skipped, summary.Failed))

	return summary, nil
}

// fetchDurations resolves durations for one page of items. Best-effort:
// on error videos keep their previous duration.
func (s *ImportService) fetchDurations(ctx context.Context, items []*youtube.PlaylistItem) map[string]int {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
			ids = append(ids, item.ContentDetails.VideoId)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	durations, err := s.pager.Durations(ctx, ids)
	if err != nil {
		log.Printf("import: duration lookup failed: %v", err)
		return nil
	}
	return durations
}

func (s *ImportService) importItem(ctx context.Context, item *youtube.PlaylistItem,
	durations map[string]int, categoryID *int64, summary *model.ImportSummary) {

	if item.Snippet == nil || item.ContentDetails == nil {
		summary.Skipped++
		return
	}

	videoID := item.ContentDetails.VideoId
	title := item.Snippet.Title
	if videoID == "" || title == "" || unavailableTitles[title] {
		summary.Skipped++
		return
	}

	var publishedAt *time.Time
	if item.ContentDetails.VideoPublishedAt != "" {
		if t, err := time.Parse(time.RFC3339, item.ContentDetails.VideoPublishedAt); err == nil {
			publishedAt = &t
		}
	}

	thumbnail := ""
	if th := item.Snippet.Thumbnails; th != nil {
		switch {
		case th.Medium != nil:
			thumbnail = th.Medium.Url
		case th.High != nil:
			thumbnail = th.High.Url
		case th.Default != nil:
			thumbnail = th.Default.Url
		}
	}

	v, inserted, err := s.videos.Upsert(ctx, title, videoID, item.Snippet.Description,
		thumbnail, durations[videoID], publishedAt, categoryID)
	if err != nil {
		log.Printf("import: upsert %s failed: %v", videoID, err)
		summary.Failed++
		return
	}

	if inserted {
		summary.Imported++
	} else {
		summary.Updated++
		if err := s.cache.InvalidateVideo(ctx, v.ID); err != nil {
			log.Printf("cache: invalidate video error: %v", err)
		}
	}
}

// ListChannels returns every watched channel.
func (s *ImportService) ListChannels(ctx context.Context) ([]model.WatchedChannel, error) {
	return s.channels.List(ctx)
}

// WatchChannel registers a channel for scheduled imports.
func (s *ImportService) WatchChannel(ctx context.Context, actorID int64, req model.WatchedChannelRequest) (*model.WatchedChannel, error) {
	ch, err := s.channels.Create(ctx, req.ChannelID, req.Title, req.Frequency)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrChannelWatched
		}
		return nil, err
	}
	s.activity.Record(ctx, &actorID, model.ActionCreate, "watched_channel", ch.ID, ch.ChannelID)
	return ch, nil
}

// UnwatchChannel removes a channel from the schedule.
func (s *ImportService) UnwatchChannel(ctx context.Context, actorID, id int64) error {
	ok, err := s.channels.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}
	s.activity.Record(ctx, &actorID, model.ActionDelete, "watched_channel", id, "")
	return nil
}

// ImportDueChannels imports the uploads playlist of every watched channel
// due at the given frequency. Returns the number of channels processed.
func (s *ImportService) ImportDueChannels(ctx context.Context, frequency string) (int, error) {
	if s.pager == nil {
		return 0, ErrImporterDisabled
	}

	channels, err := s.channels.ListDue(ctx, frequency)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, ch := range channels {
		summary, err := s.ImportPlaylist(ctx, nil, UploadsPlaylistID(ch.ChannelID), nil)
		if err != nil {
			log.Printf("import: channel %s failed: %v", ch.ChannelID, err)
			continue
		}

		if err := s.channels.MarkChecked(ctx, ch.ID); err != nil {
			log.Printf("import: mark checked %s failed: %v", ch.ChannelID, err)
		}

		log.Printf("import: channel %s: %d imported, %d updated, %d skipped, %d failed",
			ch.ChannelID, summary.Imported, summary.Updated, summary.Skipped, summary.Failed)
		processed++
	}
	return processed, nil
}
