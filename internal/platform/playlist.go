package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultExpandTimeout = 60 * time.Second
)

// URL parameters
const (
	PlaylistParam = "list"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// PlaylistEntry is one video of an expanded playlist
type PlaylistEntry struct {
	ID    string
	Title string
	URL   string
}

// playlistLister is the slice of the ytdlp client the expander needs
type playlistLister func(ctx context.Context, playlistID string) ([]PlaylistEntry, error)

// PlaylistExpander turns playlist URLs into single-video URLs
type PlaylistExpander struct {
	timeout time.Duration
	list    playlistLister
}

// NewPlaylistExpander creates an expander backed by the ytdlp library
func NewPlaylistExpander() *PlaylistExpander {
	return &PlaylistExpander{
		timeout: DefaultExpandTimeout,
		list:    listWithYTDLP,
	}
}

// SetTimeout sets the timeout for one expansion
func (p *PlaylistExpander) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// Expand lists the entries of a playlist URL
func (p *PlaylistExpander) Expand(ctx context.Context, rawURL string) ([]PlaylistEntry, error) {
	playlistID, err := ExtractPlaylistID(rawURL)
	if err != nil {
		return nil, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	entries, err := p.list(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}
	return entries, nil
}

// ExpandURLs replaces every playlist URL in urls with its video URLs.
// Non-playlist URLs are kept in place; a failing playlist aborts the expansion.
func (p *PlaylistExpander) ExpandURLs(ctx context.Context, urls []string) ([]string, error) {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if !IsPlaylistURL(u) {
			out = append(out, u)
			continue
		}
		entries, err := p.Expand(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", u, err)
		}
		for _, e := range entries {
			out = append(out, e.URL)
		}
	}
	return out, nil
}

// IsPlaylistURL checks if the URL carries a playlist ID
func IsPlaylistURL(rawURL string) bool {
	id, err := ExtractPlaylistID(rawURL)
	return err == nil && id != ""
}

// ExtractPlaylistID extracts the "list" query parameter.
// Supported forms:
// - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&index=1
// - https://www.youtube.com/playlist?list=PLAYLIST_ID
func ExtractPlaylistID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	id := u.Query().Get(PlaylistParam)
	if id == "" {
		return "", fmt.Errorf("URL does not contain playlist parameter: %s", rawURL)
	}
	return id, nil
}

// listWithYTDLP fetches every playlist item through the ytdlp client
func listWithYTDLP(ctx context.Context, playlistID string) ([]PlaylistEntry, error) {
	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]PlaylistEntry, 0, len(items))
	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		entries = append(entries, PlaylistEntry{
			ID:    it.VideoID,
			Title: it.Title,
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	return entries, nil
}
