package youtube

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	xlog "ytexport/internal/log"
	"ytexport/internal/retry"
)

// MaxPageSize is the largest page or batch the Data API accepts.
const MaxPageSize = 50

// API is the subset of the YouTube Data API v3 the exporter consumes.
type API interface {
	// ListChannels looks up a channel by id with snippet and contentDetails.
	ListChannels(ctx context.Context, channelID string) (*youtube.ChannelListResponse, error)
	// ListPlaylistItems fetches one page (up to MaxPageSize) of a playlist.
	ListPlaylistItems(ctx context.Context, playlistID, pageToken string) (*youtube.PlaylistItemListResponse, error)
	// ListVideos fetches contentDetails, statistics and snippet for up to MaxPageSize ids.
	ListVideos(ctx context.Context, ids []string) (*youtube.VideoListResponse, error)
}

// Options configures a DataAPI.
type Options struct {
	// APIKey is the Data API key. Required.
	APIKey string
	// Endpoint overrides the service base URL. Empty uses the library default.
	Endpoint string
	// Timeout bounds each HTTP request. Zero means no timeout.
	Timeout time.Duration
	// RequestsPerSecond paces outgoing requests. Zero means unpaced.
	RequestsPerSecond float64
	// Retry controls retries of transient failures.
	Retry retry.Config
	// Transport is the base round tripper. Nil uses http.DefaultTransport.
	Transport http.RoundTripper
}

// DataAPI implements API on top of google.golang.org/api/youtube/v3.
type DataAPI struct {
	service *youtube.Service
	retry   retry.Config
	log     zerolog.Logger
}

// NewDataAPI builds the service client. The API key is attached by the
// transport since a custom HTTP client bypasses option.WithAPIKey.
func NewDataAPI(ctx context.Context, opts Options) (*DataAPI, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("api key required")
	}

	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	if opts.RequestsPerSecond > 0 {
		base = &pacedTransport{
			limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
			next:    base,
		}
	}

	client := &http.Client{
		Timeout:   opts.Timeout,
		Transport: &transport.APIKey{Key: opts.APIKey, Transport: base},
	}

	clientOpts := []option.ClientOption{option.WithHTTPClient(client)}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	service, err := youtube.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	a := &DataAPI{
		service: service,
		retry:   opts.Retry,
		log:     xlog.WithComponent("youtube"),
	}
	a.retry.OnRetry = func(attempt int, err error, wait time.Duration) {
		a.log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("retrying request")
	}
	return a, nil
}

// ListChannels implements API.
func (a *DataAPI) ListChannels(ctx context.Context, channelID string) (*youtube.ChannelListResponse, error) {
	var resp *youtube.ChannelListResponse
	err := retry.Do(ctx, a.retry, ClassifyAPIError, func(ctx context.Context) error {
		var err error
		resp, err = a.service.Channels.List([]string{"snippet", "contentDetails"}).
			Id(channelID).
			Context(ctx).
			Do()
		return err
	})
	return resp, err
}

// ListPlaylistItems implements API.
func (a *DataAPI) ListPlaylistItems(ctx context.Context, playlistID, pageToken string) (*youtube.PlaylistItemListResponse, error) {
	var resp *youtube.PlaylistItemListResponse
	err := retry.Do(ctx, a.retry, ClassifyAPIError, func(ctx context.Context) error {
		call := a.service.PlaylistItems.List([]string{"snippet"}).
			PlaylistId(playlistID).
			MaxResults(MaxPageSize).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		var err error
		resp, err = call.Do()
		return err
	})
	return resp, err
}

// ListVideos implements API.
func (a *DataAPI) ListVideos(ctx context.Context, ids []string) (*youtube.VideoListResponse, error) {
	if len(ids) > MaxPageSize {
		return nil, fmt.Errorf("youtube: %d ids exceed batch size %d", len(ids), MaxPageSize)
	}
	var resp *youtube.VideoListResponse
	err := retry.Do(ctx, a.retry, ClassifyAPIError, func(ctx context.Context) error {
		var err error
		resp, err = a.service.Videos.List([]string{"contentDetails", "statistics", "snippet"}).
			Id(strings.Join(ids, ",")).
			Context(ctx).
			Do()
		return err
	})
	return resp, err
}

// ClassifyAPIError reports whether err is worth retrying: HTTP 429, 5xx and
// transport-level failures are; other API errors, cancellation and
// ErrChannelNotFound are not.
func ClassifyAPIError(err error) bool {
	if err == nil || errors.Is(err, ErrChannelNotFound) {
		return false
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return retry.IsRetryable(err)
}

// pacedTransport spaces requests out with a token bucket.
type pacedTransport struct {
	limiter *rate.Limiter
	next    http.RoundTripper
}

func (t *pacedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.next.RoundTrip(req)
}
