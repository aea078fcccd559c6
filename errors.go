package ytexport

import (
	"context"

	"ytexport/internal/config"
	"ytexport/internal/retry"
	"ytexport/internal/storage"
	"ytexport/internal/youtube"
)

// Types re-exported from the internal packages.
type (
	// ChannelDataset is the exported document.
	ChannelDataset = youtube.ChannelDataset
	// ChannelInfo is the channel profile.
	ChannelInfo = youtube.ChannelInfo
	// VideoSummary is one uploaded video, with details once merged.
	VideoSummary = youtube.VideoSummary
	// VideoDetail is the per-video metadata from the details lookup.
	VideoDetail = youtube.VideoDetail
	// Category is the derived kind of a video.
	Category = youtube.Category
	// Options configures the Data API client.
	Options = youtube.Options

	// ListerError wraps a failed API stage.
	ListerError = youtube.ListerError
	// RetryableError wraps errors that occurred after retries were exhausted.
	RetryableError = retry.RetryableError
	// StorageError wraps errors while writing the output file.
	StorageError = storage.StorageError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrChannelNotFound indicates the channel lookup returned no items.
	ErrChannelNotFound = youtube.ErrChannelNotFound
	// ErrConfigurationMissing indicates the API key or channel id is not set.
	ErrConfigurationMissing = config.ErrConfigurationMissing
)

// FetchChannelData fetches the channel profile and all uploads with details.
func FetchChannelData(ctx context.Context, opts Options, channelID string) (*ChannelDataset, error) {
	if opts.Retry.MaxBackoff == 0 {
		opts.Retry = retry.DefaultConfig()
	}
	api, err := youtube.NewDataAPI(ctx, opts)
	if err != nil {
		return nil, err
	}
	return youtube.FetchChannelData(ctx, api, channelID)
}

// Export fetches the dataset and writes it to path. Nothing is written if
// fetching fails.
func Export(ctx context.Context, opts Options, channelID, path string) (*ChannelDataset, error) {
	ds, err := FetchChannelData(ctx, opts, channelID)
	if err != nil {
		return nil, err
	}
	if err := storage.WriteJSON(path, ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// ParseDuration converts an ISO 8601 "PT#H#M#S" duration to seconds,
// returning 0 for strings it cannot parse.
func ParseDuration(s string) int {
	return youtube.ParseDuration(s)
}

// IsRetryable reports whether an API error is transient.
func IsRetryable(err error) bool {
	return youtube.ClassifyAPIError(err)
}
