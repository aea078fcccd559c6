package youtube

import (
	"context"

	"google.golang.org/api/youtube/v3"

	xlog "ytexport/internal/log"
)

// ResolveChannel fetches the channel profile and the id of its uploads
// playlist. A lookup with no items returns ErrChannelNotFound. Absent fields
// resolve to empty strings.
func ResolveChannel(ctx context.Context, api API, channelID string) (ChannelInfo, string, error) {
	resp, err := api.ListChannels(ctx, channelID)
	if err != nil {
		return ChannelInfo{}, "", &ListerError{Op: "channels", Target: channelID, Err: err}
	}
	if resp == nil || len(resp.Items) == 0 || resp.Items[0] == nil {
		return ChannelInfo{}, "", &ListerError{Op: "channels", Target: channelID, Err: ErrChannelNotFound}
	}

	item := resp.Items[0]
	info := ChannelInfo{ID: channelID}
	if s := item.Snippet; s != nil {
		info.Title = s.Title
		info.Description = s.Description
		info.PublishedAt = s.PublishedAt
		info.Thumbnail = bestThumbnail(s.Thumbnails)
	}

	var uploads string
	if cd := item.ContentDetails; cd != nil && cd.RelatedPlaylists != nil {
		uploads = cd.RelatedPlaylists.Uploads
	}

	logger := xlog.WithComponent("youtube")
	logger.Info().
		Str("channel_id", channelID).
		Str("title", info.Title).
		Str("uploads", uploads).
		Msg("resolved channel")

	return info, uploads, nil
}

// bestThumbnail returns the URL of the highest-resolution thumbnail present,
// or "" when there is none.
func bestThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, th := range []*youtube.Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}

// summaryThumbnail prefers the high variant, then default. Nil when neither exists.
func summaryThumbnail(t *youtube.ThumbnailDetails) *string {
	if t == nil {
		return nil
	}
	for _, th := range []*youtube.Thumbnail{t.High, t.Default} {
		if th != nil && th.Url != "" {
			url := th.Url
			return &url
		}
	}
	return nil
}
