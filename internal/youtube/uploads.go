package youtube

import (
	"context"
	"iter"

	"google.golang.org/api/youtube/v3"

	xlog "ytexport/internal/log"
)

// UploadPages returns the pages of a playlist as a lazy sequence. Each step
// issues one playlistItems.list call and yields the summaries of that page;
// the sequence ends after a response without a continuation token, or after
// yielding the first error. An empty playlistID yields nothing.
func UploadPages(ctx context.Context, api API, playlistID string) iter.Seq2[[]VideoSummary, error] {
	return func(yield func([]VideoSummary, error) bool) {
		if playlistID == "" {
			return
		}
		logger := xlog.WithComponent("youtube")

		token := ""
		for page := 1; ; page++ {
			resp, err := api.ListPlaylistItems(ctx, playlistID, token)
			if err != nil {
				yield(nil, &ListerError{Op: "playlistItems", Target: playlistID, Err: err})
				return
			}
			if resp == nil {
				return
			}

			summaries := pageSummaries(resp.Items)
			logger.Debug().
				Str("playlist_id", playlistID).
				Int("page", page).
				Int("items", len(resp.Items)).
				Int("videos", len(summaries)).
				Msg("fetched playlist page")

			if !yield(summaries, nil) {
				return
			}
			token = resp.NextPageToken
			if token == "" {
				return
			}
		}
	}
}

// EnumerateUploads drains UploadPages and returns the summaries and their ids
// in playlist order.
func EnumerateUploads(ctx context.Context, api API, playlistID string) ([]VideoSummary, []string, error) {
	videos := make([]VideoSummary, 0)
	ids := make([]string, 0)

	for page, err := range UploadPages(ctx, api, playlistID) {
		if err != nil {
			return nil, nil, err
		}
		for _, v := range page {
			videos = append(videos, v)
			ids = append(ids, v.ID)
		}
	}
	return videos, ids, nil
}

// pageSummaries converts playlist items, skipping those without a video id.
func pageSummaries(items []*youtube.PlaylistItem) []VideoSummary {
	out := make([]VideoSummary, 0, len(items))
	for _, item := range items {
		if item == nil || item.Snippet == nil {
			continue
		}
		s := item.Snippet
		if s.ResourceId == nil || s.ResourceId.VideoId == "" {
			continue
		}
		out = append(out, VideoSummary{
			Title:       s.Title,
			ID:          s.ResourceId.VideoId,
			PublishedAt: s.PublishedAt,
			Description: s.Description,
			Thumbnail:   summaryThumbnail(s.Thumbnails),
		})
	}
	return out
}
