package youtube

import (
	"context"
	"strconv"

	"google.golang.org/api/youtube/v3"

	xlog "ytexport/internal/log"
)

// Classify derives the category of a video. Live status is checked before
// duration.
func Classify(status LiveStatus, seconds int) Category {
	switch {
	case status == LiveStatusLive:
		return CategoryLiveNow
	case status == LiveStatusUpcoming:
		return CategoryLiveUpcoming
	case seconds < 60:
		return CategoryShort
	default:
		return CategoryStandard
	}
}

// Chunk splits ids into consecutive slices of at most size elements.
// The returned slices share ids' backing array.
func Chunk(ids []string, size int) [][]string {
	if size <= 0 {
		size = MaxPageSize
	}
	chunks := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end:end])
	}
	return chunks
}

// FetchDetails looks up ids in batches of MaxPageSize and returns the details
// keyed by video id. Ids the API does not return are absent from the map.
func FetchDetails(ctx context.Context, api API, ids []string) (map[string]VideoDetail, error) {
	logger := xlog.WithComponent("youtube")
	details := make(map[string]VideoDetail, len(ids))

	for i, chunk := range Chunk(ids, MaxPageSize) {
		resp, err := api.ListVideos(ctx, chunk)
		if err != nil {
			return nil, &ListerError{Op: "videos", Target: chunk[0], Err: err}
		}
		if resp == nil {
			continue
		}
		for _, item := range resp.Items {
			if item == nil || item.Id == "" {
				continue
			}
			details[item.Id] = detailFromVideo(item)
		}
		logger.Debug().
			Int("batch", i+1).
			Int("requested", len(chunk)).
			Int("returned", len(resp.Items)).
			Msg("fetched video details")
	}
	return details, nil
}

func detailFromVideo(v *youtube.Video) VideoDetail {
	d := VideoDetail{
		ViewCount:  "0",
		LiveStatus: LiveStatusNone,
	}
	if v.ContentDetails != nil {
		d.Duration = v.ContentDetails.Duration
	}
	if v.Statistics != nil {
		d.ViewCount = strconv.FormatUint(v.Statistics.ViewCount, 10)
	}
	if v.Snippet != nil && v.Snippet.LiveBroadcastContent != "" {
		d.LiveStatus = LiveStatus(v.Snippet.LiveBroadcastContent)
	}
	d.Seconds = ParseDuration(d.Duration)
	d.Category = Classify(d.LiveStatus, d.Seconds)
	return d
}

// Merge attaches details to the matching videos in place. Videos without an
// entry in details are left untouched.
func Merge(videos []VideoSummary, details map[string]VideoDetail) {
	for i := range videos {
		d, ok := details[videos[i].ID]
		if !ok {
			continue
		}
		videos[i].VideoDetail = &d
	}
}

// FetchAndMerge fetches details for ids and merges them into videos.
func FetchAndMerge(ctx context.Context, api API, ids []string, videos []VideoSummary) ([]VideoSummary, error) {
	details, err := FetchDetails(ctx, api, ids)
	if err != nil {
		return nil, err
	}
	Merge(videos, details)
	return videos, nil
}
