package youtube

import (
	"context"
	"fmt"

	"google.golang.org/api/youtube/v3"
)

// fakeAPI serves canned responses and records the calls made.
type fakeAPI struct {
	channels   *youtube.ChannelListResponse
	channelErr error

	// pages is keyed by page token; "" is the first page.
	pages       map[string]*youtube.PlaylistItemListResponse
	playlistErr error

	videos   map[string]*youtube.Video
	videoErr error

	channelCalls int
	tokens       []string
	batches      [][]string
}

func (f *fakeAPI) ListChannels(ctx context.Context, channelID string) (*youtube.ChannelListResponse, error) {
	f.channelCalls++
	if f.channelErr != nil {
		return nil, f.channelErr
	}
	if f.channels == nil {
		return &youtube.ChannelListResponse{}, nil
	}
	return f.channels, nil
}

func (f *fakeAPI) ListPlaylistItems(ctx context.Context, playlistID, pageToken string) (*youtube.PlaylistItemListResponse, error) {
	f.tokens = append(f.tokens, pageToken)
	if f.playlistErr != nil {
		return nil, f.playlistErr
	}
	page, ok := f.pages[pageToken]
	if !ok {
		return nil, fmt.Errorf("unexpected page token %q", pageToken)
	}
	return page, nil
}

func (f *fakeAPI) ListVideos(ctx context.Context, ids []string) (*youtube.VideoListResponse, error) {
	f.batches = append(f.batches, append([]string(nil), ids...))
	if f.videoErr != nil {
		return nil, f.videoErr
	}
	resp := &youtube.VideoListResponse{}
	for _, id := range ids {
		if v, ok := f.videos[id]; ok {
			resp.Items = append(resp.Items, v)
		}
	}
	return resp, nil
}

func videoID(i int) string { return fmt.Sprintf("vid-%04d", i) }

func playlistItem(id string) *youtube.PlaylistItem {
	return &youtube.PlaylistItem{
		Snippet: &youtube.PlaylistItemSnippet{
			Title:       "title " + id,
			Description: "desc " + id,
			PublishedAt: "2024-01-01T00:00:00Z",
			ResourceId:  &youtube.ResourceId{VideoId: id},
			Thumbnails: &youtube.ThumbnailDetails{
				High: &youtube.Thumbnail{Url: "https://i.ytimg.com/vi/" + id + "/hqdefault.jpg"},
			},
		},
	}
}

// pagedPlaylist splits total items into pages of MaxPageSize chained by tokens.
func pagedPlaylist(total int) map[string]*youtube.PlaylistItemListResponse {
	pages := make(map[string]*youtube.PlaylistItemListResponse)
	token := ""
	start := 0
	for {
		page := &youtube.PlaylistItemListResponse{}
		end := min(start+MaxPageSize, total)
		for i := start; i < end; i++ {
			page.Items = append(page.Items, playlistItem(videoID(i)))
		}
		pages[token] = page
		if end >= total {
			return pages
		}
		page.NextPageToken = fmt.Sprintf("page-%d", len(pages))
		token = page.NextPageToken
		start = end
	}
}

func video(id, duration, live string, views uint64) *youtube.Video {
	return &youtube.Video{
		Id:             id,
		ContentDetails: &youtube.VideoContentDetails{Duration: duration},
		Statistics:     &youtube.VideoStatistics{ViewCount: views},
		Snippet:        &youtube.VideoSnippet{LiveBroadcastContent: live},
	}
}

func channelResponse(uploads string) *youtube.ChannelListResponse {
	return &youtube.ChannelListResponse{
		Items: []*youtube.Channel{{
			Id: "UCtest",
			Snippet: &youtube.ChannelSnippet{
				Title:       "テストチャンネル",
				Description: "about",
				PublishedAt: "2015-05-05T12:00:00Z",
				Thumbnails: &youtube.ThumbnailDetails{
					Default: &youtube.Thumbnail{Url: "https://yt3.example/default.jpg"},
					High:    &youtube.Thumbnail{Url: "https://yt3.example/high.jpg"},
				},
			},
			ContentDetails: &youtube.ChannelContentDetails{
				RelatedPlaylists: &youtube.ChannelContentDetailsRelatedPlaylists{Uploads: uploads},
			},
		}},
	}
}
