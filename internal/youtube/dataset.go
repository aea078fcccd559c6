package youtube

import (
	"context"

	xlog "ytexport/internal/log"
)

// FetchChannelData resolves the channel, enumerates its uploads and merges
// per-video details. Stages run strictly one after another.
func FetchChannelData(ctx context.Context, api API, channelID string) (*ChannelDataset, error) {
	logger := xlog.WithComponent("youtube")

	info, uploadsID, err := ResolveChannel(ctx, api, channelID)
	if err != nil {
		return nil, err
	}

	videos, ids, err := EnumerateUploads(ctx, api, uploadsID)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("videos", len(videos)).Msg("enumerated uploads")

	videos, err = FetchAndMerge(ctx, api, ids, videos)
	if err != nil {
		return nil, err
	}

	merged := 0
	for _, v := range videos {
		if v.VideoDetail != nil {
			merged++
		}
	}
	logger.Info().Int("videos", len(videos)).Int("with_details", merged).Msg("merged video details")

	return &ChannelDataset{ChannelInfo: info, Videos: videos}, nil
}
