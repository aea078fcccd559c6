// Package ytexport exports a YouTube channel's profile and uploads to JSON.
//
// It uses the YouTube Data API v3 to resolve the channel, page through its
// uploads playlist and fetch per-video details in batches of 50, then merges
// everything into one dataset.
//
// Quick Start
//
//	ctx := context.Background()
//	ds, err := ytexport.FetchChannelData(ctx, ytexport.Options{APIKey: key}, "UCxxxxx")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, v := range ds.Videos {
//		fmt.Println(v.Title)
//	}
//
// Export writes the dataset to a file atomically:
//
//	if _, err := ytexport.Export(ctx, opts, "UCxxxxx", "channel_data.json"); err != nil {
//		log.Fatal(err)
//	}
//
// Output format
//
// The file holds a JSON object with "channel_info" and "videos". Field names
// are human-readable Japanese labels kept for compatibility with existing
// consumers, for example "チャンネル名" and "動画種類". Non-ASCII text is
// written literally with a two-space indent.
//
// Configuration
//
// The ytexport command reads:
//
//   - YT_API_KEY: Data API key (required)
//   - YT_CHANNEL_ID: channel to export (required)
//   - YTEXPORT_OUTPUT: output file (default channel_data.json)
//   - YTEXPORT_LANG: message language, ja or en (default ja)
//   - YTEXPORT_LOG_LEVEL: zerolog level (default warn)
//   - YTEXPORT_REQUEST_TIMEOUT, YTEXPORT_RPS: per-request timeout and pacing
//   - YTEXPORT_ENDPOINT: API base URL override
//   - YTEXPORT_MAX_RETRIES, YTEXPORT_INITIAL_BACKOFF, YTEXPORT_MAX_BACKOFF: retry tuning
//
// The same keys can be set in ytexport.yaml or ytexport.json.
//
// Error Handling
//
//	if errors.Is(err, ytexport.ErrChannelNotFound) {
//		fmt.Println("Channel not found")
//	}
//
//	var listerErr *ytexport.ListerError
//	if errors.As(err, &listerErr) {
//		fmt.Printf("%s %s failed: %v\n", listerErr.Op, listerErr.Target, listerErr.Err)
//	}
package ytexport
