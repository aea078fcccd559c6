// Package youtube fetches a channel profile and its uploads from the YouTube
// Data API v3 and merges per-video details into one dataset.
package youtube

import "fmt"

// ChannelInfo is the channel profile.
type ChannelInfo struct {
	ID          string `json:"チャンネルID"`
	Title       string `json:"チャンネル名"`
	Description string `json:"説明"`
	PublishedAt string `json:"公開日"`
	Thumbnail   string `json:"サムネイル"`
}

// VideoSummary is one entry of the uploads playlist. VideoDetail stays nil
// until Merge finds details for the video.
type VideoSummary struct {
	Title       string  `json:"タイトル"`
	ID          string  `json:"動画ID"`
	PublishedAt string  `json:"公開日"`
	Description string  `json:"説明"`
	Thumbnail   *string `json:"サムネイルURL"`
	*VideoDetail
}

// VideoDetail is the extended metadata from videos.list.
type VideoDetail struct {
	// Duration is the raw ISO 8601 duration, e.g. "PT4M13S".
	Duration string `json:"再生時間"`
	// ViewCount is kept in the API's string form.
	ViewCount  string     `json:"再生回数"`
	LiveStatus LiveStatus `json:"ライブ状態"`
	Category   Category   `json:"動画種類"`
	// Seconds is Duration parsed by ParseDuration.
	Seconds int `json:"-"`
}

// ChannelDataset is the file written at the end of a run.
type ChannelDataset struct {
	ChannelInfo ChannelInfo    `json:"channel_info"`
	Videos      []VideoSummary `json:"videos"`
}

// LiveStatus mirrors snippet.liveBroadcastContent.
type LiveStatus string

const (
	LiveStatusNone     LiveStatus = "none"
	LiveStatusLive     LiveStatus = "live"
	LiveStatusUpcoming LiveStatus = "upcoming"
)

// Category is the derived kind of a video.
type Category int

const (
	CategoryStandard Category = iota
	CategoryShort
	CategoryLiveNow
	CategoryLiveUpcoming
)

var categoryNames = [...]string{
	CategoryStandard:     "standard",
	CategoryShort:        "short",
	CategoryLiveNow:      "live-now",
	CategoryLiveUpcoming: "live-upcoming",
}

// categoryLabels are the labels written to the output file.
var categoryLabels = [...]string{
	CategoryStandard:     "通常動画",
	CategoryShort:        "ショート",
	CategoryLiveNow:      "ライブ中",
	CategoryLiveUpcoming: "ライブ予定",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Label returns the human-readable label used in the output file.
func (c Category) Label() string {
	if c < 0 || int(c) >= len(categoryLabels) {
		return c.String()
	}
	return categoryLabels[c]
}

func (c Category) MarshalText() ([]byte, error) {
	if c < 0 || int(c) >= len(categoryLabels) {
		return nil, fmt.Errorf("youtube: invalid category %d", int(c))
	}
	return []byte(categoryLabels[c]), nil
}

// UnmarshalText accepts either the label or the identifier form.
func (c *Category) UnmarshalText(text []byte) error {
	s := string(text)
	for i := range categoryLabels {
		if categoryLabels[i] == s || categoryNames[i] == s {
			*c = Category(i)
			return nil
		}
	}
	return fmt.Errorf("youtube: unknown category %q", s)
}
