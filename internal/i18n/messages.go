// Package i18n holds the localized messages printed to the user.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. The key doubles as the English format string.
const (
	Fetching         = "Fetching channel data..."
	Saved            = "Saved data to %s."
	ChannelNotFound  = "Channel not found. Check the channel ID."
	FetchFailed      = "Failed to fetch channel data."
	FetchFailedCause = "Failed to fetch channel data: %v"
	MissingAPIKey    = "Error: YouTube API key not found. Set the %s environment variable."
	MissingChannelID = "Error: channel ID not found. Set the %s environment variable."
	ConfigError      = "Error: invalid configuration: %v"
	WriteFailed      = "Error: could not write %s: %v"
)

var japanese = map[string]string{
	Fetching:         "情報を取得中...",
	Saved:            "データを %s に保存しました。",
	ChannelNotFound:  "指定したチャンネルが見つかりません。Channel ID を確認してください。",
	FetchFailed:      "情報の取得に失敗しました。",
	FetchFailedCause: "情報の取得に失敗しました: %v",
	MissingAPIKey:    "Error: YouTube API Key が見つかりません。環境変数 %s を設定してください。",
	MissingChannelID: "Error: Channel ID が見つかりません。環境変数 %s を設定してください。",
	ConfigError:      "Error: 設定が不正です: %v",
	WriteFailed:      "Error: %s を書き込めませんでした: %v",
}

// Supported lists the languages with a full catalog. The first entry is the default.
var Supported = []language.Tag{language.Japanese, language.English}

var (
	cat     = catalog.NewBuilder(catalog.Fallback(language.Japanese))
	matcher = language.NewMatcher(Supported)
)

func init() {
	for key, ja := range japanese {
		if err := cat.SetString(language.Japanese, key, ja); err != nil {
			panic(err)
		}
		if err := cat.SetString(language.English, key, key); err != nil {
			panic(err)
		}
	}
}

// Match returns the supported language closest to lang. Unknown or empty
// values resolve to Japanese.
func Match(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return Supported[0]
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Supported[0]
	}
	return Supported[idx]
}

// NewPrinter returns a printer for the language closest to lang.
func NewPrinter(lang string) *message.Printer {
	return message.NewPrinter(Match(lang), message.Catalog(cat))
}
