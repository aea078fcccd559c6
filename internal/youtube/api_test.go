package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/youtube/v3"

	"ytexport/internal/retry"
)

func testRetry() retry.Config {
	return retry.Config{
		MaxRetries:     2,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2,
	}
}

func newTestAPI(t *testing.T, handler http.Handler, mutate ...func(*Options)) *DataAPI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts := Options{
		APIKey:   "test-key",
		Endpoint: srv.URL + "/",
		Timeout:  5 * time.Second,
		Retry:    testRetry(),
	}
	for _, m := range mutate {
		m(&opts)
	}
	api, err := NewDataAPI(context.Background(), opts)
	require.NoError(t, err)
	return api
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func writeAPIError(w http.ResponseWriter, code int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprintf(w, `{"error":{"code":%d,"message":%q,"errors":[{"reason":%q}]}}`, code, reason, reason)
}

func TestNewDataAPI_RequiresKey(t *testing.T) {
	_, err := NewDataAPI(context.Background(), Options{})
	assert.Error(t, err)
}

func TestDataAPI_EndToEnd(t *testing.T) {
	var (
		mu            sync.Mutex
		videoRequests [][]string
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/youtube/v3/channels", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, "UCtest", q.Get("id"))
		assert.ElementsMatch(t, []string{"snippet", "contentDetails"}, splitParts(q["part"]))
		writeJSON(t, w, channelResponse("UUtest"))
	})
	mux.HandleFunc("/youtube/v3/playlistItems", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "UUtest", q.Get("playlistId"))
		assert.Equal(t, "50", q.Get("maxResults"))
		assert.Equal(t, []string{"snippet"}, splitParts(q["part"]))

		pages := pagedPlaylist(60)
		page, ok := pages[q.Get("pageToken")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(t, w, page)
	})
	mux.HandleFunc("/youtube/v3/videos", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.ElementsMatch(t, []string{"contentDetails", "statistics", "snippet"}, splitParts(q["part"]))
		assert.Len(t, q["id"], 1, "ids are sent comma-joined in one parameter")
		ids := strings.Split(q.Get("id"), ",")
		mu.Lock()
		videoRequests = append(videoRequests, ids)
		mu.Unlock()

		resp := &youtube.VideoListResponse{}
		for _, id := range ids {
			if id == videoID(7) {
				continue
			}
			resp.Items = append(resp.Items, video(id, "PT1M30S", "none", 42))
		}
		writeJSON(t, w, resp)
	})

	api := newTestAPI(t, mux)

	ds, err := FetchChannelData(context.Background(), api, "UCtest")
	require.NoError(t, err)

	assert.Equal(t, "テストチャンネル", ds.ChannelInfo.Title)
	require.Len(t, ds.Videos, 60)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, videoRequests, 2)
	assert.Len(t, videoRequests[0], 50)
	assert.Len(t, videoRequests[1], 10)

	for i, v := range ds.Videos {
		assert.Equal(t, videoID(i), v.ID)
		if i == 7 {
			assert.Nil(t, v.VideoDetail)
			continue
		}
		require.NotNil(t, v.VideoDetail, v.ID)
		assert.Equal(t, "42", v.ViewCount)
		assert.Equal(t, CategoryStandard, v.Category)
	}
}

func TestDataAPI_ChannelNotFound(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, &youtube.ChannelListResponse{})
	}))

	_, _, err := ResolveChannel(context.Background(), api, "UCnope")
	assert.ErrorIs(t, err, ErrChannelNotFound)
}

func TestDataAPI_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			writeAPIError(w, http.StatusServiceUnavailable, "backendError")
			return
		}
		writeJSON(t, w, channelResponse("UUtest"))
	}))

	_, uploads, err := ResolveChannel(context.Background(), api, "UCtest")
	require.NoError(t, err)
	assert.Equal(t, "UUtest", uploads)
	assert.EqualValues(t, 3, calls.Load())
}

func TestDataAPI_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeAPIError(w, http.StatusTooManyRequests, "rateLimitExceeded")
	}))

	_, err := api.ListVideos(context.Background(), []string{"a"})
	var retryErr *retry.RetryableError
	require.ErrorAs(t, err, &retryErr)
	assert.EqualValues(t, 3, calls.Load(), "first attempt plus two retries")
}

func TestDataAPI_FailsFastOnClientErrors(t *testing.T) {
	var calls atomic.Int32
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeAPIError(w, http.StatusForbidden, "keyInvalid")
	}))

	_, _, err := EnumerateUploads(context.Background(), api, "UUtest")
	var apiErr *googleapi.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Code)
	assert.EqualValues(t, 1, calls.Load())
}

func TestDataAPI_RejectsOversizedBatch(t *testing.T) {
	api := newTestAPI(t, http.NotFoundHandler())

	_, err := api.ListVideos(context.Background(), make([]string, MaxPageSize+1))
	assert.Error(t, err)
}

func TestDataAPI_Paced(t *testing.T) {
	api := newTestAPI(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, &youtube.VideoListResponse{})
	}), func(o *Options) { o.RequestsPerSecond = 20 })

	start := time.Now()
	for range 3 {
		_, err := api.ListVideos(context.Background(), []string{"a"})
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestClassifyAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"not found", ErrChannelNotFound, false},
		{"429", &googleapi.Error{Code: 429}, true},
		{"500", &googleapi.Error{Code: 500}, true},
		{"503 wrapped", fmt.Errorf("call: %w", &googleapi.Error{Code: 503}), true},
		{"400", &googleapi.Error{Code: 400}, false},
		{"403", &googleapi.Error{Code: 403}, false},
		{"404", &googleapi.Error{Code: 404}, false},
		{"canceled", context.Canceled, false},
		{"network", errors.New("connection reset by peer"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyAPIError(tt.err))
		})
	}
}

// splitParts normalises repeated or comma-joined part parameters.
func splitParts(values []string) []string {
	var out []string
	for _, v := range values {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}
