package youtube

import "errors"

// ErrChannelNotFound is returned when a channel lookup yields no items.
var ErrChannelNotFound = errors.New("youtube: channel not found")

// ListerError wraps a failed API stage with the operation and target it was
// working on. Use errors.As() to extract it:
//
//	var listerErr *youtube.ListerError
//	if errors.As(err, &listerErr) {
//		fmt.Printf("%s %s failed: %v\n", listerErr.Op, listerErr.Target, listerErr.Err)
//	}
type ListerError struct {
	// Op is the API collection being queried ("channels", "playlistItems", "videos").
	Op string
	// Target is the channel, playlist or first video id of the request.
	Target string
	// Err is the underlying error.
	Err error
}

func (e *ListerError) Error() string {
	return "youtube: " + e.Op + " " + e.Target + ": " + e.Err.Error()
}

func (e *ListerError) Unwrap() error { return e.Err }
