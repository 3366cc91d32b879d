package engine

import (
	"strconv"
	"time"

	"github.com/fitpulse/push-service/pkg/push"
)

const (
	// sourceTag marks every dispatched message so clients can tell
	// coach-platform pushes apart from other producers.
	sourceTag = "fitpulse-coach"

	androidChannelID = "high_importance_channel"
	defaultSound     = "default"
	clickAction      = "FLUTTER_NOTIFICATION_CLICK"
)

// BuildPayloads produces both provider wire shapes for a request. Both are
// built unconditionally (cheap, no I/O) so the engine can pick per target
// without rebuilding. The two shapes carry the same title, body and data;
// a dispatch timestamp and the source tag are always injected into the data
// block of both.
func BuildPayloads(req *push.Request, now time.Time) *push.Payloads {
	data := make(map[string]string, len(req.Data)+2)
	for k, v := range req.Data {
		data[k] = v
	}
	data["dispatchedAt"] = strconv.FormatInt(now.UnixMilli(), 10)
	data["source"] = sourceTag

	native := push.NativePayload{
		Title:    req.Title,
		Body:     req.Body,
		ImageURL: req.ImageURL,
		Data:     data,
		Android: push.AndroidOptions{
			Priority:    "high",
			ChannelID:   androidChannelID,
			Sound:       defaultSound,
			ClickAction: clickAction,
		},
		APNS: push.APNSOptions{
			Sound: defaultSound,
			Badge: 1,
		},
	}

	flat := push.FlatPayload{
		Title:     req.Title,
		Body:      req.Body,
		Data:      data,
		Sound:     defaultSound,
		Priority:  "high",
		ChannelID: androidChannelID,
	}
	if req.ImageURL != "" {
		flat.RichContent = map[string]string{"image": req.ImageURL}
	}

	return &push.Payloads{Native: native, Flat: flat}
}
