package push

// The two provider wire shapes are explicit types built once per invocation.
// They are never a single mutable object reused across providers; each sender
// reads only its own shape.

// NativePayload is the structured FCM shape: a notification block, a free-form
// data block and platform-specific blocks.
type NativePayload struct {
	Title    string
	Body     string
	ImageURL string
	Data     map[string]string
	Android  AndroidOptions
	APNS     APNSOptions
}

// AndroidOptions carries the Android-specific block of the native shape.
type AndroidOptions struct {
	Priority    string
	ChannelID   string
	Sound       string
	ClickAction string
}

// APNSOptions carries the iOS-specific block of the native shape.
type APNSOptions struct {
	Sound string
	Badge int
}

// FlatPayload is the Expo wire shape: a single flat JSON object. The To field
// is filled in per target by the sender.
type FlatPayload struct {
	To        string            `json:"to"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	Sound     string            `json:"sound,omitempty"`
	Priority  string            `json:"priority,omitempty"`
	ChannelID string            `json:"channelId,omitempty"`
	// RichContent carries the provider's image field; omitted entirely
	// when the request has no image.
	RichContent map[string]string `json:"richContent,omitempty"`
}

// Payloads holds both shapes, built unconditionally so the engine can pick
// per target without rebuilding.
type Payloads struct {
	Native NativePayload
	Flat   FlatPayload
}
