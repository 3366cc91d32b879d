// Package fcm sends through the Firebase admin SDK: the NativeSDK delivery
// path for token- and topic-addressed messages.
package fcm

import (
	"context"
	"log/slog"

	"firebase.google.com/go/v4/messaging"

	"github.com/fitpulse/push-service/pkg/push"
)

// MessagingClient defines the subset of the Firebase Messaging API we use.
// This interface allows us to mock the client for unit testing.
type MessagingClient interface {
	Send(ctx context.Context, msg *messaging.Message) (string, error)
}

type Sender struct {
	client MessagingClient
	logger *slog.Logger
}

// NewSender accepts the concrete client but stores it as the interface.
// Note: *messaging.Client automatically satisfies it.
func NewSender(client MessagingClient, logger *slog.Logger) *Sender {
	return &Sender{
		client: client,
		logger: logger.With("component", "FCMSender"),
	}
}

// Send delivers the native payload to one token or topic. Provider errors are
// normalized here: the caller only ever sees the outcome classification.
func (s *Sender) Send(ctx context.Context, target push.Target, payloads *push.Payloads) push.Outcome {
	msg := buildMessage(target, &payloads.Native)

	id, err := s.client.Send(ctx, msg)
	if err != nil {
		class := classifyError(err)
		s.logger.Warn("fcm send failed", "target", target.ID(), "class", class, "err", err)
		return push.Failed(target.ID(), class, err)
	}
	return push.Sent(target.ID(), id)
}

// classifyError maps SDK error predicates onto the shared taxonomy. A token
// the provider will never accept again is invalid; everything else is a
// transport-level failure eligible for a caller-driven retry.
func classifyError(err error) push.ErrorClass {
	if messaging.IsRegistrationTokenNotRegistered(err) || messaging.IsInvalidArgument(err) {
		return push.ErrorClassInvalidToken
	}
	return push.ErrorClassTransport
}

func buildMessage(target push.Target, p *push.NativePayload) *messaging.Message {
	badge := p.APNS.Badge
	msg := &messaging.Message{
		Token: target.Token,
		Topic: target.Topic,
		Notification: &messaging.Notification{
			Title:    p.Title,
			Body:     p.Body,
			ImageURL: p.ImageURL,
		},
		Data: p.Data,
		Android: &messaging.AndroidConfig{
			Priority: p.Android.Priority,
			Notification: &messaging.AndroidNotification{
				ChannelID:   p.Android.ChannelID,
				Sound:       p.Android.Sound,
				ClickAction: p.Android.ClickAction,
				ImageURL:    p.ImageURL,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: p.Title,
						Body:  p.Body,
					},
					Sound: p.APNS.Sound,
					Badge: &badge,
				},
			},
		},
	}
	if p.ImageURL != "" {
		msg.APNS.FCMOptions = &messaging.APNSFCMOptions{ImageURL: p.ImageURL}
	}
	return msg
}
