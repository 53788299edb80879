package notification

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"

	engineerRepo "studiolink/database/repository/engineer"
)

// Notifier defines methods for sending FCM pushes. Delivery mechanics live
// outside the booking core; the core only calls this interface.
type Notifier interface {
	SendPush(ctx context.Context, userID, title, body string, data map[string]string) error
}

// FCMNotifier is the production implementation.
type FCMNotifier struct {
	Users  engineerRepo.EngineerRepository
	Client *messaging.Client
}

func NewFCMNotifier(users engineerRepo.EngineerRepository, client *messaging.Client) (*FCMNotifier, error) {
	if users == nil || client == nil {
		return nil, fmt.Errorf("notifier initialization error: users repo or messaging client is nil")
	}
	return &FCMNotifier{Users: users, Client: client}, nil
}

// SendPush looks up the user's registered FCM tokens and sends the push to
// each device.
func (n *FCMNotifier) SendPush(ctx context.Context, userID, title, body string, data map[string]string) error {
	profile, err := n.Users.GetProfile(ctx, userID)
	if err != nil {
		return fmt.Errorf("SendPush: could not find user %s: %w", userID, err)
	}
	if len(profile.FCMTokens) == 0 {
		return fmt.Errorf("SendPush: user %s has no FCM tokens", userID)
	}

	msg := &messaging.MulticastMessage{
		Tokens: profile.FCMTokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	if _, err := n.Client.SendEachForMulticast(ctx, msg); err != nil {
		return fmt.Errorf("SendPush: failed to send FCM message: %w", err)
	}
	return nil
}
