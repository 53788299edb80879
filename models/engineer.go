package models

import "time"

// EngineerSettings lives embedded in a user profile document for users
// acting as engineers. Instant booking is only honored when the engineer
// is premium AND has enabled it.
type EngineerSettings struct {
	IsPremium                     bool   `bson:"isPremium" json:"isPremium"`
	InstantBookEnabled            bool   `bson:"instantBookEnabled" json:"instantBookEnabled"`
	MainStudioID                  string `bson:"mainStudioId,omitempty" json:"mainStudioId,omitempty"` // empty = no home studio
	AllowOtherStudios             bool   `bson:"allowOtherStudios" json:"allowOtherStudios"`
	DefaultSessionDurationMinutes int    `bson:"defaultSessionDurationMinutes,omitempty" json:"defaultSessionDurationMinutes,omitempty"`
}

// UserProfile is the slice of the users collection the booking core touches.
// Auth, chat and media fields are owned by their own services.
type UserProfile struct {
	ID               string            `bson:"id" json:"id"`
	DisplayName      string            `bson:"displayName" json:"displayName,omitempty"`
	Email            string            `bson:"email" json:"email,omitempty"`
	FCMTokens        []string          `bson:"fcmTokens,omitempty" json:"-"`
	EngineerSettings *EngineerSettings `bson:"engineerSettings,omitempty" json:"engineerSettings,omitempty"`
	CreatedAt        time.Time         `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt        time.Time         `bson:"updatedAt" json:"updatedAt,omitzero"`
}
