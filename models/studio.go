package models

import "time"

// ClockInterval is a half-open [Start, End) window in minutes from midnight.
type ClockInterval struct {
	Start int `bson:"start" json:"start"` // e.g., 540 for 9:00 AM
	End   int `bson:"end" json:"end"`     // e.g., 1080 for 6:00 PM
}

// DayHours declares the open intervals for one weekday.
// A studio keeps at most one DayHours per weekday.
type DayHours struct {
	Weekday   time.Weekday    `bson:"weekday" json:"weekday"`
	Intervals []ClockInterval `bson:"intervals" json:"intervals"`
}

// ScheduleException fully replaces the recurring hours for a single date.
// An empty Intervals list means the studio is closed that day.
type ScheduleException struct {
	Date      string          `bson:"date" json:"date"` // "2006-01-02"
	Intervals []ClockInterval `bson:"intervals" json:"intervals"`
}

// OperatingSchedule is a studio's recurring weekly open hours plus
// date-specific exceptions. An empty Recurring list means the studio
// declares no constraint and any requested time is acceptable.
type OperatingSchedule struct {
	Recurring  []DayHours          `bson:"recurring" json:"recurring"`
	Exceptions []ScheduleException `bson:"exceptions,omitempty" json:"exceptions,omitempty"`
}

type Studio struct {
	ID                  string            `bson:"id" json:"id"`
	OwnerID             string            `bson:"ownerId" json:"ownerId"`
	Name                string            `bson:"name" json:"name"`
	ApprovedEngineerIDs []string          `bson:"approvedEngineerIds,omitempty" json:"approvedEngineerIds,omitempty"`
	OperatingSchedule   OperatingSchedule `bson:"operatingSchedule" json:"operatingSchedule"`
	AutoApproveRequests bool              `bson:"autoApproveRequests" json:"autoApproveRequests"`
	CreatedAt           time.Time         `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt           time.Time         `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// Room belongs to exactly one studio. Exactly one room per studio should
// carry IsDefault; it is used when a request omits a room.
type Room struct {
	ID         string  `bson:"id" json:"id"`
	StudioID   string  `bson:"studioId" json:"studioId"`
	Name       string  `bson:"name" json:"name"`
	HourlyRate float64 `bson:"hourlyRate" json:"hourlyRate"`
	Capacity   int     `bson:"capacity" json:"capacity"`
	IsDefault  bool    `bson:"isDefault" json:"isDefault"`
}
