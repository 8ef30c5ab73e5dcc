package entity

import (
	"strings"
	"time"
)

// DateLayout renders timestamps as UTC ISO-8601 with millisecond precision.
const DateLayout = "2006-01-02T15:04:05.000Z"

// Subscriber is one entry of the persisted subscriber list.
type Subscriber struct {
	Email     string `json:"email"`
	Date      string `json:"date"`
	Timestamp int64  `json:"timestamp"`
}

func NewSubscriber(email string, now time.Time) Subscriber {
	now = now.UTC()
	return Subscriber{
		Email:     strings.ToLower(email),
		Date:      now.Format(DateLayout),
		Timestamp: now.UnixMilli(),
	}
}

// SameEmail compares addresses case-insensitively.
func (s Subscriber) SameEmail(email string) bool {
	return strings.EqualFold(s.Email, email)
}
