package models

import "time"

// Log is the record shape persisted by the async DB log writer.
type Log struct {
	Message      string    `bson:"message"`
	UserID       string    `bson:"user_id,omitempty"`
	AppID        string    `bson:"app_id"`
	LogLevelId   int       `bson:"log_level_id"`
	Caller       string    `bson:"caller,omitempty"`
	CreatedOnUtc time.Time `bson:"created_on_utc"`
}
