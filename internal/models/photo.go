package models

import "time"

type Photo struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"user_id"`
	Filename    string    `json:"filename"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	TakenAt     time.Time `json:"taken_at"`
	Title       *string   `json:"title,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Description *string   `json:"description,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
	URL         string    `json:"url,omitempty"`
}
