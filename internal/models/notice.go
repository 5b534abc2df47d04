package models

import "time"

type Notice struct {
	ID        int64     `json:"id"`
	AuthorUID string    `json:"author_uid"`
	Title     string    `json:"title"`
	Body      *string   `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
