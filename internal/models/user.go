package models

import "time"

type User struct {
	ID          int64     `json:"id"`
	FirebaseUID string    `json:"firebase_uid"`
	DisplayName *string   `json:"display_name,omitempty"`
	FolderName  *string   `json:"folder_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
