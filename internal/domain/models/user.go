package models

import "time"

type User struct {
	ID           int       `json:"id"`
	Usuario      string    `json:"usuario"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
