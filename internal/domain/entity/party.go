package entity

import "github.com/google/uuid"

// Party — участник торгов со счётом (например, команда).
type Party struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Balance int64     `json:"balance"`
}
