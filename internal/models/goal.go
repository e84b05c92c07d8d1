package models

import "time"

// ResaleGoal is a per-category monthly sales goal row.
type ResaleGoal struct {
	Category  string    `json:"category"`
	Monthly   int       `json:"monthly_goal"`
	UpdatedAt time.Time `json:"updated_at"`
}
