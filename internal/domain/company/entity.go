package company

import "time"

type Company struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Address   *string    `json:"address,omitempty"`
	Currency  string     `json:"currency"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
