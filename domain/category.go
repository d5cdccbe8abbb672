package domain

import (
	"strings"
	"time"
)

type Category struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	Products  []Product `db:"-" json:"products,omitempty"`
}

// CategoryInput is used for both create and rename.
type CategoryInput struct {
	Name string `json:"name"`
}

// Validate trims the name and rejects empty ones.
func (in CategoryInput) Validate() (CategoryInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, Validationf("name is required")
	}
	if len(in.Name) > 100 {
		return in, Validationf("name too long (max 100 characters)")
	}
	return in, nil
}
