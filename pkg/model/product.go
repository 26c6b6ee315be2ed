package model

import "time"

// Product is a bookable unit in the catalog. The booking core treats its ID
// as an opaque key; everything else exists for catalog browsing.
type Product struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=120"`
	City        string    `json:"city" bson:"city" validate:"required,min=2,max=80"`
	Category    string    `json:"category" bson:"category" validate:"required,min=2,max=80"`
	Features    []string  `json:"features,omitempty" bson:"features,omitempty" validate:"omitempty,max=50,dive,min=1,max=80"`
	Description string    `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000"`
	Active      bool      `json:"active" bson:"active"`
	CreatedAt   time.Time `json:"created_at,omitempty" bson:"created_at" validate:"omitempty"`
}

type ProductUpdate struct {
	Name        string    `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	City        string    `json:"city,omitempty" validate:"omitempty,min=2,max=80"`
	Category    string    `json:"category,omitempty" validate:"omitempty,min=2,max=80"`
	Features    *[]string `json:"features,omitempty" validate:"omitempty,max=50,dive,min=1,max=80"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=2000"`
	Active      *bool     `json:"active,omitempty"`
}
