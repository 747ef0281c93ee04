package model

import "github.com/shopspring/decimal"

// Book represents a listed book. Owner is rendered as the owning user's
// username; the numeric owner id never leaves the API.
type Book struct {
	ID          int             `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Credit      int             `json:"credit" db:"credit"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Image       string          `json:"image" db:"image"`
	Owner       string          `json:"owner" db:"owner"`
	OwnerID     int             `json:"-" db:"owner_id"`
	IsAvailable bool            `json:"is_available" db:"is_available"`
	CreatedAt   string          `json:"created_at" db:"created_at"`
}

// BookCreate represents a create request. Owner, id and created_at are
// server-assigned; any client-supplied values for them are ignored.
type BookCreate struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Credit      *int             `json:"credit"`
	Price       *decimal.Decimal `json:"price"`
}

// BookUpdate represents a partial update; nil fields are left unchanged.
// Image is only settable through the multipart form path.
type BookUpdate struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Credit      *int             `json:"credit"`
	Price       *decimal.Decimal `json:"price"`
	IsAvailable *bool            `json:"is_available"`
	Image       *string          `json:"-"`
}

// BookList is the list envelope
type BookList struct {
	Count   int    `json:"count"`
	Results []Book `json:"results"`
}
