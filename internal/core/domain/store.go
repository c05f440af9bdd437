package domain

import "time"

// Store is a physical location users operate in. Stores do not own users;
// the relation lives in StoreAssignment.
type Store struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Location     string    `json:"location,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StoreAssignment is the junction between a user and a store the user may
// operate in. Unique per (UserID, StoreID) pair.
type StoreAssignment struct {
	UserID  string `json:"user_id"`
	StoreID string `json:"store_id"`
}
