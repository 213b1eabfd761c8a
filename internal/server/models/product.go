package models

import "time"

// Product is a catalog entry. The id is assigned by the store's sequence at
// insert time, never by the application.
type Product struct {
	ID        int64
	Name      string
	Image     string
	Category  string
	NewPrice  float64
	OldPrice  float64
	Available bool
	CreatedAt time.Time
}
