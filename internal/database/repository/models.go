package repository

import "time"

// Receipt is a journaled order accepted by the service.
type Receipt struct {
	ID        string
	OrderID   string
	Payment   string
	Email     string
	Phone     string
	Address   string
	Total     string
	Items     []string
	CreatedAt time.Time
}
