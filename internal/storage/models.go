package storage

import (
	"errors"
	"time"
)

var (
	// ErrInvalidEmail rejects a customer whose address fails the boundary
	// check.
	ErrInvalidEmail = errors.New("storage: invalid email address")
	// ErrInvalidName rejects a customer name that is empty or collides
	// with the ticket-type vocabulary.
	ErrInvalidName = errors.New("storage: invalid customer name")
)

// Customer is one row of the customers table. Rows are keyed by email:
// creating a customer with an existing address updates the row in place.
type Customer struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// Booking is one confirmed ticket booking.
type Booking struct {
	ID             string    `json:"id"`
	CustomerID     int64     `json:"customer_id"`
	TicketType     string    `json:"ticket_type"`
	DaysAttending  string    `json:"days_attending"`
	BetaTester     bool      `json:"beta_tester"`
	ConventionDate time.Time `json:"convention_date"`
	ConventionTime string    `json:"convention_time"`
	CreatedAt      time.Time `json:"created_at"`
}

// BookingDetail joins a booking with its customer for admin listings.
type BookingDetail struct {
	Booking
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

// BookingSearch filters SearchBookings; zero-value fields are ignored.
type BookingSearch struct {
	Name  string
	Email string
	Date  *time.Time
}
