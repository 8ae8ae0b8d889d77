package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ConventionLeadTime is how far ahead of the booking date the convention is
// scheduled.
const ConventionLeadTime = 30 * 24 * time.Hour

// ConventionStartTime is the fixed daily opening time printed on tickets.
const ConventionStartTime = "09:00"

// CreateBooking inserts a confirmed booking for an existing customer and
// returns it with its generated ticket ID.
func (s *Store) CreateBooking(ctx context.Context, customerID int64, ticketType, daysAttending string, betaTester bool) (*Booking, error) {
	b := Booking{
		ID:             uuid.NewString(),
		CustomerID:     customerID,
		TicketType:     ticketType,
		DaysAttending:  daysAttending,
		BetaTester:     betaTester,
		ConventionDate: time.Now().UTC().Add(ConventionLeadTime).Truncate(24 * time.Hour),
		ConventionTime: ConventionStartTime,
	}
	query := `
		INSERT INTO bookings (id, customer_id, ticket_type, days_attending, beta_tester, convention_date, convention_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	if err := s.db.QueryRow(ctx, query,
		b.ID,
		b.CustomerID,
		b.TicketType,
		b.DaysAttending,
		b.BetaTester,
		b.ConventionDate,
		b.ConventionTime,
	).Scan(&b.CreatedAt); err != nil {
		return nil, fmt.Errorf("storage: insert booking: %w", err)
	}
	return &b, nil
}

const bookingDetailColumns = `
	b.id, b.customer_id, b.ticket_type, b.days_attending, b.beta_tester,
	b.convention_date, b.convention_time, b.created_at,
	c.name, c.email, c.phone
`

// SearchBookings returns bookings matching the given filters. Name and
// email match case-insensitively as substrings; the date matches the
// convention date exactly.
func (s *Store) SearchBookings(ctx context.Context, q BookingSearch) ([]BookingDetail, error) {
	query := `
		SELECT ` + bookingDetailColumns + `
		FROM bookings b
		JOIN customers c ON c.id = b.customer_id
		WHERE 1=1
	`
	var args []any
	if q.Name != "" {
		args = append(args, "%"+q.Name+"%")
		query += fmt.Sprintf(" AND c.name ILIKE $%d", len(args))
	}
	if q.Email != "" {
		args = append(args, "%"+q.Email+"%")
		query += fmt.Sprintf(" AND c.email ILIKE $%d", len(args))
	}
	if q.Date != nil {
		args = append(args, *q.Date)
		query += fmt.Sprintf(" AND b.convention_date = $%d", len(args))
	}
	query += " ORDER BY b.created_at DESC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: search bookings: %w", err)
	}
	defer rows.Close()
	return scanBookingDetails(rows)
}

// ListAllBookings returns every booking joined with its customer, newest
// first.
func (s *Store) ListAllBookings(ctx context.Context) ([]BookingDetail, error) {
	query := `
		SELECT ` + bookingDetailColumns + `
		FROM bookings b
		JOIN customers c ON c.id = b.customer_id
		ORDER BY b.created_at DESC
	`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("storage: list bookings: %w", err)
	}
	defer rows.Close()
	return scanBookingDetails(rows)
}

func scanBookingDetails(rows pgx.Rows) ([]BookingDetail, error) {
	var out []BookingDetail
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(
			&d.ID,
			&d.CustomerID,
			&d.TicketType,
			&d.DaysAttending,
			&d.BetaTester,
			&d.ConventionDate,
			&d.ConventionTime,
			&d.CreatedAt,
			&d.CustomerName,
			&d.CustomerEmail,
			&d.CustomerPhone,
		); err != nil {
			return nil, fmt.Errorf("storage: scan booking: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate bookings: %w", err)
	}
	return out, nil
}
