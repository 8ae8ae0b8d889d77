package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/argonath-events/convention-assistant/internal/booking"
)

// CreateCustomer inserts a customer or, when the email already exists,
// refreshes that row's name and phone. Either way the returned record is the
// canonical row for the address, so confirming twice never duplicates a
// customer.
func (s *Store) CreateCustomer(ctx context.Context, name, email, phone string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" || booking.IsTicketTypeWord(name) {
		return nil, ErrInvalidName
	}
	email = strings.TrimSpace(email)
	if !ValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	query := `
		INSERT INTO customers (name, email, phone)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, phone = EXCLUDED.phone
		RETURNING id, created_at
	`
	c := Customer{Name: name, Email: email, Phone: phone}
	if err := s.db.QueryRow(ctx, query, name, email, phone).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("storage: upsert customer: %w", err)
	}
	return &c, nil
}
