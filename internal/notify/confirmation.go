package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/argonath-events/convention-assistant/internal/booking"
	"github.com/argonath-events/convention-assistant/internal/storage"
)

// SendResult reports whether the confirmation email went out. A confirmed
// booking is never rolled back over a failed email; callers downgrade the
// reply to a warning instead.
type SendResult struct {
	Sent bool
	Err  error
}

// ConfirmationService builds and sends booking confirmation emails.
type ConfirmationService struct {
	sender EmailSender
}

// NewConfirmationService wraps an email sender.
func NewConfirmationService(sender EmailSender) *ConfirmationService {
	if sender == nil {
		panic("notify: email sender required")
	}
	return &ConfirmationService{sender: sender}
}

// SendConfirmation emails the ticket details to the customer.
func (s *ConfirmationService) SendConfirmation(ctx context.Context, draft booking.Draft, ticketID string) SendResult {
	if !storage.ValidEmail(draft.Email) {
		return SendResult{Sent: false, Err: fmt.Errorf("notify: invalid recipient email %q", draft.Email)}
	}
	msg := EmailMessage{
		To:      draft.Email,
		ToName:  draft.Name,
		Subject: fmt.Sprintf("Gates Of Argonath - Ticket Confirmation (ID: %s)", ticketID),
		Body:    ConfirmationBody(draft, ticketID),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		return SendResult{Sent: false, Err: err}
	}
	return SendResult{Sent: true}
}

// ConfirmationBody renders the plain-text confirmation email.
func ConfirmationBody(draft booking.Draft, ticketID string) string {
	betaInfo := ""
	if draft.BetaTester == "yes" {
		betaInfo = "\nBeta Tester: Yes - Please ensure your government ID (PDF) is uploaded in the system."
	}
	return fmt.Sprintf(`
Dear %s,

Thank you for booking your tickets to Gates Of Argonath gaming convention!

Here are your booking details:

Ticket ID: %s
Name: %s
Email: %s
Phone: %s
Ticket Type: %s
Days Attending: %s day(s)%s

Gates Of Argonath is a 3-day gaming convention where you can:
- Enjoy new games and LAN gaming sessions
- Learn about the latest technology in the gaming industry
- Connect with fellow gamers and industry professionals

We look forward to seeing you at the convention!

Best regards,
Gates Of Argonath Team
`,
		draft.Name,
		ticketID,
		draft.Name,
		draft.Email,
		draft.Phone,
		titleCase(draft.TicketType),
		draft.DaysAttending,
		betaInfo,
	)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
