package booking

import "strings"

// Intent classifies a chat message as booking-relevant or general.
type Intent string

const (
	IntentBooking Intent = "booking"
	IntentGeneral Intent = "general"
)

// bookingKeywords trigger the slot-filling flow. Detection is existential:
// any hit classifies the message, so order is irrelevant.
var bookingKeywords = []string{
	"book", "booking", "reserve", "reservation", "ticket", "tickets",
	"buy ticket", "purchase", "register", "sign up", "convention",
	"gates of argonath", "gaming convention", "attend", "join",
}

// DetectIntent reports whether the message expresses ticket-booking intent.
// Pure substring matching over the lowercased message, no side effects.
func DetectIntent(message string) Intent {
	lower := strings.ToLower(message)
	for _, keyword := range bookingKeywords {
		if strings.Contains(lower, keyword) {
			return IntentBooking
		}
	}
	return IntentGeneral
}
