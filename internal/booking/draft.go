package booking

import (
	"fmt"
	"strings"
)

// TicketType is one of the four canonical convention ticket tiers.
type TicketType string

const (
	TicketStandard TicketType = "standard"
	TicketVIP      TicketType = "vip"
	TicketStudent  TicketType = "student"
	TicketGroup    TicketType = "group"
)

// Field names a slot in the booking draft.
type Field string

const (
	FieldName          Field = "name"
	FieldEmail         Field = "email"
	FieldPhone         Field = "phone"
	FieldTicketType    Field = "ticket_type"
	FieldDaysAttending Field = "days_attending"
	FieldBetaTester    Field = "beta_tester"
)

// RequiredFields in declaration order; MissingFields and the dialogue
// policy's question order both follow this slice.
var RequiredFields = []Field{FieldName, FieldEmail, FieldPhone, FieldTicketType, FieldDaysAttending}

var fieldLabels = map[Field]string{
	FieldName:          "Name",
	FieldEmail:         "Email",
	FieldPhone:         "Phone",
	FieldTicketType:    "Ticket Type",
	FieldDaysAttending: "Days Attending",
}

// ticketTypeValues is the exclusion list for the name slot: a candidate
// equal to any of these (case-insensitively) is never stored as a name.
var ticketTypeValues = map[string]bool{
	"vip": true, "standard": true, "student": true, "group": true,
	"premium": true, "deluxe": true, "basic": true, "regular": true,
}

// IsTicketTypeWord reports whether value collides with the ticket-type
// vocabulary. Persistence re-checks this independently of the tracker.
func IsTicketTypeWord(value string) bool {
	return ticketTypeValues[strings.ToLower(value)]
}

// Draft is the in-progress, not-yet-persisted booking record for one
// conversation session. BetaTester stays empty until the dialogue's
// explicit question (or a beta keyword) resolves it to "yes" or "no".
type Draft struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	TicketType    string `json:"ticket_type"`
	DaysAttending string `json:"days_attending"`
	BetaTester    string `json:"beta_tester,omitempty"`
}

// Get returns the current value of a slot.
func (d *Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	case FieldPhone:
		return d.Phone
	case FieldTicketType:
		return d.TicketType
	case FieldDaysAttending:
		return d.DaysAttending
	case FieldBetaTester:
		return d.BetaTester
	}
	return ""
}

func (d *Draft) set(f Field, value string) {
	switch f {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	case FieldPhone:
		d.Phone = value
	case FieldTicketType:
		d.TicketType = value
	case FieldDaysAttending:
		d.DaysAttending = value
	case FieldBetaTester:
		d.BetaTester = value
	}
}

// Merge writes extracted values into the draft. Only the required fields
// plus the beta-tester flag are accepted; unknown keys and empty values are
// dropped, and a name colliding with the ticket-type vocabulary is
// rejected. Last write wins per field, so the merge is idempotent.
func (d *Draft) Merge(extracted map[Field]string) {
	for _, f := range append(append([]Field{}, RequiredFields...), FieldBetaTester) {
		value, ok := extracted[f]
		if !ok || value == "" {
			continue
		}
		if f == FieldName && IsTicketTypeWord(value) {
			continue
		}
		d.set(f, value)
	}
}

// MissingFields returns the required fields still absent, always in the
// declared order.
func (d *Draft) MissingFields() []Field {
	var missing []Field
	for _, f := range RequiredFields {
		if d.Get(f) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Complete reports whether every required field is filled.
func (d *Draft) Complete() bool {
	return len(d.MissingFields()) == 0
}

// Summary renders the draft for the confirmation prompt.
func (d *Draft) Summary() string {
	var lines []string
	for _, f := range RequiredFields {
		value := d.Get(f)
		if value == "" || (f == FieldName && IsTicketTypeWord(value)) {
			value = "Not provided"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", fieldLabels[f], value))
	}
	if d.BetaTester != "" {
		status := "No"
		if d.BetaTester == "yes" {
			status = "Yes"
		}
		lines = append(lines, fmt.Sprintf("Beta Tester: %s", status))
	}
	return strings.Join(lines, "\n")
}

// Reset clears every slot.
func (d *Draft) Reset() {
	*d = Draft{}
}
