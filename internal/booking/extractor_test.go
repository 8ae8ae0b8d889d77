package booking

import "testing"

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		message string
		want    Intent
	}{
		{"I want to book tickets", IntentBooking},
		{"Can I reserve a spot?", IntentBooking},
		{"Tell me about Gates of Argonath", IntentBooking},
		{"REGISTER me please", IntentBooking},
		{"What time does the LAN party start?", IntentGeneral},
		{"hello there", IntentGeneral},
	}
	for _, tt := range tests {
		if got := DetectIntent(tt.message); got != tt.want {
			t.Errorf("DetectIntent(%q) = %s, want %s", tt.message, got, tt.want)
		}
	}
}

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"plain address", "reach me at john@example.com thanks", "john@example.com"},
		{"address with dots and plus", "it's first.last+tag@mail.example.org", "first.last+tag@mail.example.org"},
		{"no at sign", "john at example dot com", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.message)
			if got[FieldEmail] != tt.want {
				t.Errorf("email = %q, want %q", got[FieldEmail], tt.want)
			}
			if tt.want == "" {
				if _, ok := got[FieldEmail]; ok {
					t.Error("email should be absent")
				}
			}
		})
	}
}

func TestExtractPhoneStripsPunctuation(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"(123) 456-7890", "1234567890"},
		{"123-456-7890", "1234567890"},
		{"123.456.7890", "1234567890"},
		{"call 1234567890 anytime", "1234567890"},
	}
	for _, tt := range tests {
		got := Extract(tt.message)
		if got[FieldPhone] != tt.want {
			t.Errorf("Extract(%q) phone = %q, want %q", tt.message, got[FieldPhone], tt.want)
		}
	}
}

func TestExtractTicketType(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"I'd like a premium ticket", "vip"},
		{"deluxe please", "vip"},
		{"just a basic one", "standard"},
		{"general admission", "standard"},
		{"student discount?", "student"},
		{"we need a group ticket", "group"},
		{"VIP", "vip"},
	}
	for _, tt := range tests {
		got := Extract(tt.message)
		if got[FieldTicketType] != tt.want {
			t.Errorf("Extract(%q) ticket_type = %q, want %q", tt.message, got[FieldTicketType], tt.want)
		}
	}
}

func TestExtractDaysAttending(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"all 3 days", "3"},
		{"three days", "3"},
		{"the full day experience", "3"},
		{"2 days", "2"},
		{"two days please", "2"},
		{"just 1 day", "1"},
		{"a single day", "1"},
		{"no days mentioned", ""},
	}
	for _, tt := range tests {
		got := Extract(tt.message)
		if got[FieldDaysAttending] != tt.want {
			t.Errorf("Extract(%q) days = %q, want %q", tt.message, got[FieldDaysAttending], tt.want)
		}
	}
}

func TestExtractBetaTester(t *testing.T) {
	for _, message := range []string{
		"I want to be a beta tester",
		"can I beta test?",
		"interested in unreleased games",
		"sign me up for the beta",
	} {
		got := Extract(message)
		if got[FieldBetaTester] != "yes" {
			t.Errorf("Extract(%q) beta_tester = %q, want yes", message, got[FieldBetaTester])
		}
	}

	got := Extract("no thanks")
	if _, ok := got[FieldBetaTester]; ok {
		t.Error("beta_tester must stay unset without a keyword; only the dialogue question sets no")
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{"introduction phrase", "My name is John Doe", "John Doe"},
		{"i'm phrase", "I'm Alice Cooper", "Alice Cooper"},
		{"call me phrase", "call me Bob", "Bob"},
		{"name colon", "name: Jane Smith", "Jane Smith"},
		{"bare name at start", "John Doe here for tickets", "John Doe"},
		{"ticket word rejected", "VIP", ""},
		{"lowercase ticket word rejected", "my name is vip", ""},
		{"too short", "my name is Jo", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.message)
			if got[FieldName] != tt.want {
				t.Errorf("name = %q, want %q", got[FieldName], tt.want)
			}
		})
	}
}

func TestNamePatternShortCircuits(t *testing.T) {
	// The introduction pattern matches and its candidate is rejected; the
	// bare-name pattern must not be consulted afterwards.
	got := Extract("I'm vip")
	if name, ok := got[FieldName]; ok {
		t.Errorf("expected no name, got %q", name)
	}
}

func TestExtractMultipleFieldsIndependently(t *testing.T) {
	got := Extract("My name is John Doe, email john@example.com, phone 123-456-7890, vip for all 3 days, and I want to beta test")
	want := map[Field]string{
		FieldName:          "John Doe",
		FieldEmail:         "john@example.com",
		FieldPhone:         "1234567890",
		FieldTicketType:    "vip",
		FieldDaysAttending: "3",
		FieldBetaTester:    "yes",
	}
	for f, v := range want {
		if got[f] != v {
			t.Errorf("%s = %q, want %q", f, got[f], v)
		}
	}
}
