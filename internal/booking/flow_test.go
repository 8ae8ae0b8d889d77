package booking

import (
	"strings"
	"testing"
)

func TestAdvanceIdleOpensFlow(t *testing.T) {
	out := Advance(StateIdle, Draft{}, "I want to book tickets")
	if out.State != StateCollecting {
		t.Fatalf("state = %s, want %s", out.State, StateCollecting)
	}
	if !strings.Contains(out.Reply, WelcomeMessage) {
		t.Error("reply must open with the welcome message")
	}
	if !strings.Contains(out.Reply, "full name") {
		t.Error("reply must ask for the name first")
	}
	if out.Draft != (Draft{}) {
		t.Errorf("opening turn must not extract fields: %+v", out.Draft)
	}
}

func TestAdvanceCompletedBehavesLikeIdle(t *testing.T) {
	out := Advance(StateCompleted, Draft{}, "book another ticket")
	if out.State != StateCollecting {
		t.Errorf("state = %s, want %s", out.State, StateCollecting)
	}
	if !strings.Contains(out.Reply, WelcomeMessage) {
		t.Error("reply must open with the welcome message")
	}
}

func TestAdvanceCollectingAsksInOrder(t *testing.T) {
	tests := []struct {
		message  string
		wantNext string
	}{
		{"My name is John Doe", "email address"},
		{"john@example.com", "phone number"},
		{"1234567890", "type of ticket"},
		{"vip", "How many days"},
		{"2 days", "beta tester"},
	}
	state, draft := StateCollecting, Draft{}
	for _, tt := range tests {
		out := Advance(state, draft, tt.message)
		if out.State != StateCollecting {
			t.Fatalf("after %q: state = %s, want collecting", tt.message, out.State)
		}
		if !strings.Contains(out.Reply, tt.wantNext) {
			t.Fatalf("after %q: reply = %q, want mention of %q", tt.message, out.Reply, tt.wantNext)
		}
		state, draft = out.State, out.Draft
	}

	want := Draft{Name: "John Doe", Email: "john@example.com", Phone: "1234567890", TicketType: "vip", DaysAttending: "2"}
	if draft != want {
		t.Errorf("draft = %+v, want %+v", draft, want)
	}
}

func TestAdvanceFullScenario(t *testing.T) {
	messages := []string{
		"I want to book tickets",
		"My name is John Doe",
		"john@example.com",
		"1234567890",
		"vip",
		"2 days",
		"no",
	}
	state, draft := StateIdle, Draft{}
	var out Outcome
	for _, m := range messages {
		out = Advance(state, draft, m)
		state, draft = out.State, out.Draft
	}

	if state != StateConfirming {
		t.Fatalf("state = %s, want %s", state, StateConfirming)
	}
	if draft.BetaTester != "no" {
		t.Errorf("beta_tester = %q, want no", draft.BetaTester)
	}
	if !draft.Complete() {
		t.Errorf("draft incomplete: %+v", draft)
	}
	for _, want := range []string{"Name: John Doe", "Email: john@example.com", "Phone: 1234567890", "Ticket Type: vip", "Days Attending: 2", "'yes' to confirm"} {
		if !strings.Contains(out.Reply, want) {
			t.Errorf("confirmation reply missing %q:\n%s", want, out.Reply)
		}
	}
}

func TestAdvanceBetaYesLeadsToConfirmation(t *testing.T) {
	draft := Draft{Name: "John Doe", Email: "john@example.com", Phone: "1234567890", TicketType: "vip", DaysAttending: "2"}
	out := Advance(StateCollecting, draft, "yes please")
	if out.State != StateConfirming {
		t.Fatalf("state = %s, want confirming", out.State)
	}
	if out.Draft.BetaTester != "yes" {
		t.Errorf("beta_tester = %q, want yes", out.Draft.BetaTester)
	}
	if !strings.Contains(out.Reply, "government ID") {
		t.Error("beta yes reply must mention the ID upload")
	}
	if !strings.Contains(out.Reply, "Is this correct?") {
		t.Error("reply must include the confirmation prompt")
	}
}

func TestAdvanceBetaUnrecognizedRepeatsQuestion(t *testing.T) {
	draft := Draft{Name: "John Doe", Email: "john@example.com", Phone: "1234567890", TicketType: "vip", DaysAttending: "2"}
	out := Advance(StateCollecting, draft, "what does that mean?")
	if out.State != StateCollecting {
		t.Errorf("state = %s, want collecting", out.State)
	}
	if !strings.Contains(out.Reply, "beta tester") {
		t.Errorf("reply = %q, want the beta question again", out.Reply)
	}
	if out.Draft.BetaTester != "" {
		t.Errorf("beta_tester = %q, want unset", out.Draft.BetaTester)
	}
}

func TestAdvanceConfirmingYesFinalizes(t *testing.T) {
	draft := Draft{Name: "John Doe", Email: "john@example.com", Phone: "1234567890", TicketType: "vip", DaysAttending: "2", BetaTester: "no"}
	out := Advance(StateConfirming, draft, "yes")
	if !out.Finalize {
		t.Fatal("confirmation must set Finalize")
	}
	if out.State != StateCompleted {
		t.Errorf("state = %s, want completed", out.State)
	}
	if out.Draft != draft {
		t.Errorf("draft must be passed through intact: %+v", out.Draft)
	}
	if out.Cancelled {
		t.Error("Cancelled must be false on confirmation")
	}
}

func TestAdvanceConfirmingNoCancels(t *testing.T) {
	draft := Draft{Name: "John Doe", Email: "john@example.com", Phone: "1234567890", TicketType: "vip", DaysAttending: "2", BetaTester: "no"}
	out := Advance(StateConfirming, draft, "no, cancel that")
	if !out.Cancelled {
		t.Fatal("decline must set Cancelled")
	}
	if out.Finalize {
		t.Error("Finalize must be false on cancellation")
	}
	if out.State != StateIdle {
		t.Errorf("state = %s, want idle", out.State)
	}
	if out.Draft != (Draft{}) {
		t.Errorf("draft must be discarded: %+v", out.Draft)
	}
	if !strings.Contains(out.Reply, "start over") {
		t.Errorf("reply = %q, want the restart message", out.Reply)
	}
}

func TestAdvanceConfirmingUnrecognizedReShowsSummary(t *testing.T) {
	draft := Draft{Name: "John Doe", Email: "john@example.com", Phone: "1234567890", TicketType: "vip", DaysAttending: "2", BetaTester: "no"}
	out := Advance(StateConfirming, draft, "actually my email is jane@example.com")
	if out.State != StateConfirming {
		t.Errorf("state = %s, want confirming", out.State)
	}
	if out.Finalize || out.Cancelled {
		t.Error("unrecognized reply must neither finalize nor cancel")
	}
	// The correction is merged and the updated summary shown again.
	if out.Draft.Email != "jane@example.com" {
		t.Errorf("email = %q, want jane@example.com", out.Draft.Email)
	}
	if !strings.Contains(out.Reply, "Email: jane@example.com") {
		t.Errorf("reply must show the corrected email:\n%s", out.Reply)
	}
	if !strings.Contains(out.Reply, "Is this correct?") {
		t.Errorf("reply = %q, want the summary prompt", out.Reply)
	}
}

func TestNextQuestion(t *testing.T) {
	var d Draft
	if got := NextQuestion(&d); !strings.Contains(got, "full name") {
		t.Errorf("NextQuestion(empty) = %q, want the name question", got)
	}
	d = Draft{Name: "John Doe", Email: "john@example.com", Phone: "1234567890", TicketType: "vip", DaysAttending: "2"}
	if got := NextQuestion(&d); !strings.Contains(got, "beta tester") {
		t.Errorf("NextQuestion(complete) = %q, want the beta question", got)
	}
	d.BetaTester = "no"
	if got := NextQuestion(&d); got != "" {
		t.Errorf("NextQuestion(answered) = %q, want empty", got)
	}
}
