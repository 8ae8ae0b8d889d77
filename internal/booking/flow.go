package booking

import "strings"

// State is the dialogue state of one booking conversation. Transitions are
// driven only by Advance; no other component mutates state.
type State string

const (
	StateIdle       State = "idle"
	StateCollecting State = "collecting"
	StateConfirming State = "confirming"
	StateCompleted  State = "completed" // terminal, immediately reset to idle by the caller
)

// WelcomeMessage opens the booking flow.
const WelcomeMessage = "Welcome to Gates Of Argonath gaming convention! I'll help you book your tickets. This is a 3-day event where you can enjoy new games, LAN games, and learn about gaming technology."

const (
	betaQuestion = "Would you like to be a beta tester for unreleased games? This requires uploading your government ID (PDF). Please answer 'yes' or 'no'."

	betaYesReply = "Great! Please upload your government ID (PDF) in the 'Upload PDFs' section. Once uploaded, we'll process your beta tester application. Now, let me confirm your ticket booking details."
	betaNoReply  = "No problem! You can still enjoy all the convention activities. Now, let me confirm your ticket booking details."

	restartReply = "I understand. Let's start over. How can I help you with Gates Of Argonath gaming convention?"
)

// fieldQuestions keys one fixed prompt per required field.
var fieldQuestions = map[Field]string{
	FieldName:          "What is your full name? (Please provide your first and last name, e.g., 'John Doe' or 'My name is John Doe')",
	FieldEmail:         "What is your email address?",
	FieldPhone:         "What is your phone number?",
	FieldTicketType:    "What type of ticket would you like? (Standard, VIP, Student, or Group)",
	FieldDaysAttending: "How many days would you like to attend? (1, 2, or all 3 days)",
}

var (
	confirmWords = []string{"yes", "confirm", "correct", "proceed"}
	declineWords = []string{"no", "cancel", "wrong", "change"}
	betaYesWords = []string{"yes", "yeah", "yep", "sure", "ok", "okay"}
	betaNoWords  = []string{"no", "nope", "nah", "not interested"}
)

// Outcome is the result of one dialogue transition.
type Outcome struct {
	State State
	Draft Draft
	Reply string

	// Finalize means the user confirmed: the caller persists the draft,
	// sends the confirmation email, builds the reply, and resets to idle.
	Finalize bool
	// Cancelled means the user declined at confirmation and the draft was
	// discarded.
	Cancelled bool
}

// Advance is the pure dialogue transition function: (state, draft, message)
// -> (state, draft, reply). All side effects (persistence, email) stay with
// the caller.
//
// The message that flips idle to collecting is used only for intent
// detection; field extraction from it is deferred to the next turn.
func Advance(state State, draft Draft, message string) Outcome {
	switch state {
	case StateConfirming:
		return advanceConfirming(draft, message)
	case StateCollecting:
		return advanceCollecting(draft, message)
	default: // StateIdle, StateCompleted
		empty := Draft{}
		return Outcome{
			State: StateCollecting,
			Draft: empty,
			Reply: WelcomeMessage + "\n\n" + NextQuestion(&empty),
		}
	}
}

func advanceConfirming(draft Draft, message string) Outcome {
	lower := strings.ToLower(message)
	if containsAny(lower, confirmWords) {
		return Outcome{State: StateCompleted, Draft: draft, Finalize: true}
	}
	if containsAny(lower, declineWords) {
		return Outcome{State: StateIdle, Draft: Draft{}, Reply: restartReply, Cancelled: true}
	}
	// Unrecognized reply: pick up any corrections and show the summary again.
	draft.Merge(Extract(message))
	return Outcome{State: StateConfirming, Draft: draft, Reply: confirmationPrompt(&draft)}
}

func advanceCollecting(draft Draft, message string) Outcome {
	if draft.Complete() && draft.BetaTester == "" {
		// The beta-tester question is pending; interpret this as its answer.
		lower := strings.ToLower(message)
		switch {
		case containsAny(lower, betaYesWords):
			draft.BetaTester = "yes"
			return Outcome{State: StateConfirming, Draft: draft, Reply: betaYesReply + "\n\n" + confirmationPrompt(&draft)}
		case containsAny(lower, betaNoWords):
			draft.BetaTester = "no"
			return Outcome{State: StateConfirming, Draft: draft, Reply: betaNoReply + "\n\n" + confirmationPrompt(&draft)}
		default:
			return Outcome{State: StateCollecting, Draft: draft, Reply: betaQuestion}
		}
	}

	draft.Merge(Extract(message))

	if draft.Complete() && draft.BetaTester != "" {
		return Outcome{State: StateConfirming, Draft: draft, Reply: confirmationPrompt(&draft)}
	}
	return Outcome{State: StateCollecting, Draft: draft, Reply: NextQuestion(&draft)}
}

// NextQuestion returns the prompt for the first missing required field, the
// beta-tester question once all required fields are present, or "" when
// nothing remains to ask.
func NextQuestion(draft *Draft) string {
	missing := draft.MissingFields()
	if len(missing) == 0 {
		if draft.BetaTester == "" {
			return betaQuestion
		}
		return ""
	}
	return fieldQuestions[missing[0]]
}

func confirmationPrompt(draft *Draft) string {
	return "I have the following details:\n\n" + draft.Summary() + "\n\nIs this correct? Please reply 'yes' to confirm or 'no' to start over."
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}
