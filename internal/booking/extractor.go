package booking

import (
	"regexp"
	"strings"
)

// ---------- package-level compiled regexes ----------

var (
	emailRE = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	// Tried in order; the first pattern with a match wins.
	phoneREs = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`), // 123-456-7890
		regexp.MustCompile(`\(\d{3}\)\s?\d{3}[-.]?\d{4}\b`), // (123) 456-7890
		regexp.MustCompile(`\b\d{10}\b`),                    // 1234567890
	}

	nonDigitRE = regexp.MustCompile(`\D`)
)

// ticketKeywordTable maps surface forms to the four canonical ticket types.
// Scanned in declaration order; the first entry whose keyword appears wins.
var ticketKeywordTable = []struct {
	ticket   TicketType
	keywords []string
}{
	{TicketStandard, []string{"standard", "regular", "basic", "general"}},
	{TicketVIP, []string{"vip", "premium", "deluxe"}},
	{TicketStudent, []string{"student", "student discount"}},
	{TicketGroup, []string{"group", "group ticket", "bulk"}},
}

// daysPatterns are tested in priority order; the first match short-circuits.
var daysPatterns = []struct {
	re    *regexp.Regexp
	value string
}{
	{regexp.MustCompile(`\b(?:all|full|3|three)\s*days?\b`), "3"},
	{regexp.MustCompile(`\b(?:2|two|second)\s*days?\b`), "2"},
	{regexp.MustCompile(`\b(?:1|one|first|single)\s*days?\b`), "1"},
}

var betaKeywords = []string{"beta tester", "beta test", "unreleased games", "beta", "test games"}

// ---------- name extraction ----------

const nameWordSeq = `[A-Za-z][A-Za-z]+(?:\s+[A-Za-z][A-Za-z]+)*`

// namePatterns are tried in order. A pattern that produces any match, even
// one later rejected by the exclusion list, stops the chain; only a pattern
// with zero matches falls through to the next.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:my name is|i'm|i am|call me|this is|name is|i'm called)\s+(` + nameWordSeq + `)`),
	regexp.MustCompile(`(?i)(?:name:)\s*(` + nameWordSeq + `)`),
	regexp.MustCompile(`^([A-Z][a-zA-Z]{2,}(?:\s+[A-Z][a-zA-Z]+)*)(?:\s|$)`), // bare name at message start
}

// nameExcludedWords rejects name candidates containing booking vocabulary.
var nameExcludedWords = map[string]bool{
	"vip": true, "standard": true, "student": true, "group": true,
	"ticket": true, "tickets": true, "day": true, "days": true,
	"booking": true, "book": true,
}

// Extract maps a raw message to the booking fields it mentions. Every rule
// is attempted independently on every call; a failed rule leaves its field
// absent rather than erroring. The result is a bag of single-field matches,
// not a joint parse, so a bad phone match never blocks name or email
// extraction from the same message.
func Extract(message string) map[Field]string {
	extracted := make(map[Field]string)
	lower := strings.ToLower(message)

	if email := emailRE.FindString(message); email != "" {
		extracted[FieldEmail] = email
	}

	for _, re := range phoneREs {
		if phone := re.FindString(message); phone != "" {
			extracted[FieldPhone] = nonDigitRE.ReplaceAllString(phone, "")
			break
		}
	}

scanTickets:
	for _, entry := range ticketKeywordTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				extracted[FieldTicketType] = string(entry.ticket)
				break scanTickets
			}
		}
	}

	for _, pattern := range daysPatterns {
		if pattern.re.MatchString(lower) {
			extracted[FieldDaysAttending] = pattern.value
			break
		}
	}

	for _, keyword := range betaKeywords {
		if strings.Contains(lower, keyword) {
			// Only the explicit dialogue question can set this to "no".
			extracted[FieldBetaTester] = "yes"
			break
		}
	}

	for _, re := range namePatterns {
		match := re.FindStringSubmatch(message)
		if match == nil {
			continue
		}
		if candidate := strings.TrimSpace(match[1]); acceptableName(candidate) {
			extracted[FieldName] = candidate
		}
		break
	}

	return extracted
}

func acceptableName(candidate string) bool {
	if len(candidate) <= 2 {
		return false
	}
	for _, word := range strings.Fields(strings.ToLower(candidate)) {
		if nameExcludedWords[word] {
			return false
		}
	}
	return true
}
