package recurrence

import "strings"

// Processor boilerplate that banks prepend to card descriptors. Stripped
// before grouping so "SQ *BLUE BOTTLE" and "BLUE BOTTLE" share an identity.
var boilerplatePrefixes = []string{
	"paypal *",
	"paypal*",
	"pp*",
	"sq *",
	"sq*",
	"tst* ",
	"tst*",
	"sp ",
	"pos ",
	"ach ",
	"web ",
	"recurring ",
	"checkcard ",
	"debit card ",
}

// NormalizeMerchant reduces a raw bank descriptor to a merchant identity
// key: case-folded, processor boilerplate removed, trailing numeric IDs
// (store numbers, reference codes) dropped.
func NormalizeMerchant(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))

	for _, p := range boilerplatePrefixes {
		if strings.HasPrefix(s, p) {
			s = strings.TrimSpace(strings.TrimPrefix(s, p))
		}
	}

	// Punctuation separates tokens but carries no identity.
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return ' '
		}
	}, s)

	fields := strings.Fields(s)

	// Drop trailing tokens that are numeric IDs ("store 00123", "ref 8842").
	for len(fields) > 1 && isNumericID(fields[len(fields)-1]) {
		fields = fields[:len(fields)-1]
	}

	return strings.Join(fields, " ")
}

// isNumericID reports whether a token is mostly digits (an ID, not a name).
func isNumericID(tok string) bool {
	digits := 0
	for _, r := range tok {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits > 0 && digits*2 >= len(tok)
}
