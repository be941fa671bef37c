package lexicon

// Lexicon holds the immutable keyword and provider tables that drive scam
// detection and entity extraction. The tables are plain data so they can be
// unit-tested and extended without touching the detection control flow.
type Lexicon struct {
	// Keywords maps a semantic category name to the keywords in that
	// category. Matching is case-insensitive against the lower-cased text.
	Keywords map[string][]string

	// PaymentProviders is the whitelist of payment-app aliases that make a
	// handle@provider string count as a real payment handle.
	PaymentProviders []string

	// AccountKeywords gate bank-account extraction: a 9-18 digit run only
	// counts as an account number when one of these words is also present.
	AccountKeywords []string

	// SuspiciousURLMarkers flag a URL as suspicious when any of them appears
	// in the lower-cased URL (shortener domains, sensitive path words,
	// disposable TLDs and the plain http:// scheme).
	SuspiciousURLMarkers []string
}

// Keyword categories. Order does not matter for scoring, only for reporting.
const (
	CategoryPrize        = "prize"
	CategoryUrgency      = "urgency"
	CategoryMoney        = "money"
	CategoryVerification = "verification"
	CategoryThreat       = "threat"
)

// Default returns the built-in lexicon. Callers must treat the result as
// read-only; it is shared.
func Default() *Lexicon {
	return &defaultLexicon
}

var defaultLexicon = Lexicon{
	Keywords: map[string][]string{
		CategoryPrize:        {"congratulations", "won", "winner", "prize", "lottery", "lucky draw"},
		CategoryUrgency:      {"urgent", "immediately", "now", "hurry", "limited time", "expires"},
		CategoryMoney:        {"claim", "payment", "transfer", "send money", "pay", "rupees", "rs"},
		CategoryVerification: {"verify", "confirm", "update", "kyc", "account", "details"},
		CategoryThreat:       {"blocked", "suspended", "unauthorized", "fraud", "security alert"},
	},
	PaymentProviders: []string{
		"paytm", "phonepe", "googlepay", "ybl",
		"axl", "oksbi", "okicici", "okhdfc",
		"gpay", "bhim", "upi",
	},
	AccountKeywords: []string{"account", "acc", "ifsc", "bank"},
	SuspiciousURLMarkers: []string{
		"bit.ly", "tinyurl", "goo.gl",
		"login", "verify", "confirm",
		".tk", ".ml", ".ga", ".cf",
		"http://",
	},
}

// TotalKeywords returns the size of the combined keyword lexicon.
func (l *Lexicon) TotalKeywords() int {
	total := 0
	for _, words := range l.Keywords {
		total += len(words)
	}
	return total
}
