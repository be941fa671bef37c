package core

import (
	"regexp"
	"strings"

	"github.com/mikey/llm-scam-honeypot/internal/lexicon"
)

var (
	handlePattern  = regexp.MustCompile(`\b[a-zA-Z0-9._-]+@[a-zA-Z0-9._-]+\b`)
	accountPattern = regexp.MustCompile(`\b\d{9,18}\b`)
	ifscPattern    = regexp.MustCompile(`\b[A-Z]{4}0[A-Z0-9]{6}\b`)
	phonePattern   = regexp.MustCompile(`\b[6-9]\d{9}\b`)
	urlPattern     = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)
)

// Extractor mines structured indicators out of raw message text. It is pure
// and stateless; every method returns unique matches in discovery order.
type Extractor struct {
	lex *lexicon.Lexicon
}

// NewExtractor creates an extractor backed by the given lexicon.
func NewExtractor(lex *lexicon.Lexicon) *Extractor {
	return &Extractor{lex: lex}
}

// ExtractAll runs every sub-extractor and derives the suspicious-URL subset.
func (e *Extractor) ExtractAll(text string) Indicators {
	urls := e.URLs(text)
	return Indicators{
		PaymentHandles: e.PaymentHandles(text),
		BankAccounts:   e.BankAccounts(text),
		IFSCCodes:      e.IFSCCodes(text),
		PhoneNumbers:   e.PhoneNumbers(text),
		URLs:           urls,
		SuspiciousURLs: e.filterSuspicious(urls),
	}
}

// PaymentHandles returns handle@provider strings whose provider part matches
// the payment-app whitelist.
func (e *Extractor) PaymentHandles(text string) []string {
	var handles []string
	for _, match := range handlePattern.FindAllString(text, -1) {
		lowered := strings.ToLower(match)
		for _, provider := range e.lex.PaymentProviders {
			if strings.Contains(lowered, provider) {
				handles = append(handles, match)
				break
			}
		}
	}
	return dedupe(handles)
}

// BankAccounts returns 9-18 digit runs, but only when the text also mentions
// an account-related keyword. Without the gate, phone numbers and amounts
// would flood this category.
func (e *Extractor) BankAccounts(text string) []string {
	lowered := strings.ToLower(text)
	gated := false
	for _, keyword := range e.lex.AccountKeywords {
		if strings.Contains(lowered, keyword) {
			gated = true
			break
		}
	}
	if !gated {
		return nil
	}
	return dedupe(accountPattern.FindAllString(text, -1))
}

// IFSCCodes returns bank-branch routing codes (4 letters, literal zero,
// 6 alphanumerics).
func (e *Extractor) IFSCCodes(text string) []string {
	return dedupe(ifscPattern.FindAllString(text, -1))
}

// PhoneNumbers returns 10-digit Indian mobile numbers (first digit 6-9).
func (e *Extractor) PhoneNumbers(text string) []string {
	return dedupe(phonePattern.FindAllString(text, -1))
}

// URLs returns http/https substrings with no embedded whitespace or
// quoting characters.
func (e *Extractor) URLs(text string) []string {
	return dedupe(urlPattern.FindAllString(text, -1))
}

// IsSuspiciousURL reports whether a URL carries any of the known bad signs.
func (e *Extractor) IsSuspiciousURL(url string) bool {
	lowered := strings.ToLower(url)
	for _, marker := range e.lex.SuspiciousURLMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

func (e *Extractor) filterSuspicious(urls []string) []string {
	var suspicious []string
	for _, url := range urls {
		if e.IsSuspiciousURL(url) {
			suspicious = append(suspicious, url)
		}
	}
	return suspicious
}

// dedupe removes duplicates by exact string value, keeping first occurrence
// order. Comparison is never on a normalized form: "Name@paytm" and
// "name@paytm" are distinct artifacts.
func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	var unique []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	return unique
}
