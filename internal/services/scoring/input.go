package scoring

import (
	"regexp"
	"strings"

	"github.com/mr-tron/base58"
)

// QueryKind tells the analyzer how to route a free-text query.
type QueryKind int

const (
	QuerySymbol QueryKind = iota
	QuerySolanaAddress
	QueryEVMAddress
)

var evmAddressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidationError is a user-facing query rejection. Handlers surface the
// message verbatim as a bad request.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Fixed validation messages. Exactly one is surfaced per query.
var (
	ErrEmptyQuery   = &ValidationError{Msg: "enter a token ticker or contract address"}
	ErrMultiToken   = &ValidationError{Msg: "one token at a time, remove spaces and commas"}
	ErrBlockedToken = &ValidationError{Msg: "major tokens are out of scope, try a memecoin ticker or mint address"}
)

// blockedTickers are large caps the scorer refuses to treat as memecoins.
var blockedTickers = map[string]struct{}{
	"btc": {}, "bitcoin": {}, "eth": {}, "ethereum": {},
	"usdt": {}, "tether": {}, "usdc": {},
	"bnb": {}, "sol": {}, "solana": {}, "xrp": {},
	"ada": {}, "cardano": {}, "avax": {}, "dot": {},
	"link": {}, "ltc": {}, "litecoin": {}, "trx": {}, "ton": {},
}

// IsBlockedToken reports whether a ticker or name sits on the large-cap
// deny list. Case-insensitive, surrounding whitespace ignored.
func IsBlockedToken(ticker string) bool {
	_, ok := blockedTickers[strings.ToLower(strings.TrimSpace(ticker))]
	return ok
}

// ValidateQuery applies the input rules in order and returns the trimmed
// query plus its routing kind. The first failed rule wins; later rules are
// not evaluated, so only one message can surface.
func ValidateQuery(raw string) (string, QueryKind, error) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return "", QuerySymbol, ErrEmptyQuery
	}
	if strings.ContainsAny(q, ", ") {
		return "", QuerySymbol, ErrMultiToken
	}
	kind := ClassifyQuery(q)
	if kind == QuerySymbol && IsBlockedToken(q) {
		return "", QuerySymbol, ErrBlockedToken
	}
	return q, kind, nil
}

// ClassifyQuery decides whether a query string is a token address or a
// ticker/name search. Solana detection is a loose shape check, 32 to 44
// chars of the base58 alphabet, with no checksum or canonical-length
// validation. Decode only proves every character is in the alphabet.
func ClassifyQuery(q string) QueryKind {
	q = strings.TrimSpace(q)
	if evmAddressRe.MatchString(q) {
		return QueryEVMAddress
	}
	if len(q) >= 32 && len(q) <= 44 {
		if _, err := base58.Decode(q); err == nil {
			return QuerySolanaAddress
		}
	}
	return QuerySymbol
}
