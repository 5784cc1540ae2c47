package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  QueryKind
	}{
		{"wrapped sol mint", "So11111111111111111111111111111111111111112", QuerySolanaAddress},
		{"usdc mint", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", QuerySolanaAddress},
		{"evm checksum address", "0xdAC17F958D2ee523a2206206994597C13D831ec7", QueryEVMAddress},
		{"ticker", "PEPE", QuerySymbol},
		{"token name with spaces", "dog wif hat", QuerySymbol},
		{"short hex is not an address", "0xdeadbeef", QuerySymbol},
		{"base58 but too short for an address", "3mJr7AoUXx2Wqd", QuerySymbol},
		{"non-canonical base58 in the window still counts", "JxbK3mZ9QpWvTnRd5HsfA2ucYeGgq7kLM8N", QuerySolanaAddress},
		{"excluded base58 characters break the shape", "JxbK3mZ9QpWvTnRd5HsfA2ucYeGgq7kL0lI", QuerySymbol},
		{"surrounding whitespace is trimmed", "  So11111111111111111111111111111111111111112  ", QuerySolanaAddress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyQuery(tt.query))
		})
	}
}

func TestIsBlockedToken(t *testing.T) {
	assert.True(t, IsBlockedToken("BTC"))
	assert.True(t, IsBlockedToken("  eth  "))
	assert.True(t, IsBlockedToken("Tether"))
	assert.False(t, IsBlockedToken("PEPE"))
	assert.False(t, IsBlockedToken("wif"))
}

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		kind    QueryKind
		wantErr *ValidationError
	}{
		{"ticker passes", "pepe", "pepe", QuerySymbol, nil},
		{"address passes", "0xdAC17F958D2ee523a2206206994597C13D831ec7", "0xdAC17F958D2ee523a2206206994597C13D831ec7", QueryEVMAddress, nil},
		{"empty", "", "", QuerySymbol, ErrEmptyQuery},
		{"whitespace only", "   ", "", QuerySymbol, ErrEmptyQuery},
		{"two tickers", "wif sol", "", QuerySymbol, ErrMultiToken},
		{"comma separated", "wif,sol", "", QuerySymbol, ErrMultiToken},
		{"blocked large cap", "BTC", "", QuerySymbol, ErrBlockedToken},
		{"blocked beats nothing else", "usdt", "", QuerySymbol, ErrBlockedToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, kind, err := ValidateQuery(tt.raw)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.kind, kind)
		})
	}
}
