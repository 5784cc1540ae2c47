package repository

// Chain identifies a supported network in aggregator naming.
type Chain string

const (
	ChainSolana   Chain = "solana"
	ChainEthereum Chain = "ethereum"
	ChainBSC      Chain = "bsc"
	ChainBase     Chain = "base"
)

// IsValidChain returns true if c is a supported chain.
func IsValidChain(c Chain) bool {
	switch c {
	case ChainSolana, ChainEthereum, ChainBSC, ChainBase:
		return true
	default:
		return false
	}
}

// DefaultChain returns the default chain.
func DefaultChain() Chain { return ChainSolana }

// NormalizeChain converts a raw string to a valid chain (or default).
func NormalizeChain(s string) Chain {
	if s == "" {
		return DefaultChain()
	}
	c := Chain(s)
	if IsValidChain(c) {
		return c
	}
	return DefaultChain()
}
