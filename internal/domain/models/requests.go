package models

// Requests for token analysis HTTP endpoints. Defined in domain for consistency and reuse.

type AnalyzeRequest struct {
	Query string `query:"q" json:"q" validate:"required,min=2,max=120"`
	Limit int    `query:"limit" json:"limit" default:"5" validate:"gte=1,lte=25"`
}

type TokenRequest struct {
	Chain   string `param:"chain" json:"chain" validate:"required,alphanum,max=32"`
	Address string `param:"address" json:"address" validate:"required,min=20,max=64"`
}

type DevTrustRequest struct {
	Address string `param:"address" json:"address" validate:"required,min=32,max=44"`
	Mint    string `query:"mint" json:"mint" validate:"omitempty,min=32,max=44"`
}

type WalletTrustRequest struct {
	Address string `param:"address" json:"address" validate:"required,min=32,max=44"`
}

type HistoryRequest struct {
	Chain   string `param:"chain" json:"chain" validate:"required,alphanum,max=32"`
	Address string `param:"address" json:"address" validate:"required,min=20,max=64"`
	N       int    `query:"n" json:"n" default:"50" validate:"gte=1,lte=500"`
}

type WatchRequest struct {
	Chain   string `query:"chain" json:"chain" validate:"required,alphanum,max=32"`
	Address string `query:"address" json:"address" validate:"required,min=20,max=64"`
}
