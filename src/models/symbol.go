package models

// MSymbolMatch is one result of a symbol search.
type MSymbolMatch struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Type        string `json:"type,omitempty"`
	Currency    string `json:"currency,omitempty"`
}
