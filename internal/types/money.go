// README: Common money value object used across modules.
package types

// Money is an amount in currency minor units. Formatting (symbols,
// thousands separators) is a presentation concern and never happens here.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}
