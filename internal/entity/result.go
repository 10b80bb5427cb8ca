package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carelog/receipt-extract/constants"
)

// Result represents the outcome of one extraction call for data transfer to
// the caller (the web/persistence layer pre-fills a record from it). Amount
// defaults to zero and Date to "today" when the respective field is unset;
// the Set flags tell the two states apart. Confidence is the sum of all
// field contributions plus domain bonuses and is only comparable within the
// same extraction call.
type Result struct {
	ProviderName Field[string]                     `json:"provider_name"`
	Category     Field[constants.ProviderCategory] `json:"category"`
	Amount       Field[decimal.Decimal]            `json:"amount"`
	Date         Field[time.Time]                  `json:"date"`
	Confidence   float64                           `json:"confidence"`
	BackendID    string                            `json:"backend_id,omitempty"`
	Errors       []string                          `json:"errors,omitempty"`
}

// AmountValue returns the extracted amount, or decimal zero when unset.
func (r *Result) AmountValue() decimal.Decimal {
	return r.Amount.OrDefault(decimal.Zero)
}

// DateValue returns the extracted date, or today (UTC) when unset.
func (r *Result) DateValue() time.Time {
	return r.Date.OrDefault(time.Now().UTC().Truncate(24 * time.Hour))
}
