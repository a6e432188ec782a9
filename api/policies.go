package api

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// decimal amounts go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

// swagger:model
type Policies []Policy

// Policy is an insurance product priced by its components
// swagger:model
type Policy struct {
	// unique ID
	ID int `json:"id"`

	// policy name, unique across all policies
	Name string `json:"name"`

	// rating components in evaluation order
	Components PolicyComponents `json:"components"`

	// The time the policy was created
	//
	// swagger:strfmt date-time
	CreatedAt time.Time `json:"created_at"`

	// The time the policy was last updated
	//
	// swagger:strfmt date-time
	UpdatedAt time.Time `json:"updated_at"`
}

// swagger:model
type PolicyComponents []PolicyComponent

// PolicyComponent is one term of a policy's premium formula
// swagger:model
type PolicyComponent struct {
	// evaluation order within the policy, starting at 1
	Sequence int `json:"sequence"`

	// one of PremiumBase, ExtraPerils, MarketValuePremium, PromoDiscount
	Name string `json:"name"`

	// Add or Subtract
	Operation string `json:"operation"`

	// amount used by every component except MarketValuePremium
	FlatValue decimal.Decimal `json:"flat_value"`

	// percent of the market value, used only by MarketValuePremium
	PercentageValue decimal.Decimal `json:"percentage_value"`
}

// PolicyInput is the payload for creating or replacing a policy. Component order in the list
// becomes the evaluation order.
// swagger:model
type PolicyInput struct {
	// policy name
	Name string `json:"name"`

	// exactly four components, one each of PremiumBase, ExtraPerils, MarketValuePremium and PromoDiscount
	Components []PolicyComponentInput `json:"components"`
}

// PolicyComponentInput is a component as submitted by a client. Names are matched
// case-insensitively and may contain spaces, e.g. "Premium Base".
// swagger:model
type PolicyComponentInput struct {
	Name            string          `json:"name"`
	Operation       string          `json:"operation"`
	FlatValue       decimal.Decimal `json:"flat_value"`
	PercentageValue decimal.Decimal `json:"percentage_value"`
}

// QuoteRequest asks for the premium of a policy at a market value
// swagger:model
type QuoteRequest struct {
	PolicyID    int             `json:"policy_id"`
	MarketValue decimal.Decimal `json:"market_value"`
}

// Quote is a computed premium
// swagger:model
type Quote struct {
	PolicyID   int    `json:"policy_id"`
	PolicyName string `json:"policy_name"`

	// premium rounded to two decimal places
	Premium decimal.Decimal `json:"premium"`
}

// MarshalJSON writes the premium with exactly two fractional digits, e.g. 340.00
func (q Quote) MarshalJSON() ([]byte, error) {
	type quote Quote
	return json.Marshal(struct {
		quote
		Premium json.Number `json:"premium"`
	}{
		quote:   quote(q),
		Premium: json.Number(q.Premium.StringFixedBank(2)),
	})
}

// ListMeta describes a page of results
// swagger:model
type ListMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	TotalPages int `json:"total_pages"`
	Total      int `json:"total"`
}

// PolicyList is a page of policies
// swagger:model
type PolicyList struct {
	Meta ListMeta `json:"meta"`
	Data Policies `json:"data"`
}
