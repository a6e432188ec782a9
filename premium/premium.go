// Package premium computes policy premiums from an ordered set of rating components.
//
// Everything in this package is a pure function of its inputs. Loading policies, validating
// requests and persisting results happen in the callers.
package premium

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// ComponentName
//
// may be one of: PremiumBase, ExtraPerils, MarketValuePremium, PromoDiscount
//
// swagger:model
type ComponentName string

const (
	ComponentPremiumBase        = ComponentName("PremiumBase")
	ComponentExtraPerils        = ComponentName("ExtraPerils")
	ComponentMarketValuePremium = ComponentName("MarketValuePremium")
	ComponentPromoDiscount      = ComponentName("PromoDiscount")
)

// AllComponentNames lists the component names a well-formed policy carries, one of each.
var AllComponentNames = []ComponentName{
	ComponentPremiumBase,
	ComponentExtraPerils,
	ComponentMarketValuePremium,
	ComponentPromoDiscount,
}

// Operation
//
// may be one of: Add, Subtract
//
// swagger:model
type Operation string

const (
	OperationAdd      = Operation("Add")
	OperationSubtract = Operation("Subtract")
)

var AllOperations = []Operation{OperationAdd, OperationSubtract}

// Component is one term of a policy's premium formula.
type Component struct {
	Sequence        int
	Name            ComponentName
	Operation       Operation
	FlatValue       decimal.Decimal
	PercentageValue decimal.Decimal
}

// Policy is the read-only snapshot the calculator works on.
type Policy struct {
	ID         int
	Name       string
	Components []Component
}

// Quote is the result of pricing a policy for a market value.
type Quote struct {
	PolicyID   int
	PolicyName string
	Premium    decimal.Decimal
}

// Places is the number of fractional digits kept in a premium.
const Places = 2

var hundred = decimal.NewFromInt(100)

// Calculate folds the policy's components, in ascending sequence order, into a premium for the
// given market value. Only MarketValuePremium components read the market value. The result is
// rounded half to even at two places and is never clamped.
func Calculate(policy Policy, marketValue decimal.Decimal) Quote {
	total := decimal.Zero

	for _, c := range ordered(policy.Components) {
		amount := c.contribution(marketValue)
		switch c.Operation {
		case OperationAdd:
			total = total.Add(amount)
		case OperationSubtract:
			total = total.Sub(amount)
		}
	}

	return Quote{
		PolicyID:   policy.ID,
		PolicyName: policy.Name,
		Premium:    total.RoundBank(Places),
	}
}

func (c Component) contribution(marketValue decimal.Decimal) decimal.Decimal {
	if c.Name == ComponentMarketValuePremium {
		return marketValue.Mul(c.PercentageValue.Div(hundred))
	}
	return c.FlatValue
}

// ordered returns a copy of components sorted by sequence. Equal sequences keep input order.
func ordered(components []Component) []Component {
	sorted := make([]Component, len(components))
	copy(sorted, components)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Sequence < sorted[j].Sequence
	})
	return sorted
}

// Renumber assigns sequence 1..N following list position, ignoring any sequence already set.
func Renumber(components []Component) {
	for i := range components {
		components[i].Sequence = i + 1
	}
}

// ParseComponentName matches a name case-insensitively, ignoring spaces, so "premium base" and
// "PremiumBase" are the same component.
func ParseComponentName(s string) (ComponentName, error) {
	compact := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	for _, n := range AllComponentNames {
		if strings.EqualFold(compact, string(n)) {
			return n, nil
		}
	}
	return "", fmt.Errorf("invalid component name %q", s)
}

// ParseOperation matches an operation case-insensitively.
func ParseOperation(s string) (Operation, error) {
	trimmed := strings.TrimSpace(s)
	for _, o := range AllOperations {
		if strings.EqualFold(trimmed, string(o)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("operation must be add or subtract, got %q", s)
}

// IsValidComponentName reports whether n is one of the four canonical names.
func IsValidComponentName(n ComponentName) bool {
	for _, v := range AllComponentNames {
		if n == v {
			return true
		}
	}
	return false
}

// IsValidOperation reports whether o is Add or Subtract.
func IsValidOperation(o Operation) bool {
	return o == OperationAdd || o == OperationSubtract
}
