package models

import (
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/shopspring/decimal"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/premium"
)

type PolicyComponents []PolicyComponent

type PolicyComponent struct {
	ID              int                   `db:"id"`
	PolicyID        int                   `db:"policy_id"`
	Sequence        int                   `db:"sequence" validate:"min=1"`
	Name            premium.ComponentName `db:"name" validate:"componentName"`
	Operation       premium.Operation     `db:"operation" validate:"componentOperation"`
	FlatValue       decimal.Decimal       `db:"flat_value" validate:"nonNegativeDecimal"`
	PercentageValue decimal.Decimal       `db:"percentage_value" validate:"percentage"`
	CreatedAt       time.Time             `db:"created_at"`
	UpdatedAt       time.Time             `db:"updated_at"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (pc *PolicyComponent) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(pc), nil
}

// Create stores the PolicyComponent data as a new record in the database.
func (pc *PolicyComponent) Create(tx *pop.Connection) error {
	return create(tx, pc)
}

// FindByPolicy loads all of a policy's components in evaluation order
func (pcs *PolicyComponents) FindByPolicy(tx *pop.Connection, policyID int) error {
	err := tx.Where("policy_id = ?", policyID).Order("sequence asc").All(pcs)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// FindBySequence loads the component at the given position within a policy
func (pc *PolicyComponent) FindBySequence(tx *pop.Connection, policyID, sequence int) error {
	err := tx.Where("policy_id = ? AND sequence = ?", policyID, sequence).First(pc)
	if err == nil {
		return nil
	}
	appErr := appErrorFromDB(err, api.ErrorQueryFailure).(*api.AppError)
	if appErr.Category == api.CategoryNotFound {
		appErr.Key = api.ErrorPolicyComponentNotFound
	}
	return appErr
}

func (pc *PolicyComponent) toPremium() premium.Component {
	return premium.Component{
		Sequence:        pc.Sequence,
		Name:            pc.Name,
		Operation:       pc.Operation,
		FlatValue:       pc.FlatValue,
		PercentageValue: pc.PercentageValue,
	}
}

func ConvertPolicyComponent(pc PolicyComponent) api.PolicyComponent {
	return api.PolicyComponent{
		Sequence:        pc.Sequence,
		Name:            string(pc.Name),
		Operation:       string(pc.Operation),
		FlatValue:       pc.FlatValue,
		PercentageValue: pc.PercentageValue,
	}
}

func ConvertPolicyComponents(pcs PolicyComponents) api.PolicyComponents {
	components := make(api.PolicyComponents, len(pcs))
	for i, pc := range pcs {
		components[i] = ConvertPolicyComponent(pc)
	}
	return components
}

// componentsFromInput parses submitted components into evaluation order. List position sets
// the sequence, starting at 1.
func componentsFromInput(inputs []api.PolicyComponentInput) (PolicyComponents, error) {
	parsed := make([]premium.Component, len(inputs))
	for i, in := range inputs {
		name, err := premium.ParseComponentName(in.Name)
		if err != nil {
			return nil, api.NewAppError(err, api.ErrorPolicyInvalidComponents, api.CategoryUser)
		}
		op, err := premium.ParseOperation(in.Operation)
		if err != nil {
			return nil, api.NewAppError(err, api.ErrorPolicyInvalidComponents, api.CategoryUser)
		}
		parsed[i] = premium.Component{
			Name:            name,
			Operation:       op,
			FlatValue:       in.FlatValue,
			PercentageValue: in.PercentageValue,
		}
	}
	premium.Renumber(parsed)

	components := make(PolicyComponents, len(parsed))
	for i, c := range parsed {
		components[i] = PolicyComponent{
			Sequence:        c.Sequence,
			Name:            c.Name,
			Operation:       c.Operation,
			FlatValue:       c.FlatValue,
			PercentageValue: c.PercentageValue,
		}
	}
	return components, nil
}
