package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/shopspring/decimal"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/domain"
	"github.com/silinternational/abs-insurance-api/premium"
)

type Policies []Policy

type Policy struct {
	ID        int       `db:"id"`
	Name      string    `db:"name" validate:"required,max=255"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	Components PolicyComponents `has_many:"policy_components" order_by:"sequence asc" validate:"dive"`
}

// Validate gets run every time you call a "pop.Validate*" (pop.ValidateAndSave, pop.ValidateAndCreate, pop.ValidateAndUpdate) method.
func (p *Policy) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(p), nil
}

// validateInput checks the policy and its full component set before anything is written
func (p *Policy) validateInput() error {
	vErrs := validateModel(p)
	if !vErrs.HasAny() {
		return nil
	}

	key := api.ErrorValidation
	if len(vErrs.Get("Policy.Name")) == 0 {
		key = api.ErrorPolicyInvalidComponents
	}
	return api.NewAppError(errors.New(flattenPopErrors(vErrs)), key, api.CategoryUser)
}

// FindPage loads one page of policies, with their components, ordered by id
func (p *Policies) FindPage(tx *pop.Connection, q api.QueryParams) (api.ListMeta, error) {
	query := tx.Eager("Components").Order("id asc").Paginate(q.Page(), q.Limit())
	if s := q.Search(); s != "" {
		query = query.Where("name ILIKE ?", "%"+s+"%")
	}

	if err := query.All(p); err != nil {
		return api.ListMeta{}, appErrorFromDB(err, api.ErrorQueryFailure)
	}

	pg := query.Paginator
	return api.ListMeta{
		Page:       pg.Page,
		PerPage:    pg.PerPage,
		TotalPages: pg.TotalPages,
		Total:      pg.TotalEntriesSize,
	}, nil
}

// FindByID loads a policy and its components
func (p *Policy) FindByID(tx *pop.Connection, id int) error {
	err := tx.Eager("Components").Find(p, id)
	return policyNotFound(err, fmt.Sprintf("policy %d", id))
}

// FindByName loads the policy with exactly this name
func (p *Policy) FindByName(tx *pop.Connection, name string) error {
	err := tx.Where("name = ?", name).First(p)
	return policyNotFound(err, fmt.Sprintf("policy %q", name))
}

func policyNotFound(err error, what string) error {
	if err == nil {
		return nil
	}
	if domain.IsOtherThanNoRows(err) {
		return appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return api.NewAppError(fmt.Errorf("%s not found: %w", what, err), api.ErrorPolicyNotFound, api.CategoryNotFound)
}

// nameTaken reports whether a policy other than p already uses name
func (p *Policy) nameTaken(tx *pop.Connection, name string) (bool, error) {
	var other Policy
	err := other.FindByName(tx, name)
	if err == nil {
		return other.ID != p.ID, nil
	}
	var appErr *api.AppError
	if errors.As(err, &appErr) && appErr.Category == api.CategoryNotFound {
		return false, nil
	}
	return false, err
}

// CreatePolicy stores a new policy and its components. Components are numbered 1..N in the
// order given.
func CreatePolicy(tx *pop.Connection, input api.PolicyInput) (Policy, error) {
	components, err := componentsFromInput(input.Components)
	if err != nil {
		return Policy{}, err
	}

	p := Policy{Name: input.Name, Components: components}
	if err := p.validateInput(); err != nil {
		return Policy{}, err
	}

	if taken, err := p.nameTaken(tx, p.Name); err != nil {
		return Policy{}, err
	} else if taken {
		return Policy{}, api.NewAppError(
			fmt.Errorf("a policy named %q already exists", p.Name),
			api.ErrorPolicyAlreadyExists,
			api.CategoryConflict,
		)
	}

	if err := create(tx, &p); err != nil {
		return Policy{}, err
	}
	if err := p.createComponents(tx); err != nil {
		return Policy{}, err
	}

	p.emit(domain.EventApiPolicyCreated)
	return p, nil
}

func (p *Policy) createComponents(tx *pop.Connection) error {
	for i := range p.Components {
		p.Components[i].PolicyID = p.ID
		if err := p.Components[i].Create(tx); err != nil {
			return err
		}
	}
	return nil
}

func (p *Policy) deleteComponents(tx *pop.Connection) error {
	err := tx.RawQuery("DELETE FROM policy_components WHERE policy_id = ?", p.ID).Exec()
	return appErrorFromDB(err, api.ErrorDestroyFailure)
}

// UpdateFromInput renames the policy and replaces its component set. Sequences are reassigned
// from list position; any previous numbering is discarded.
func (p *Policy) UpdateFromInput(tx *pop.Connection, input api.PolicyInput) error {
	components, err := componentsFromInput(input.Components)
	if err != nil {
		return err
	}

	updated := *p
	updated.Name = input.Name
	updated.Components = components
	if err := updated.validateInput(); err != nil {
		return err
	}

	if updated.Name != p.Name {
		if taken, err := p.nameTaken(tx, updated.Name); err != nil {
			return err
		} else if taken {
			return api.NewAppError(
				fmt.Errorf("cannot rename policy %d, the name %q is in use", p.ID, updated.Name),
				api.ErrorPolicyAlreadyExists,
				api.CategoryConflict,
			)
		}
	}

	if err := update(tx, &updated); err != nil {
		return err
	}
	if err := updated.deleteComponents(tx); err != nil {
		return err
	}
	if err := updated.createComponents(tx); err != nil {
		return err
	}

	*p = updated
	p.emit(domain.EventApiPolicyUpdated)
	return nil
}

// Destroy removes the policy and its components
func (p *Policy) Destroy(tx *pop.Connection) error {
	if err := p.deleteComponents(tx); err != nil {
		return err
	}
	if err := destroy(tx, p); err != nil {
		return err
	}

	p.emit(domain.EventApiPolicyDeleted)
	return nil
}

// LoadComponents - a simple wrapper method for loading the components, in sequence order
func (p *Policy) LoadComponents(tx *pop.Connection, reload bool) error {
	if len(p.Components) > 0 && !reload {
		return nil
	}
	var components PolicyComponents
	if err := components.FindByPolicy(tx, p.ID); err != nil {
		return err
	}
	p.Components = components
	return nil
}

// Quote prices the policy for a market value. Components must already be loaded.
func (p *Policy) Quote(marketValue decimal.Decimal) api.Quote {
	q := premium.Calculate(p.toPremium(), marketValue)
	return api.Quote{
		PolicyID:   q.PolicyID,
		PolicyName: q.PolicyName,
		Premium:    q.Premium,
	}
}

func (p *Policy) toPremium() premium.Policy {
	components := make([]premium.Component, len(p.Components))
	for i := range p.Components {
		components[i] = p.Components[i].toPremium()
	}
	return premium.Policy{
		ID:         p.ID,
		Name:       p.Name,
		Components: components,
	}
}

func (p *Policy) emit(kind string) {
	emitEvent(events.Event{
		Kind:    kind,
		Message: fmt.Sprintf("policy %d %q", p.ID, p.Name),
		Payload: p.eventPayload(),
	})
}

// eventPayload describes the policy as written. Listeners run before the request transaction
// commits, so they read this rather than the database.
func (p *Policy) eventPayload() events.Payload {
	components := make([]string, len(p.Components))
	for i, c := range p.Components {
		components[i] = fmt.Sprintf("%d %s %s", c.Sequence, c.Operation, c.Name)
	}

	return events.Payload{
		domain.EventPayloadID:         p.ID,
		domain.EventPayloadName:       p.Name,
		domain.EventPayloadComponents: components,
	}
}

func ConvertPolicy(p Policy) api.Policy {
	return api.Policy{
		ID:         p.ID,
		Name:       p.Name,
		Components: ConvertPolicyComponents(p.Components),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func ConvertPolicies(ps Policies) api.Policies {
	policies := make(api.Policies, len(ps))
	for i, p := range ps {
		policies[i] = ConvertPolicy(p)
	}
	return policies
}
