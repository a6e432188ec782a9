package models

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/domain"
	"github.com/silinternational/abs-insurance-api/premium"
)

func validComponents() PolicyComponents {
	return PolicyComponents{
		{Sequence: 1, Name: premium.ComponentPremiumBase, Operation: premium.OperationAdd, FlatValue: decimal.NewFromInt(50)},
		{Sequence: 2, Name: premium.ComponentExtraPerils, Operation: premium.OperationAdd, FlatValue: decimal.NewFromInt(20)},
		{Sequence: 3, Name: premium.ComponentMarketValuePremium, Operation: premium.OperationAdd, PercentageValue: decimal.NewFromInt(30)},
		{Sequence: 4, Name: premium.ComponentPromoDiscount, Operation: premium.OperationSubtract, FlatValue: decimal.NewFromInt(30)},
	}
}

func (ms *ModelSuite) TestPolicy_Validate() {
	t := ms.T()

	negativeFlat := validComponents()
	negativeFlat[0].FlatValue = decimal.NewFromInt(-1)

	bigPercentage := validComponents()
	bigPercentage[2].PercentageValue = decimal.RequireFromString("100.01")

	duplicate := validComponents()
	duplicate[1].Name = premium.ComponentPremiumBase

	badName := validComponents()
	badName[0].Name = "Deductible"

	badOperation := validComponents()
	badOperation[3].Operation = "Multiply"

	tests := []struct {
		name     string
		Policy   Policy
		wantErr  bool
		errField string
	}{
		{
			name:    "valid",
			Policy:  Policy{Name: "Standard", Components: validComponents()},
			wantErr: false,
		},
		{
			name:     "missing name",
			Policy:   Policy{Components: validComponents()},
			wantErr:  true,
			errField: "Policy.Name",
		},
		{
			name:     "no components",
			Policy:   Policy{Name: "Empty"},
			wantErr:  true,
			errField: "Policy.Components",
		},
		{
			name:     "three components",
			Policy:   Policy{Name: "Short", Components: validComponents()[:3]},
			wantErr:  true,
			errField: "Policy.Components",
		},
		{
			name:     "duplicate component",
			Policy:   Policy{Name: "Dup", Components: duplicate},
			wantErr:  true,
			errField: "Policy.Components",
		},
		{
			name:     "negative flat value",
			Policy:   Policy{Name: "Negative", Components: negativeFlat},
			wantErr:  true,
			errField: "Policy.Components[0].FlatValue",
		},
		{
			name:     "percentage over 100",
			Policy:   Policy{Name: "Over", Components: bigPercentage},
			wantErr:  true,
			errField: "Policy.Components[2].PercentageValue",
		},
		{
			name:     "unknown component name",
			Policy:   Policy{Name: "Unknown", Components: badName},
			wantErr:  true,
			errField: "Policy.Components[0].Name",
		},
		{
			name:     "unknown operation",
			Policy:   Policy{Name: "Op", Components: badOperation},
			wantErr:  true,
			errField: "Policy.Components[3].Operation",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vErr, _ := tt.Policy.Validate(DB)
			if tt.wantErr {
				if vErr.Count() == 0 {
					t.Errorf("Expected an error, but did not get one")
				} else if len(vErr.Get(tt.errField)) == 0 {
					t.Errorf("Expected an error on field %v, but got none (errors: %+v)", tt.errField, vErr.Errors)
				}
			} else if vErr.HasAny() {
				t.Errorf("Unexpected error: %+v", vErr)
			}
		})
	}
}

func (ms *ModelSuite) TestCreatePolicy() {
	existing := CreatePolicyFixtures(ms.DB, FixturesConfig{NumberOfPolicies: 1}).Policies[0]

	spaced := PolicyInputFixture("Spaced")
	spaced.Components[0].Name = "premium base"
	spaced.Components[3].Operation = "subtract"

	short := PolicyInputFixture("Short")
	short.Components = short.Components[:3]

	unknown := PolicyInputFixture("Unknown")
	unknown.Components[1].Name = "Deductible"

	badOperation := PolicyInputFixture("BadOperation")
	badOperation.Components[1].Operation = "times"

	negative := PolicyInputFixture("Negative")
	negative.Components[0].FlatValue = decimal.NewFromInt(-5)

	tests := []struct {
		name    string
		input   api.PolicyInput
		wantErr *api.AppError
	}{
		{
			name:  "good",
			input: PolicyInputFixture("Good"),
		},
		{
			name:  "loose component names",
			input: spaced,
		},
		{
			name:    "name taken",
			input:   PolicyInputFixture(existing.Name),
			wantErr: &api.AppError{Key: api.ErrorPolicyAlreadyExists, Category: api.CategoryConflict},
		},
		{
			name:    "missing name",
			input:   PolicyInputFixture(""),
			wantErr: &api.AppError{Key: api.ErrorValidation, Category: api.CategoryUser},
		},
		{
			name:    "three components",
			input:   short,
			wantErr: &api.AppError{Key: api.ErrorPolicyInvalidComponents, Category: api.CategoryUser},
		},
		{
			name:    "unknown component",
			input:   unknown,
			wantErr: &api.AppError{Key: api.ErrorPolicyInvalidComponents, Category: api.CategoryUser},
		},
		{
			name:    "unknown operation",
			input:   badOperation,
			wantErr: &api.AppError{Key: api.ErrorPolicyInvalidComponents, Category: api.CategoryUser},
		},
		{
			name:    "negative flat value",
			input:   negative,
			wantErr: &api.AppError{Key: api.ErrorPolicyInvalidComponents, Category: api.CategoryUser},
		},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			got, err := CreatePolicy(ms.DB, tt.input)
			if tt.wantErr != nil {
				ms.Error(err)
				ms.EqualAppError(*tt.wantErr, err)
				return
			}
			ms.NoError(err)
			ms.NotZero(got.ID)

			var reloaded Policy
			ms.NoError(reloaded.FindByID(ms.DB, got.ID))
			ms.Equal(tt.input.Name, reloaded.Name)
			ms.Len(reloaded.Components, 4)
			for i, c := range reloaded.Components {
				ms.Equal(i+1, c.Sequence, "components are not numbered by list position")
				ms.Equal(got.ID, c.PolicyID)
			}
			ms.Equal(premium.ComponentPremiumBase, reloaded.Components[0].Name)
			ms.Equal(premium.OperationSubtract, reloaded.Components[3].Operation)
		})
	}
}

func (ms *ModelSuite) TestPolicy_FindByID() {
	policy := CreatePolicyFixtures(ms.DB, FixturesConfig{NumberOfPolicies: 1}).Policies[0]

	var got Policy
	ms.NoError(got.FindByID(ms.DB, policy.ID))
	ms.Equal(policy.Name, got.Name)
	ms.Len(got.Components, 4)

	var missing Policy
	err := missing.FindByID(ms.DB, policy.ID+1000)
	ms.EqualAppError(api.AppError{Key: api.ErrorPolicyNotFound, Category: api.CategoryNotFound}, err)
}

func (ms *ModelSuite) TestPolicy_UpdateFromInput() {
	f := CreatePolicyFixtures(ms.DB, FixturesConfig{NumberOfPolicies: 2})
	policy, other := f.Policies[0], f.Policies[1]

	reordered := PolicyInputFixture("Renamed")
	reordered.Components[0], reordered.Components[3] = reordered.Components[3], reordered.Components[0]
	reordered.Components[1].FlatValue = decimal.NewFromInt(25)

	ms.NoError(policy.UpdateFromInput(ms.DB, reordered))

	var reloaded Policy
	ms.NoError(reloaded.FindByID(ms.DB, policy.ID))
	ms.Equal("Renamed", reloaded.Name)
	ms.Len(reloaded.Components, 4)
	ms.Equal(premium.ComponentPromoDiscount, reloaded.Components[0].Name)
	ms.Equal(1, reloaded.Components[0].Sequence)
	ms.Equal(premium.ComponentPremiumBase, reloaded.Components[3].Name)
	ms.Equal(4, reloaded.Components[3].Sequence)
	ms.True(decimal.NewFromInt(25).Equal(reloaded.Components[1].FlatValue))

	payload := policy.eventPayload()
	ms.Equal(policy.ID, payload[domain.EventPayloadID])
	ms.Equal("Renamed", payload[domain.EventPayloadName])
	ms.Equal([]string{
		"1 Subtract PromoDiscount",
		"2 Add ExtraPerils",
		"3 Add MarketValuePremium",
		"4 Add PremiumBase",
	}, payload[domain.EventPayloadComponents])

	var all PolicyComponents
	ms.NoError(all.FindByPolicy(ms.DB, policy.ID))
	ms.Len(all, 4, "old components were not replaced")

	// keeping its own name is fine
	ms.NoError(reloaded.UpdateFromInput(ms.DB, PolicyInputFixture("Renamed")))

	err := reloaded.UpdateFromInput(ms.DB, PolicyInputFixture(other.Name))
	ms.EqualAppError(api.AppError{Key: api.ErrorPolicyAlreadyExists, Category: api.CategoryConflict}, err)

	bad := PolicyInputFixture("Renamed")
	bad.Components = bad.Components[:2]
	err = reloaded.UpdateFromInput(ms.DB, bad)
	ms.EqualAppError(api.AppError{Key: api.ErrorPolicyInvalidComponents, Category: api.CategoryUser}, err)
}

func (ms *ModelSuite) TestPolicy_Destroy() {
	f := CreatePolicyFixtures(ms.DB, FixturesConfig{NumberOfPolicies: 2})
	policy := f.Policies[0]

	ms.NoError(policy.Destroy(ms.DB))

	var gone Policy
	err := gone.FindByID(ms.DB, policy.ID)
	ms.EqualAppError(api.AppError{Key: api.ErrorPolicyNotFound, Category: api.CategoryNotFound}, err)

	var components PolicyComponents
	ms.NoError(components.FindByPolicy(ms.DB, policy.ID))
	ms.Len(components, 0)

	var kept Policy
	ms.NoError(kept.FindByID(ms.DB, f.Policies[1].ID))
	ms.Len(kept.Components, 4)
}

func (ms *ModelSuite) TestPolicies_FindPage() {
	CreatePolicyFixtures(ms.DB, FixturesConfig{NumberOfPolicies: 3})
	_, err := CreatePolicy(ms.DB, PolicyInputFixture("HighClaimPolicy"))
	ms.NoError(err)

	var page Policies
	meta, err := page.FindPage(ms.DB, api.NewQueryParams(url.Values{"limit": {"3"}, "page": {"2"}}))
	ms.NoError(err)
	ms.Len(page, 1)
	ms.Equal(2, meta.Page)
	ms.Equal(3, meta.PerPage)
	ms.Equal(2, meta.TotalPages)
	ms.Equal(4, meta.Total)
	ms.Len(page[0].Components, 4, "components are not loaded")

	var found Policies
	meta, err = found.FindPage(ms.DB, api.NewQueryParams(url.Values{"search": {"highclaim"}}))
	ms.NoError(err)
	ms.Len(found, 1)
	ms.Equal("HighClaimPolicy", found[0].Name)
	ms.Equal(1, meta.Total)
}

func (ms *ModelSuite) TestPolicy_LoadComponents() {
	policy := CreatePolicyFixtures(ms.DB, FixturesConfig{NumberOfPolicies: 1}).Policies[0]

	p := Policy{ID: policy.ID}
	ms.NoError(p.LoadComponents(ms.DB, false))
	ms.Len(p.Components, 4)
	for i := range p.Components {
		ms.Equal(i+1, p.Components[i].Sequence)
	}

	var c PolicyComponent
	ms.NoError(c.FindBySequence(ms.DB, policy.ID, 3))
	ms.Equal(premium.ComponentMarketValuePremium, c.Name)

	err := c.FindBySequence(ms.DB, policy.ID, 9)
	ms.EqualAppError(api.AppError{Key: api.ErrorPolicyComponentNotFound, Category: api.CategoryNotFound}, err)
}

func (ms *ModelSuite) TestPolicy_Quote() {
	policy := CreatePolicyFixtures(ms.DB, FixturesConfig{NumberOfPolicies: 1}).Policies[0]

	var loaded Policy
	ms.NoError(loaded.FindByID(ms.DB, policy.ID))

	q := loaded.Quote(decimal.NewFromInt(1000))
	ms.Equal(policy.ID, q.PolicyID)
	ms.Equal(policy.Name, q.PolicyName)
	ms.Equal("340.00", q.Premium.StringFixed(2))

	q = loaded.Quote(decimal.Zero)
	ms.Equal("40.00", q.Premium.StringFixed(2))
}

func (ms *ModelSuite) TestConvertPolicy() {
	p := Policy{ID: 7, Name: "Standard", Components: validComponents()}
	got := ConvertPolicy(p)
	ms.Equal(7, got.ID)
	ms.Equal("Standard", got.Name)
	ms.Len(got.Components, 4)
	ms.Equal("MarketValuePremium", got.Components[2].Name)
	ms.Equal("Subtract", got.Components[3].Operation)
	ms.Equal(3, got.Components[2].Sequence)
}
