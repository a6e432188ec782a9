package actions

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/models"
)

func (as *ActionSuite) Test_PoliciesList() {
	models.CreatePolicyFixtures(as.DB, models.FixturesConfig{NumberOfPolicies: 3})

	res := as.JSON("/policies?limit=2&page=1").Get()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", res.Body.String())

	var list api.PolicyList
	as.NoError(json.Unmarshal(res.Body.Bytes(), &list))
	as.Len(list.Data, 2)
	as.Equal(1, list.Meta.Page)
	as.Equal(2, list.Meta.PerPage)
	as.Equal(2, list.Meta.TotalPages)
	as.Equal(3, list.Meta.Total)
	as.Len(list.Data[0].Components, 4)
	as.Equal(1, list.Data[0].Components[0].Sequence)

	res = as.JSON("/policies?limit=2&page=2").Get()
	as.Equal(http.StatusOK, res.Code)
	as.NoError(json.Unmarshal(res.Body.Bytes(), &list))
	as.Len(list.Data, 1)
}

func (as *ActionSuite) Test_PoliciesView() {
	policy := models.CreatePolicyFixtures(as.DB, models.FixturesConfig{NumberOfPolicies: 1}).Policies[0]

	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantKey    api.ErrorKey
		wantInBody []string
	}{
		{
			name:       "found",
			id:         fmt.Sprint(policy.ID),
			wantStatus: http.StatusOK,
			wantInBody: []string{
				fmt.Sprintf(`"id":%d`, policy.ID),
				`"name":"` + policy.Name,
				`"name":"MarketValuePremium"`,
				`"percentage_value":30`,
			},
		},
		{
			name:       "not found",
			id:         fmt.Sprint(policy.ID + 1000),
			wantStatus: http.StatusNotFound,
			wantKey:    api.ErrorPolicyNotFound,
		},
		{
			name:       "not a number",
			id:         "abc",
			wantStatus: http.StatusBadRequest,
			wantKey:    api.ErrorMustBeAValidInteger,
		},
	}
	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.JSON("/policies/%s", tt.id).Get()

			if tt.wantKey != "" {
				as.assertAppError(tt.wantStatus, tt.wantKey, res.Code, res.Body.Bytes())
				return
			}
			as.Equal(tt.wantStatus, res.Code, "incorrect status code returned, body: %s", res.Body.String())
			as.verifyResponseData(tt.wantInBody, res.Body.String(), "")
		})
	}
}

func (as *ActionSuite) Test_PolicyComponents() {
	policy := models.CreatePolicyFixtures(as.DB, models.FixturesConfig{NumberOfPolicies: 1}).Policies[0]

	res := as.JSON("/policies/%d/components", policy.ID).Get()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", res.Body.String())

	var components api.PolicyComponents
	as.NoError(json.Unmarshal(res.Body.Bytes(), &components))
	as.Len(components, 4)
	for i, c := range components {
		as.Equal(i+1, c.Sequence)
	}
	as.Equal("PromoDiscount", components[3].Name)

	res = as.JSON("/policies/%d/components/2", policy.ID).Get()
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", res.Body.String())

	var component api.PolicyComponent
	as.NoError(json.Unmarshal(res.Body.Bytes(), &component))
	as.Equal("ExtraPerils", component.Name)
	as.True(decimal.NewFromInt(20).Equal(component.FlatValue))

	res = as.JSON("/policies/%d/components/5", policy.ID).Get()
	as.assertAppError(http.StatusNotFound, api.ErrorPolicyComponentNotFound, res.Code, res.Body.Bytes())
}

func (as *ActionSuite) Test_PoliciesCreate() {
	admin := models.CreateUserFixtures(as.DB, 1, api.AppRoleAdministrator).Users[0]
	subscriber := models.CreateUserFixtures(as.DB, 1, api.AppRoleSubscriber).Users[0]
	existing := models.CreatePolicyFixtures(as.DB, models.FixturesConfig{NumberOfPolicies: 1}).Policies[0]

	short := models.PolicyInputFixture("Short")
	short.Components = short.Components[1:]

	tests := []struct {
		name       string
		actor      *models.User
		input      api.PolicyInput
		wantStatus int
		wantKey    api.ErrorKey
	}{
		{
			name:       "anonymous",
			input:      models.PolicyInputFixture("Anon"),
			wantStatus: http.StatusUnauthorized,
			wantKey:    api.ErrorNotAuthorized,
		},
		{
			name:       "subscriber",
			actor:      &subscriber,
			input:      models.PolicyInputFixture("Sub"),
			wantStatus: http.StatusForbidden,
			wantKey:    api.ErrorNotAuthorized,
		},
		{
			name:       "duplicate name",
			actor:      &admin,
			input:      models.PolicyInputFixture(existing.Name),
			wantStatus: http.StatusConflict,
			wantKey:    api.ErrorPolicyAlreadyExists,
		},
		{
			name:       "missing component",
			actor:      &admin,
			input:      short,
			wantStatus: http.StatusBadRequest,
			wantKey:    api.ErrorPolicyInvalidComponents,
		},
		{
			name:       "good",
			actor:      &admin,
			input:      models.PolicyInputFixture("LowClaimPolicy"),
			wantStatus: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			req := as.JSON("/policies")
			if tt.actor != nil {
				req = as.authJSON(*tt.actor, "/policies")
			}
			res := req.Post(tt.input)

			if tt.wantKey != "" {
				as.assertAppError(tt.wantStatus, tt.wantKey, res.Code, res.Body.Bytes())
				return
			}
			as.Equal(tt.wantStatus, res.Code, "incorrect status code returned, body: %s", res.Body.String())

			var got api.Policy
			as.NoError(json.Unmarshal(res.Body.Bytes(), &got))
			as.Equal(tt.input.Name, got.Name)
			as.Len(got.Components, 4)

			var dbPolicy models.Policy
			as.NoError(dbPolicy.FindByID(as.DB, got.ID))
			as.Equal(tt.input.Name, dbPolicy.Name)
		})
	}
}

func (as *ActionSuite) Test_PoliciesUpdate() {
	admin := models.CreateUserFixtures(as.DB, 1, api.AppRoleAdministrator).Users[0]
	f := models.CreatePolicyFixtures(as.DB, models.FixturesConfig{NumberOfPolicies: 2})
	policy, other := f.Policies[0], f.Policies[1]

	input := models.PolicyInputFixture("MediumClaimPolicy")
	input.Components[0], input.Components[1] = input.Components[1], input.Components[0]

	res := as.authJSON(admin, "/policies/%d", policy.ID).Put(input)
	as.Equal(http.StatusOK, res.Code, "incorrect status code returned, body: %s", res.Body.String())

	var got api.Policy
	as.NoError(json.Unmarshal(res.Body.Bytes(), &got))
	as.Equal("MediumClaimPolicy", got.Name)
	as.Equal("ExtraPerils", got.Components[0].Name)
	as.Equal(1, got.Components[0].Sequence)
	as.Equal("PremiumBase", got.Components[1].Name)
	as.Equal(2, got.Components[1].Sequence)

	res = as.authJSON(admin, "/policies/%d", policy.ID).Put(models.PolicyInputFixture(other.Name))
	as.assertAppError(http.StatusConflict, api.ErrorPolicyAlreadyExists, res.Code, res.Body.Bytes())

	res = as.authJSON(admin, "/policies/%d", policy.ID+1000).Put(input)
	as.assertAppError(http.StatusNotFound, api.ErrorPolicyNotFound, res.Code, res.Body.Bytes())

	var dbPolicy models.Policy
	as.NoError(dbPolicy.FindByID(as.DB, policy.ID))
	as.Equal("MediumClaimPolicy", dbPolicy.Name, "a failed update should not change the policy")
}

func (as *ActionSuite) Test_PoliciesDelete() {
	admin := models.CreateUserFixtures(as.DB, 1, api.AppRoleAdministrator).Users[0]
	subscriber := models.CreateUserFixtures(as.DB, 1, api.AppRoleSubscriber).Users[0]
	policy := models.CreatePolicyFixtures(as.DB, models.FixturesConfig{NumberOfPolicies: 1}).Policies[0]

	res := as.authJSON(subscriber, "/policies/%d", policy.ID).Delete()
	as.assertAppError(http.StatusForbidden, api.ErrorNotAuthorized, res.Code, res.Body.Bytes())

	res = as.authJSON(admin, "/policies/%d", policy.ID).Delete()
	as.Equal(http.StatusNoContent, res.Code, "incorrect status code returned, body: %s", res.Body.String())

	res = as.JSON("/policies/%d", policy.ID).Get()
	as.assertAppError(http.StatusNotFound, api.ErrorPolicyNotFound, res.Code, res.Body.Bytes())

	res = as.authJSON(admin, "/policies/%d", policy.ID).Delete()
	as.assertAppError(http.StatusNotFound, api.ErrorPolicyNotFound, res.Code, res.Body.Bytes())
}
