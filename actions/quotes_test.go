package actions

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/models"
)

func (as *ActionSuite) Test_quoteRequest() {
	policy := models.CreatePolicyFixtures(as.DB, models.FixturesConfig{NumberOfPolicies: 1}).Policies[0]

	tests := []struct {
		name        string
		body        any
		wantStatus  int
		wantKey     api.ErrorKey
		wantPremium string
	}{
		{
			name:        "market value 1000",
			body:        api.QuoteRequest{PolicyID: policy.ID, MarketValue: decimal.NewFromInt(1000)},
			wantStatus:  http.StatusOK,
			wantPremium: "340.00",
		},
		{
			name:        "zero market value",
			body:        api.QuoteRequest{PolicyID: policy.ID, MarketValue: decimal.Zero},
			wantStatus:  http.StatusOK,
			wantPremium: "40.00",
		},
		{
			name:        "fractional market value rounds half to even",
			body:        map[string]any{"policy_id": policy.ID, "market_value": "0.05"},
			wantStatus:  http.StatusOK,
			wantPremium: "40.02",
		},
		{
			name:       "negative market value",
			body:       api.QuoteRequest{PolicyID: policy.ID, MarketValue: decimal.NewFromInt(-1)},
			wantStatus: http.StatusBadRequest,
			wantKey:    api.ErrorQuoteInvalidMarketValue,
		},
		{
			name:       "unknown policy",
			body:       api.QuoteRequest{PolicyID: policy.ID + 1000, MarketValue: decimal.NewFromInt(1000)},
			wantStatus: http.StatusNotFound,
			wantKey:    api.ErrorPolicyNotFound,
		},
		{
			name:       "malformed body",
			body:       map[string]any{"policy_id": "one"},
			wantStatus: http.StatusBadRequest,
			wantKey:    api.ErrorInvalidRequestBody,
		},
	}
	for _, tt := range tests {
		as.T().Run(tt.name, func(t *testing.T) {
			res := as.JSON("/request-quote").Post(tt.body)

			if tt.wantKey != "" {
				as.assertAppError(tt.wantStatus, tt.wantKey, res.Code, res.Body.Bytes())
				return
			}
			as.Equal(tt.wantStatus, res.Code, "incorrect status code returned, body: %s", res.Body.String())

			var quote api.Quote
			as.NoError(json.Unmarshal(res.Body.Bytes(), &quote))
			as.Equal(policy.ID, quote.PolicyID)
			as.Equal(policy.Name, quote.PolicyName)
			as.Equal(tt.wantPremium, quote.Premium.StringFixed(2))
			as.Contains(res.Body.String(), `"premium":`+tt.wantPremium)
		})
	}
}
