package actions

import (
	"errors"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/models"
)

// swagger:operation POST /request-quote Quotes QuoteRequest
//
// QuoteRequest
//
// price a policy for a market value. The premium is rounded half to even at two decimal places.
//
// ---
// parameters:
//   - name: quote request
//     in: body
//     required: true
//     schema:
//       "$ref": "#/definitions/QuoteRequest"
// responses:
//   '200':
//     description: the computed quote
//     schema:
//       "$ref": "#/definitions/Quote"
func quoteRequest(c buffalo.Context) error {
	tx := models.Tx(c)

	var req api.QuoteRequest
	if err := StrictBind(c, &req); err != nil {
		return reportError(c, err)
	}

	if req.MarketValue.IsNegative() {
		err := errors.New("market value must not be negative")
		return reportError(c, api.NewAppError(err, api.ErrorQuoteInvalidMarketValue, api.CategoryUser))
	}

	var policy models.Policy
	if err := policy.FindByID(tx, req.PolicyID); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, policy.Quote(req.MarketValue))
}
