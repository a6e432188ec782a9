package actions

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/models"
)

// swagger:operation GET /policies Policies PoliciesList
//
// PoliciesList
//
// list policies, one page at a time, with their components
//
// ---
// parameters:
//   - name: page
//     in: query
//     required: false
//     description: page number, starting at 1
//     type: integer
//   - name: limit
//     in: query
//     required: false
//     description: number of policies per page
//     type: integer
//   - name: search
//     in: query
//     required: false
//     description: text to match against policy names
//     type: string
// responses:
//   '200':
//     description: a page of policies
//     schema:
//       "$ref": "#/definitions/PolicyList"
func policiesList(c buffalo.Context) error {
	tx := models.Tx(c)

	var policies models.Policies
	meta, err := policies.FindPage(tx, api.NewQueryParams(c.Params()))
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, api.PolicyList{Meta: meta, Data: models.ConvertPolicies(policies)})
}

// swagger:operation GET /policies/{id} Policies PoliciesView
//
// PoliciesView
//
// gets the data for a specific policy
//
// ---
// parameters:
//   - name: id
//     in: path
//     required: true
//     description: policy ID
// responses:
//   '200':
//     description: a policy
//     schema:
//       "$ref": "#/definitions/Policy"
func policiesView(c buffalo.Context) error {
	policy, err := getReferencedPolicy(c)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertPolicy(policy))
}

// swagger:operation POST /policies Policies PoliciesCreate
//
// PoliciesCreate
//
// create a new policy with its four components. Component order sets the evaluation order.
//
// ---
// parameters:
//   - name: policy input
//     in: body
//     required: true
//     schema:
//       "$ref": "#/definitions/PolicyInput"
// responses:
//   '201':
//     description: the new policy
//     schema:
//       "$ref": "#/definitions/Policy"
func policiesCreate(c buffalo.Context) error {
	tx := models.Tx(c)

	var input api.PolicyInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	policy, err := models.CreatePolicy(tx, input)
	if err != nil {
		return reportError(c, err)
	}

	return c.Render(http.StatusCreated, r.JSON(models.ConvertPolicy(policy)))
}

// swagger:operation PUT /policies/{id} Policies PoliciesUpdate
//
// PoliciesUpdate
//
// replace a policy's name and components
//
// ---
// parameters:
//   - name: id
//     in: path
//     required: true
//     description: policy ID
//   - name: policy input
//     in: body
//     required: true
//     schema:
//       "$ref": "#/definitions/PolicyInput"
// responses:
//   '200':
//     description: the updated policy
//     schema:
//       "$ref": "#/definitions/Policy"
func policiesUpdate(c buffalo.Context) error {
	tx := models.Tx(c)

	policy, err := getReferencedPolicy(c)
	if err != nil {
		return reportError(c, err)
	}

	var input api.PolicyInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	if err := policy.UpdateFromInput(tx, input); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertPolicy(policy))
}

// swagger:operation DELETE /policies/{id} Policies PoliciesDelete
//
// PoliciesDelete
//
// delete a policy and its components
//
// ---
// parameters:
//   - name: id
//     in: path
//     required: true
//     description: policy ID
// responses:
//   '204':
//     description: OK but no content in response
func policiesDelete(c buffalo.Context) error {
	tx := models.Tx(c)

	policy, err := getReferencedPolicy(c)
	if err != nil {
		return reportError(c, err)
	}

	if err := policy.Destroy(tx); err != nil {
		return reportError(c, err)
	}

	return c.Render(http.StatusNoContent, nil)
}

// swagger:operation GET /policies/{id}/components Policies PolicyComponentsList
//
// PolicyComponentsList
//
// list a policy's components in evaluation order
//
// ---
// parameters:
//   - name: id
//     in: path
//     required: true
//     description: policy ID
// responses:
//   '200':
//     description: the policy's components
//     schema:
//       "$ref": "#/definitions/PolicyComponents"
func policyComponentsList(c buffalo.Context) error {
	policy, err := getReferencedPolicy(c)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertPolicyComponents(policy.Components))
}

// swagger:operation GET /policies/{id}/components/{sequence} Policies PolicyComponentsView
//
// PolicyComponentsView
//
// gets the component at one position of a policy's evaluation order
//
// ---
// parameters:
//   - name: id
//     in: path
//     required: true
//     description: policy ID
//   - name: sequence
//     in: path
//     required: true
//     description: component sequence, starting at 1
// responses:
//   '200':
//     description: a policy component
//     schema:
//       "$ref": "#/definitions/PolicyComponent"
func policyComponentsView(c buffalo.Context) error {
	tx := models.Tx(c)

	policy, err := getReferencedPolicy(c)
	if err != nil {
		return reportError(c, err)
	}

	sequence, err := intParam(c, "sequence")
	if err != nil {
		return reportError(c, err)
	}

	var component models.PolicyComponent
	if err := component.FindBySequence(tx, policy.ID, sequence); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, models.ConvertPolicyComponent(component))
}

// getReferencedPolicy loads the policy named by the policy_id route parameter
func getReferencedPolicy(c buffalo.Context) (models.Policy, error) {
	id, err := intParam(c, "policy_id")
	if err != nil {
		return models.Policy{}, err
	}

	var policy models.Policy
	if err := policy.FindByID(models.Tx(c), id); err != nil {
		return models.Policy{}, err
	}
	return policy, nil
}

func intParam(c buffalo.Context, name string) (int, error) {
	value := c.Param(name)
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, api.NewAppError(
			fmt.Errorf("%s must be an integer, got %q", name, value),
			api.ErrorMustBeAValidInteger,
			api.CategoryUser,
		)
	}
	return i, nil
}
