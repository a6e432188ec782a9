package models

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gobuffalo/validate/v3"
	"github.com/shopspring/decimal"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/premium"
)

// Model validation tool
var mValidate *validator.Validate

var fieldValidators = map[string]func(validator.FieldLevel) bool{
	"appRole":            validateAppRole,
	"componentName":      validateComponentName,
	"componentOperation": validateComponentOperation,
	"nonNegativeDecimal": validateNonNegativeDecimal,
	"percentage":         validatePercentage,
}

var hundred = decimal.NewFromInt(100)

func validateModel(m any) *validate.Errors {
	vErrs := validate.NewErrors()

	if err := mValidate.Struct(m); err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			vErrs.Add(err.StructNamespace(), err.Error())
		}
	}
	return vErrs
}

// flattenPopErrors - pop validation errors are complex structures, this flattens them to a simple string
func flattenPopErrors(popErrs *validate.Errors) string {
	var msgs []string
	for key, val := range popErrs.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", key, strings.Join(val, ", ")))
	}
	sort.Strings(msgs)
	msg := strings.Join(msgs, " |")
	return msg
}

// decimalTypeFunc hands decimal fields to the validators as their canonical string form
func decimalTypeFunc(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func fieldDecimal(field validator.FieldLevel) (decimal.Decimal, bool) {
	s, ok := field.Field().Interface().(string)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	return d, err == nil
}

func validateAppRole(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(api.UserAppRole); ok {
		_, valid := validUserAppRoles[value]
		return valid
	}
	return false
}

func validateComponentName(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(premium.ComponentName); ok {
		return premium.IsValidComponentName(value)
	}
	return false
}

func validateComponentOperation(field validator.FieldLevel) bool {
	if value, ok := field.Field().Interface().(premium.Operation); ok {
		return premium.IsValidOperation(value)
	}
	return false
}

func validateNonNegativeDecimal(field validator.FieldLevel) bool {
	d, ok := fieldDecimal(field)
	return ok && !d.IsNegative()
}

func validatePercentage(field validator.FieldLevel) bool {
	d, ok := fieldDecimal(field)
	return ok && !d.IsNegative() && d.LessThanOrEqual(hundred)
}

// policyStructLevelValidation requires exactly one component of each kind
func policyStructLevelValidation(sl validator.StructLevel) {
	policy, ok := sl.Current().Interface().(Policy)
	if !ok {
		panic("policyStructLevelValidation registered to a type other than Policy")
	}

	if len(policy.Components) != len(premium.AllComponentNames) {
		sl.ReportError(policy.Components, "components", "Components", "component_count", "")
		return
	}

	seen := map[premium.ComponentName]bool{}
	for _, c := range policy.Components {
		if seen[c.Name] {
			sl.ReportError(policy.Components, "components", "Components", "duplicate_component", string(c.Name))
			return
		}
		seen[c.Name] = true
	}
}
