package grifts

import (
	"errors"
	"fmt"

	"github.com/gobuffalo/envy"
	"github.com/gobuffalo/grift/grift"
	"github.com/gobuffalo/pop/v6"
	"github.com/shopspring/decimal"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/models"
)

var _ = grift.Namespace("db", func() {
	grift.Desc("seed", "Seeds a database")
	_ = grift.Add("seed", func(c *grift.Context) error {
		return models.DB.Transaction(func(tx *pop.Connection) error {
			if err := seedPolicies(tx); err != nil {
				return err
			}
			return seedAdmin(tx)
		})
	})
})

func seedComponents(base, perils, marketPct, promo int64) []api.PolicyComponentInput {
	return []api.PolicyComponentInput{
		{Name: "PremiumBase", Operation: "Add", FlatValue: decimal.NewFromInt(base)},
		{Name: "ExtraPerils", Operation: "Add", FlatValue: decimal.NewFromInt(perils)},
		{Name: "MarketValuePremium", Operation: "Add", PercentageValue: decimal.NewFromInt(marketPct)},
		{Name: "PromoDiscount", Operation: "Subtract", FlatValue: decimal.NewFromInt(promo)},
	}
}

var seedPolicyInputs = []api.PolicyInput{
	{Name: "LowClaimPolicy", Components: seedComponents(100, 300, 1, 20)},
	{Name: "MediumClaimPolicy", Components: seedComponents(200, 400, 2, 10)},
	{Name: "HighClaimPolicy", Components: seedComponents(300, 500, 3, 0)},
}

func seedPolicies(tx *pop.Connection) error {
	for _, input := range seedPolicyInputs {
		var existing models.Policy
		err := existing.FindByName(tx, input.Name)
		if err == nil {
			fmt.Printf("INFO: policy %s already exists\n", input.Name)
			continue
		}
		var appErr *api.AppError
		if !errors.As(err, &appErr) || appErr.Category != api.CategoryNotFound {
			return err
		}

		if _, err := models.CreatePolicy(tx, input); err != nil {
			return fmt.Errorf("failed to seed policy %s, %w", input.Name, err)
		}
		fmt.Printf("INFO: created policy %s\n", input.Name)
	}
	return nil
}

func seedAdmin(tx *pop.Connection) error {
	userName := envy.Get("SEED_ADMIN_USER_NAME", "admin")

	var existing models.User
	if err := existing.FindByUserName(tx, userName); err == nil {
		fmt.Printf("INFO: user %s already exists\n", userName)
		return nil
	}

	admin := models.User{
		UserName: userName,
		Email:    envy.Get("SEED_ADMIN_EMAIL", "admin@example.com"),
		AppRole:  api.AppRoleAdministrator,
	}
	if err := admin.SetPassword(envy.Get("SEED_ADMIN_PASSWORD", "Adm1n!pass")); err != nil {
		return err
	}
	if err := admin.Create(tx); err != nil {
		return fmt.Errorf("failed to seed admin user, %w", err)
	}
	fmt.Printf("INFO: created administrator %s\n", userName)
	return nil
}
