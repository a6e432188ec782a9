package models

import (
	"fmt"
	"math/rand"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/pop/v6"
	"github.com/shopspring/decimal"

	"github.com/silinternational/abs-insurance-api/api"
	"github.com/silinternational/abs-insurance-api/domain"
)

// FixturePassword is the password given to every user fixture
const FixturePassword = "Passw0rd!"

type FixturesConfig struct {
	NumberOfPolicies int
}

// Fixtures hold slices of model objects created for test fixtures
type Fixtures struct {
	Policies         Policies
	PolicyComponents PolicyComponents
	Users            Users
}

// TestBuffaloContext is a buffalo context user in tests
type TestBuffaloContext struct {
	buffalo.DefaultContext
	params map[any]any
}

// Value returns the value associated with the given key in the test context
func (b *TestBuffaloContext) Value(key any) any {
	return b.params[key]
}

// Set sets the value to be associated with the given key in the test context
func (b *TestBuffaloContext) Set(key string, val any) {
	b.params[key] = val
}

// CreateTestContext sets the domain.ContextKeyCurrentUser to the user param in the TestBuffaloContext
func CreateTestContext(user User) buffalo.Context {
	ctx := &TestBuffaloContext{
		params: map[any]any{},
	}
	ctx.Set(domain.ContextKeyCurrentUser, user)
	return ctx
}

// PolicyInputFixture returns a well-formed policy input:
// PremiumBase +50, ExtraPerils +20, MarketValuePremium +30%, PromoDiscount -30
func PolicyInputFixture(name string) api.PolicyInput {
	return api.PolicyInput{
		Name: name,
		Components: []api.PolicyComponentInput{
			{Name: "PremiumBase", Operation: "Add", FlatValue: decimal.NewFromInt(50)},
			{Name: "ExtraPerils", Operation: "Add", FlatValue: decimal.NewFromInt(20)},
			{Name: "MarketValuePremium", Operation: "Add", PercentageValue: decimal.NewFromInt(30)},
			{Name: "PromoDiscount", Operation: "Subtract", FlatValue: decimal.NewFromInt(30)},
		},
	}
}

// CreatePolicyFixtures generates any number of policies, each with the components of PolicyInputFixture
func CreatePolicyFixtures(tx *pop.Connection, config FixturesConfig) Fixtures {
	var components PolicyComponents

	policies := make(Policies, config.NumberOfPolicies)
	for i := range policies {
		p, err := CreatePolicy(tx, PolicyInputFixture(fmt.Sprintf("Policy%d_%s", i, randStr(6))))
		if err != nil {
			panic(fmt.Sprintf("error creating policy fixture, %s", err))
		}
		policies[i] = p
		components = append(components, p.Components...)
	}

	return Fixtures{
		Policies:         policies,
		PolicyComponents: components,
	}
}

// CreateUserFixtures generates any number of user records for testing. Every user's password is
// FixturePassword.
func CreateUserFixtures(tx *pop.Connection, n int, role api.UserAppRole) Fixtures {
	unique := randStr(6)

	users := make(Users, n)
	for i := range users {
		users[i].UserName = fmt.Sprintf("user%d_%s", i, unique)
		users[i].Email = fmt.Sprintf("user%d_%s@example.com", i, unique)
		users[i].AppRole = role
		if err := users[i].SetPassword(FixturePassword); err != nil {
			panic(fmt.Sprintf("error setting fixture password, %s", err))
		}
		MustCreate(tx, &users[i])
	}

	return Fixtures{
		Users: users,
	}
}

// MustCreate saves a record to the database with validation. Panics if any error occurs.
func MustCreate(tx *pop.Connection, f any) {
	// Use `create` instead of `tx.Create` to check validation rules
	err := create(tx, f)
	if err != nil {
		panic(fmt.Sprintf("error creating %T fixture, %s", f, err))
	}
}

func randStr(n int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = chars[rand.Int63()%int64(len(chars))]
	}
	return string(b)
}

func DestroyAll() {
	var components PolicyComponents
	destroyTable(&components)

	var policies Policies
	destroyTable(&policies)

	var users Users
	destroyTable(&users)
}

func destroyTable(i any) {
	if err := DB.All(i); err != nil {
		panic(err.Error())
	}
	if err := DB.Destroy(i); err != nil {
		panic(err.Error())
	}
}
