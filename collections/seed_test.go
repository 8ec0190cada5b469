package collections_test

import (
	"testing"

	"quotationdesk/collections"
	"quotationdesk/testhelpers"
)

func TestSeed_CreatesSalesUsers(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	usersCol, _ := app.FindCollectionByNameOrId("sales_users")
	users, err := app.FindAllRecords(usersCol)
	if err != nil {
		t.Fatalf("query sales_users error: %v", err)
	}
	if len(users) != 4 {
		t.Fatalf("expected 4 sales users, got %d", len(users))
	}

	roles := map[string]int{}
	for _, u := range users {
		roles[u.GetString("role")]++
		if u.GetString("token") == "" {
			t.Errorf("user %q has no token", u.GetString("name"))
		}
	}
	if roles["sales"] != 2 || roles["manager"] != 1 || roles["admin"] != 1 {
		t.Errorf("unexpected role distribution: %v", roles)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}

	usersCol, _ := app.FindCollectionByNameOrId("sales_users")
	users, _ := app.FindAllRecords(usersCol)
	if len(users) != 4 {
		t.Errorf("expected 4 sales users after double seed, got %d", len(users))
	}
}

func TestSeed_SkipsWhenUsersExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestUser(t, app, "Existing", "sk-existing", "sales", 5000)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	usersCol, _ := app.FindCollectionByNameOrId("sales_users")
	users, _ := app.FindAllRecords(usersCol)
	if len(users) != 1 {
		t.Errorf("expected seed to skip pre-populated collection, got %d users", len(users))
	}
}
