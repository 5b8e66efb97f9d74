package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoRepo connects to the instance named by MONGO_TEST_URI and returns a
// repository on a throwaway database. Skipped when the variable is unset, so
// the unit suite stays runnable without infrastructure.
func mongoRepo(t *testing.T) *Mongo {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set, skipping mongo integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cli, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, cli.Ping(ctx, nil))

	db := cli.Database(fmt.Sprintf("expense_tracker_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = cli.Disconnect(ctx)
	})

	return NewMongo(db)
}

func TestMongo_ExpenseLifecycle(t *testing.T) {
	repo := mongoRepo(t)
	ctx := context.Background()

	u := &models.User{Name: "Ada", Email: "ada@example.com", Password: "hash", Role: models.RoleUser}
	require.NoError(t, repo.Create(ctx, u))

	expenses, err := repo.PushExpense(ctx, u.ID, &models.Expense{Text: "Coffee", Amount: 150, CreatedAt: date("2024-01-05")})
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.False(t, expenses[0].ID.IsZero())

	expenses, err = repo.PushExpense(ctx, u.ID, &models.Expense{Text: "Rent", Amount: 900, CreatedAt: date("2024-02-01")})
	require.NoError(t, err)
	require.Len(t, expenses, 2)

	start, end := date("2024-01-01"), date("2024-01-31")
	got, err := repo.ListExpenses(ctx, u.ID, ExpenseFilter{Start: &start, End: &end})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Coffee", got[0].Text)

	after, err := repo.PullExpense(ctx, u.ID, got[0].ID)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "Rent", after[0].Text)
}

func TestMongo_FlattenAndDelete(t *testing.T) {
	repo := mongoRepo(t)
	ctx := context.Background()

	ada := &models.User{Name: "Ada", Email: "ada@example.com", Password: "hash", Role: models.RoleUser}
	bob := &models.User{Name: "Bob", Email: "bob@example.com", Password: "hash", Role: models.RoleUser}
	require.NoError(t, repo.Create(ctx, ada))
	require.NoError(t, repo.Create(ctx, bob))

	_, err := repo.PushExpense(ctx, ada.ID, &models.Expense{Text: "Coffee", Amount: 150, CreatedAt: date("2024-01-05")})
	require.NoError(t, err)
	_, err = repo.PushExpense(ctx, bob.ID, &models.Expense{Text: "Rent", Amount: 900, CreatedAt: date("2024-03-01")})
	require.NoError(t, err)

	rows, err := repo.FlattenExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Rent", rows[0].Text)
	assert.Equal(t, "Bob", rows[0].UserName)

	require.NoError(t, repo.Delete(ctx, bob.ID))

	rows, err = repo.FlattenExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Coffee", rows[0].Text)
}

func TestMongo_SetIncomeAndListOthers(t *testing.T) {
	repo := mongoRepo(t)
	ctx := context.Background()

	admin := &models.User{Name: "Root", Email: "root@example.com", Password: "hash", Role: models.RoleAdmin}
	ada := &models.User{Name: "Ada", Email: "ada@example.com", Password: "hash", Role: models.RoleUser}
	require.NoError(t, repo.Create(ctx, admin))
	require.NoError(t, repo.Create(ctx, ada))

	saved, err := repo.SetIncome(ctx, ada.ID, 4200)
	require.NoError(t, err)
	assert.Equal(t, 4200.0, saved)

	users, err := repo.ListOthers(ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, ada.ID, users[0].ID)
	assert.Empty(t, users[0].Password)
}
