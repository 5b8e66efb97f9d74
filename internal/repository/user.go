package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when the referenced user document does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned by Create for an already registered email.
	ErrDuplicateEmail = errors.New("user with this email already exists")
)

// ExpenseFilter bounds an expense listing by the transaction date.
// Both bounds are inclusive; a nil bound removes that side of the constraint.
type ExpenseFilter struct {
	Start *time.Time
	End   *time.Time
}

// UserRepository is the single point of access to the user record store.
// Every mutation maps to one atomic single-document update, so concurrent
// requests against the same user interleave at document granularity.
type UserRepository interface {
	// Create inserts a new user, assigning its ID.
	Create(ctx context.Context, user *models.User) error
	// GetByID returns the user, or (nil, nil) when absent.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// GetByEmail returns the user, or (nil, nil) when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// PushExpense appends an expense to the user's collection, assigning its
	// ID, and returns the full updated collection. ErrNotFound when the user
	// is absent.
	PushExpense(ctx context.Context, userID primitive.ObjectID, expense *models.Expense) ([]models.Expense, error)
	// PullExpense removes the matching expense and returns the updated
	// collection. Removing an absent expense is a no-op; only an absent user
	// is an error.
	PullExpense(ctx context.Context, userID, expenseID primitive.ObjectID) ([]models.Expense, error)
	// ListExpenses returns the user's expenses matching the filter.
	ListExpenses(ctx context.Context, userID primitive.ObjectID, filter ExpenseFilter) ([]models.Expense, error)

	// SetIncome overwrites the stored income and returns the new value.
	SetIncome(ctx context.Context, userID primitive.ObjectID, income float64) (float64, error)

	// ListOthers returns every user except the given one, passwords stripped.
	ListOthers(ctx context.Context, excludeID primitive.ObjectID) ([]models.User, error)
	// Delete removes the user and, implicitly, all its embedded expenses.
	Delete(ctx context.Context, id primitive.ObjectID) error
	// FlattenExpenses returns every expense of every user annotated with its
	// owner, sorted by transaction date descending.
	FlattenExpenses(ctx context.Context) ([]models.FlatExpense, error)
}
