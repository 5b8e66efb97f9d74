package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user document may carry.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Expense is a single transaction embedded in its owner's document.
// CreatedAt is the effective date of the transaction as supplied by the
// caller, not the insertion timestamp.
type Expense struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Text      string             `bson:"text" json:"text"`
	Amount    float64            `bson:"amount" json:"amount"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// User represents application user. Expenses live inline in the user
// document, so deleting a user removes them with it.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password,omitempty" json:"-"`
	Role     string             `bson:"role" json:"role"`
	Income   float64            `bson:"income" json:"income"`
	Expenses []Expense          `bson:"expenses" json:"expenses"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// FlatExpense is one row of the cross-user expense listing: an expense
// annotated with its owner.
type FlatExpense struct {
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	UserName  string             `bson:"userName" json:"userName"`
	UserEmail string             `bson:"userEmail" json:"userEmail"`
	ExpenseID primitive.ObjectID `bson:"expenseId" json:"expenseId"`
	Text      string             `bson:"text" json:"text"`
	Amount    float64            `bson:"amount" json:"amount"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
