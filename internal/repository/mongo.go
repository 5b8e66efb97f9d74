package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// Mongo implements UserRepository on a MongoDB database. Users live in a
// single collection with expenses embedded as an array, so every mutation
// below is one atomic update on one document.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{db: db}
}

func (m *Mongo) users() *mongo.Collection {
	return m.db.Collection(usersCollection)
}

func (m *Mongo) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Expenses == nil {
		user.Expenses = []models.Expense{}
	}

	_, err := m.users().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("mongo couldn't InsertOne in Create: %w", err)
	}
	return nil
}

func (m *Mongo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return m.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (m *Mongo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (m *Mongo) findOne(ctx context.Context, filter bson.D) (*models.User, error) {
	var user models.User
	err := m.users().FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo couldn't FindOne: %w", err)
	}
	return &user, nil
}

// expensesOnly decodes the projection used by the array mutations.
type expensesOnly struct {
	Expenses []models.Expense `bson:"expenses"`
}

func (m *Mongo) PushExpense(ctx context.Context, userID primitive.ObjectID, expense *models.Expense) ([]models.Expense, error) {
	expense.ID = primitive.NewObjectID()

	res := m.users().FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: userID}},
		bson.D{{Key: "$push", Value: bson.D{{Key: "expenses", Value: expense}}}},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.D{{Key: "expenses", Value: 1}}))

	return decodeExpenses(res, "PushExpense")
}

func (m *Mongo) PullExpense(ctx context.Context, userID, expenseID primitive.ObjectID) ([]models.Expense, error) {
	res := m.users().FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: userID}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: "expenses", Value: bson.D{{Key: "_id", Value: expenseID}}}}}},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.D{{Key: "expenses", Value: 1}}))

	return decodeExpenses(res, "PullExpense")
}

func decodeExpenses(res *mongo.SingleResult, op string) ([]models.Expense, error) {
	var doc expensesOnly
	err := res.Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongo couldn't Decode in %s: %w", op, err)
	}
	if doc.Expenses == nil {
		doc.Expenses = []models.Expense{}
	}
	return doc.Expenses, nil
}

func (m *Mongo) ListExpenses(ctx context.Context, userID primitive.ObjectID, filter ExpenseFilter) ([]models.Expense, error) {
	// $filter over the embedded array; an empty $and is vacuously true, so
	// the unfiltered case falls out of the same pipeline.
	cond := bson.A{}
	if filter.Start != nil {
		cond = append(cond, bson.D{{Key: "$gte", Value: bson.A{"$$expense.createdAt", *filter.Start}}})
	}
	if filter.End != nil {
		cond = append(cond, bson.D{{Key: "$lte", Value: bson.A{"$$expense.createdAt", *filter.End}}})
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: userID}}}},
		{{Key: "$project", Value: bson.D{{Key: "expenses", Value: bson.D{{Key: "$filter", Value: bson.D{
			{Key: "input", Value: "$expenses"},
			{Key: "as", Value: "expense"},
			{Key: "cond", Value: bson.D{{Key: "$and", Value: cond}}},
		}}}}}}},
	}

	cursor, err := m.users().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo couldn't Aggregate in ListExpenses: %w", err)
	}

	var results []expensesOnly
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("mongo couldn't decode cursor in ListExpenses: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}
	if results[0].Expenses == nil {
		return []models.Expense{}, nil
	}
	return results[0].Expenses, nil
}

func (m *Mongo) SetIncome(ctx context.Context, userID primitive.ObjectID, income float64) (float64, error) {
	res := m.users().FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: userID}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "income", Value: income}}}},
		options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.D{{Key: "income", Value: 1}}))

	var doc struct {
		Income float64 `bson:"income"`
	}
	err := res.Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("mongo couldn't Decode in SetIncome: %w", err)
	}
	return doc.Income, nil
}

func (m *Mongo) ListOthers(ctx context.Context, excludeID primitive.ObjectID) ([]models.User, error) {
	cursor, err := m.users().Find(ctx,
		bson.D{{Key: "_id", Value: bson.D{{Key: "$ne", Value: excludeID}}}},
		options.Find().SetProjection(bson.D{{Key: "password", Value: 0}}))
	if err != nil {
		return nil, fmt.Errorf("mongo couldn't Find in ListOthers: %w", err)
	}

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("mongo couldn't decode cursor in ListOthers: %w", err)
	}
	return users, nil
}

func (m *Mongo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.users().DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return fmt.Errorf("mongo couldn't DeleteOne in Delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) FlattenExpenses(ctx context.Context) ([]models.FlatExpense, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$expenses"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "userId", Value: "$_id"},
			{Key: "userName", Value: "$name"},
			{Key: "userEmail", Value: "$email"},
			{Key: "expenseId", Value: "$expenses._id"},
			{Key: "text", Value: "$expenses.text"},
			{Key: "amount", Value: "$expenses.amount"},
			{Key: "createdAt", Value: "$expenses.createdAt"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}

	cursor, err := m.users().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo couldn't Aggregate in FlattenExpenses: %w", err)
	}

	rows := []models.FlatExpense{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("mongo couldn't decode cursor in FlattenExpenses: %w", err)
	}
	return rows, nil
}
