package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/Navyasrilakshmikavya/Personal-Expense-Tracker/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InMem is an in-memory UserRepository used by the test suite. It mirrors the
// Mongo implementation's semantics, including the silent no-op on pulling an
// absent expense.
type InMem struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.User
}

func NewInMem() *InMem {
	return &InMem{users: make(map[primitive.ObjectID]*models.User)}
}

func (s *InMem) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Expenses == nil {
		user.Expenses = []models.Expense{}
	}
	cp := *user
	cp.Expenses = append([]models.Expense{}, user.Expenses...)
	s.users[user.ID] = &cp
	return nil
}

func (s *InMem) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return copyUser(u), nil
}

func (s *InMem) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (s *InMem) PushExpense(_ context.Context, userID primitive.ObjectID, expense *models.Expense) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	expense.ID = primitive.NewObjectID()
	u.Expenses = append(u.Expenses, *expense)
	return append([]models.Expense{}, u.Expenses...), nil
}

func (s *InMem) PullExpense(_ context.Context, userID, expenseID primitive.ObjectID) ([]models.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	kept := u.Expenses[:0]
	for _, e := range u.Expenses {
		if e.ID != expenseID {
			kept = append(kept, e)
		}
	}
	u.Expenses = kept
	return append([]models.Expense{}, u.Expenses...), nil
}

func (s *InMem) ListExpenses(_ context.Context, userID primitive.ObjectID, filter ExpenseFilter) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	out := []models.Expense{}
	for _, e := range u.Expenses {
		if filter.Start != nil && e.CreatedAt.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && e.CreatedAt.After(*filter.End) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *InMem) SetIncome(_ context.Context, userID primitive.ObjectID, income float64) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return 0, ErrNotFound
	}
	u.Income = income
	return u.Income, nil
}

func (s *InMem) ListOthers(_ context.Context, excludeID primitive.ObjectID) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.User{}
	for id, u := range s.users {
		if id == excludeID {
			continue
		}
		cp := copyUser(u)
		cp.Password = ""
		out = append(out, *cp)
	}
	return out, nil
}

func (s *InMem) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *InMem) FlattenExpenses(_ context.Context) ([]models.FlatExpense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := []models.FlatExpense{}
	for _, u := range s.users {
		for _, e := range u.Expenses {
			rows = append(rows, models.FlatExpense{
				UserID:    u.ID,
				UserName:  u.Name,
				UserEmail: u.Email,
				ExpenseID: e.ID,
				Text:      e.Text,
				Amount:    e.Amount,
				CreatedAt: e.CreatedAt,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	return rows, nil
}

func copyUser(u *models.User) *models.User {
	cp := *u
	cp.Expenses = append([]models.Expense{}, u.Expenses...)
	return &cp
}
