package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"
)

func TestExpenseCreateValidation(t *testing.T) {
	db := testDB(t)
	svc := NewExpenseService(db)

	_, err := svc.Create(ExpenseInput{Title: "", Amount: 100})
	assert.Error(t, err)

	_, err = svc.Create(ExpenseInput{Title: "diesel", Amount: 0})
	assert.ErrorIs(t, err, ErrAmountNotPositive)

	_, err = svc.Create(ExpenseInput{Title: "diesel", Amount: -50})
	assert.ErrorIs(t, err, ErrAmountNotPositive)
}

func TestExpenseCreateDefaults(t *testing.T) {
	db := testDB(t)
	svc := NewExpenseService(db)

	exp, err := svc.Create(ExpenseInput{Title: "generator diesel", Amount: 1500.555})
	require.NoError(t, err)

	assert.Equal(t, models.ExpenseOthers, exp.Category)
	assert.Equal(t, utils.Today(), exp.Date)
	assert.NotEmpty(t, exp.Time)
	assert.Equal(t, 1500.56, exp.Amount) // rounded at entry
}

func TestExpenseFilteredTotals(t *testing.T) {
	db := testDB(t)
	svc := NewExpenseService(db)

	mk := func(cat, title, date string, amount float64) {
		_, err := svc.Create(ExpenseInput{Category: cat, Title: title, Amount: amount, Date: date})
		require.NoError(t, err)
	}
	mk(models.ExpenseGuest, "guest laundry", "2025-03-10", 500)
	mk(models.ExpenseHouse, "kitchen gas", "2025-03-11", 2000)
	mk(models.ExpenseBoss, "fuel", "2025-03-12", 3000)
	mk(models.ExpenseHouse, "water tanker", "2025-03-20", 1200)

	all, err := svc.Filtered(ExpenseFilter{})
	require.NoError(t, err)
	assert.Equal(t, 4, all.Count)
	assert.Equal(t, 6700.0, all.Total)
	assert.Equal(t, 3200.0, all.ByCategory[models.ExpenseHouse])

	// inclusive date window
	window, err := svc.Filtered(ExpenseFilter{From: "2025-03-10", To: "2025-03-12"})
	require.NoError(t, err)
	assert.Equal(t, 3, window.Count)
	assert.Equal(t, 5500.0, window.Total)

	// category filter
	house, err := svc.Filtered(ExpenseFilter{Category: models.ExpenseHouse})
	require.NoError(t, err)
	assert.Equal(t, 2, house.Count)
	assert.Equal(t, 3200.0, house.Total)

	// case-insensitive search over title+note
	found, err := svc.Filtered(ExpenseFilter{Query: "TANKER"})
	require.NoError(t, err)
	require.Equal(t, 1, found.Count)
	assert.Equal(t, "water tanker", found.Items[0].Title)
}

func TestExpenseFilteredNewestFirst(t *testing.T) {
	db := testDB(t)
	svc := NewExpenseService(db)

	_, err := svc.Create(ExpenseInput{Title: "older", Amount: 100, Date: "2025-03-01"})
	require.NoError(t, err)
	_, err = svc.Create(ExpenseInput{Title: "newer", Amount: 100, Date: "2025-03-05"})
	require.NoError(t, err)

	list, err := svc.Filtered(ExpenseFilter{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "newer", list.Items[0].Title)
}

func TestExpenseDelete(t *testing.T) {
	db := testDB(t)
	svc := NewExpenseService(db)

	exp, err := svc.Create(ExpenseInput{Title: "diesel", Amount: 800})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(exp.ID))
	assert.Error(t, svc.Delete(exp.ID))
}
