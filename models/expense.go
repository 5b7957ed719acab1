package models

import "time"

// Expense categories shown in the expense book.
const (
	ExpenseGuest  = "Guest Expense"
	ExpenseHouse  = "G House Expense"
	ExpenseBoss   = "Boss Expenses"
	ExpenseOthers = "Others"
)

// Expense is a house expense entry. Not tied to any guest; the expense book
// is its own collection alongside orders and payments.
type Expense struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	Category string  `gorm:"size:40" json:"category"`
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Date     string  `gorm:"size:10;index" json:"date"`
	Time     string  `gorm:"size:5" json:"time"`
	Note     string  `gorm:"type:text" json:"note"`
}
