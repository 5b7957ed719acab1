package services

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"
)

// ExpenseService manages the house expense book.
type ExpenseService struct {
	DB *gorm.DB
}

func NewExpenseService(db *gorm.DB) *ExpenseService {
	return &ExpenseService{DB: db}
}

type ExpenseInput struct {
	Category string  `json:"category"`
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date"`
	Time     string  `json:"time"`
	Note     string  `json:"note"`
}

func (s *ExpenseService) Create(in ExpenseInput) (models.Expense, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Expense{}, errors.New("title_required")
	}
	if in.Amount <= 0 {
		return models.Expense{}, ErrAmountNotPositive
	}

	amount, _ := decimal.NewFromFloat(in.Amount).Round(2).Float64()
	exp := models.Expense{
		Category: in.Category,
		Title:    in.Title,
		Amount:   amount,
		Date:     utils.DateOnly(in.Date),
		Time:     in.Time,
		Note:     in.Note,
	}
	if exp.Category == "" {
		exp.Category = models.ExpenseOthers
	}
	if exp.Date == "" {
		exp.Date = utils.Today()
	}
	if exp.Time == "" {
		exp.Time = utils.NowTime()
	}
	if err := s.DB.Create(&exp).Error; err != nil {
		return models.Expense{}, err
	}
	return exp, nil
}

func (s *ExpenseService) Delete(expenseID uint) error {
	res := s.DB.Delete(&models.Expense{}, expenseID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("expense_not_found")
	}
	return nil
}

// ExpenseFilter narrows the book: inclusive date range, exact category,
// case-insensitive substring on title+note. Zero values mean "no filter".
type ExpenseFilter struct {
	From     string
	To       string
	Category string
	Query    string
}

// ExpenseList is the filtered book with the toolbar's per-category totals.
type ExpenseList struct {
	Items      []models.Expense   `json:"items"`
	Count      int                `json:"count"`
	Total      float64            `json:"total"`
	ByCategory map[string]float64 `json:"byCategory"`
}

// Filtered returns matching expenses newest first plus their totals.
func (s *ExpenseService) Filtered(f ExpenseFilter) (ExpenseList, error) {
	q := s.DB.Model(&models.Expense{})
	if from := utils.DateOnly(f.From); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := utils.DateOnly(f.To); to != "" {
		q = q.Where("date <= ?", to)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	var items []models.Expense
	if err := q.Order("date DESC, time DESC, id DESC").Find(&items).Error; err != nil {
		return ExpenseList{}, err
	}

	if needle := strings.ToLower(strings.TrimSpace(f.Query)); needle != "" {
		kept := items[:0]
		for _, e := range items {
			hay := strings.ToLower(e.Title + " " + e.Note)
			if strings.Contains(hay, needle) {
				kept = append(kept, e)
			}
		}
		items = kept
	}

	total := decimal.Zero
	byCat := map[string]decimal.Decimal{}
	for _, e := range items {
		amt := decimal.NewFromFloat(e.Amount)
		total = total.Add(amt)
		byCat[e.Category] = byCat[e.Category].Add(amt)
	}

	out := ExpenseList{
		Items:      items,
		Count:      len(items),
		ByCategory: make(map[string]float64, len(byCat)),
	}
	out.Total, _ = total.Round(2).Float64()
	for cat, amt := range byCat {
		out.ByCategory[cat], _ = amt.Round(2).Float64()
	}
	return out, nil
}
