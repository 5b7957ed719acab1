package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frontdesk-backend/services"
	"frontdesk-backend/utils"
)

// ExpenseController serves the house expense book.
type ExpenseController struct {
	Service *services.ExpenseService
}

func NewExpenseController(s *services.ExpenseService) *ExpenseController {
	return &ExpenseController{Service: s}
}

// ListExpenses returns the filtered book with per-category totals.
// Filters: ?from=YYYY-MM-DD&to=YYYY-MM-DD&category=...&q=...
func (xc *ExpenseController) ListExpenses(c *gin.Context) {
	list, err := xc.Service.Filtered(services.ExpenseFilter{
		From:     c.Query("from"),
		To:       c.Query("to"),
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

func (xc *ExpenseController) CreateExpense(c *gin.Context) {
	var in services.ExpenseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	exp, err := xc.Service.Create(in)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	notifyChange()
	utils.JSONSuccess(c, http.StatusCreated, exp)
}

func (xc *ExpenseController) DeleteExpense(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := xc.Service.Delete(id); err != nil {
		utils.JSONError(c, http.StatusNotFound, err.Error())
		return
	}
	notifyChange()
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
