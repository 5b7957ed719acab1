package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"frontdesk-backend/services"
	"frontdesk-backend/utils"
)

// EntryController covers the three per-guest record books: orders (charges),
// payments (money received) and custom items (signed adjustments).
type EntryController struct {
	Orders   *services.OrderService
	Payments *services.PaymentService
	Extras   *services.CustomItemService
}

func NewEntryController(
	orders *services.OrderService,
	payments *services.PaymentService,
	extras *services.CustomItemService,
) *EntryController {
	return &EntryController{Orders: orders, Payments: payments, Extras: extras}
}

func entryErrStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrGuestNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAmountNotPositive):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrOverpayment):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// guestIDQuery parses the required ?guestId= filter on list endpoints.
func guestIDQuery(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Query("guestId"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "guestId query parameter required")
		return 0, false
	}
	return uint(id), true
}

func (ec *EntryController) ListOrders(c *gin.Context) {
	id, ok := guestIDQuery(c)
	if !ok {
		return
	}
	orders, err := ec.Orders.ForGuest(id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, orders)
}

func (ec *EntryController) ListPayments(c *gin.Context) {
	id, ok := guestIDQuery(c)
	if !ok {
		return
	}
	pays, err := ec.Payments.ForGuest(id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, pays)
}

func (ec *EntryController) ListCustomItems(c *gin.Context) {
	id, ok := guestIDQuery(c)
	if !ok {
		return
	}
	items, err := ec.Extras.ForGuest(id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items)
}

func (ec *EntryController) CreateOrder(c *gin.Context) {
	var in services.OrderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	order, err := ec.Orders.Create(in)
	if err != nil {
		utils.JSONError(c, entryErrStatus(err), err.Error())
		return
	}
	notifyChange()
	utils.JSONSuccess(c, http.StatusCreated, order)
}

func (ec *EntryController) DeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ec.Orders.Delete(id); err != nil {
		utils.JSONError(c, http.StatusNotFound, err.Error())
		return
	}
	notifyChange()
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

func (ec *EntryController) CreatePayment(c *gin.Context) {
	var in services.PaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	pay, err := ec.Payments.Create(in)
	if err != nil {
		utils.JSONError(c, entryErrStatus(err), err.Error())
		return
	}
	notifyChange()
	utils.JSONSuccess(c, http.StatusCreated, pay)
}

// PayFullDue records one payment that clears the record's current balance.
func (ec *EntryController) PayFullDue(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var body struct {
		Method string `json:"method"`
	}
	_ = c.ShouldBindJSON(&body)

	pay, err := ec.Payments.PayFullDue(id, body.Method)
	if err != nil {
		utils.JSONError(c, entryErrStatus(err), err.Error())
		return
	}
	notifyChange()
	utils.JSONSuccess(c, http.StatusCreated, pay)
}

func (ec *EntryController) DeletePayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ec.Payments.Delete(id); err != nil {
		utils.JSONError(c, http.StatusNotFound, err.Error())
		return
	}
	notifyChange()
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

func (ec *EntryController) CreateCustomItem(c *gin.Context) {
	var in services.CustomItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	item, err := ec.Extras.Create(in)
	if err != nil {
		utils.JSONError(c, entryErrStatus(err), err.Error())
		return
	}
	notifyChange()
	utils.JSONSuccess(c, http.StatusCreated, item)
}

func (ec *EntryController) DeleteCustomItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ec.Extras.Delete(id); err != nil {
		utils.JSONError(c, http.StatusNotFound, err.Error())
		return
	}
	notifyChange()
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
