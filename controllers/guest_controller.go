package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"frontdesk-backend/config"
	"frontdesk-backend/models"
	"frontdesk-backend/services"
	"frontdesk-backend/utils"
)

type GuestController struct {
	Service *services.GuestService
}

func NewGuestController(s *services.GuestService) *GuestController {
	return &GuestController{Service: s}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// guestErrStatus maps lifecycle sentinel errors onto HTTP statuses.
func guestErrStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrGuestNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrRoomNotFound):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrRoomOccupied):
		return http.StatusConflict
	case errors.Is(err, services.ErrRoomRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrAttachmentTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrGuestClosed):
		return http.StatusConflict
	case errors.Is(err, services.ErrOutstandingDue):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// GetGuests lists guest records with derived nights/room-count columns,
// optionally filtered: ?status=checked-in or ?live=true for in-house only.
func (gc *GuestController) GetGuests(c *gin.Context) {
	guests, err := gc.Service.List(c.Query("status"), c.Query("live") == "true")
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

func (gc *GuestController) GetGuestByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var guest models.Guest
	if err := config.DB.First(&guest, id).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "guest not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

func (gc *GuestController) CheckIn(c *gin.Context) {
	var in services.CheckInInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	guest, err := gc.Service.CheckIn(in)
	if err != nil {
		utils.JSONError(c, guestErrStatus(err), err.Error())
		return
	}
	notifyChange()
	utils.JSONSuccess(c, http.StatusCreated, guest)
}

func (gc *GuestController) UpdateGuest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var in services.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	guest, err := gc.Service.Update(id, in)
	if err != nil {
		utils.JSONError(c, guestErrStatus(err), err.Error())
		return
	}
	notifyChange()
	utils.JSONSuccess(c, http.StatusOK, guest)
}

// Checkout finalizes a stay. The response carries the invoice totals plus
// the written stay snapshot.
func (gc *GuestController) Checkout(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var in services.CheckoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	res, err := gc.Service.Checkout(id, in)
	if err != nil {
		utils.JSONError(c, guestErrStatus(err), err.Error())
		return
	}
	notifyChange()
	utils.JSONSuccess(c, http.StatusOK, res)
}

// LateCheckoutAdvisory reports whether a same-day checkout after 6 PM should
// be bumped to tomorrow. ?checkOutDate=YYYY-MM-DD, defaults to today.
func (gc *GuestController) LateCheckoutAdvisory(c *gin.Context) {
	now := time.Now()
	bump := services.LateCheckoutBump(now, c.Query("checkOutDate"))
	suggested := ""
	if bump {
		suggested = now.AddDate(0, 0, 1).Format(utils.DateLayout)
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"bump":      bump,
		"suggested": suggested,
	})
}

// ReCheckIn returns an unsaved check-in draft seeded from a prior record.
func (gc *GuestController) ReCheckIn(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	draft, err := gc.Service.ReCheckInSeed(id)
	if err != nil {
		utils.JSONError(c, guestErrStatus(err), err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, draft)
}

func (gc *GuestController) DeleteGuest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := gc.Service.Delete(id); err != nil {
		utils.JSONError(c, guestErrStatus(err), err.Error())
		return
	}
	notifyChange()
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
