package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"frontdesk-backend/config"
	"frontdesk-backend/models"
	"frontdesk-backend/services"
	"frontdesk-backend/utils"
)

// LedgerController serves the billing views: identity-wide ledgers, the
// staged checkout invoice, returning-guest history and the preferred-rate
// book.
type LedgerController struct {
	Ledger   *services.LedgerService
	Identity *services.IdentityService
	Guests   *services.GuestService
}

func NewLedgerController(
	ledger *services.LedgerService,
	identity *services.IdentityService,
	guests *services.GuestService,
) *LedgerController {
	return &LedgerController{Ledger: ledger, Identity: identity, Guests: guests}
}

// IdentityLedger returns the combined all-time ledger for the person behind
// one guest record: every clustered record's stays, orders, extras and
// payments with unconditional totals.
func (lc *LedgerController) IdentityLedger(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	view, err := lc.Ledger.IdentityLedger(lc.Identity, id)
	if err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			utils.JSONError(c, http.StatusNotFound, err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, view)
}

// StagedLedger computes the editable checkout invoice without persisting
// anything. The client POSTs the current editor state and renders the
// returned totals.
func (lc *LedgerController) StagedLedger(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var in services.StageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	view, err := lc.Ledger.StagedLedger(id, in)
	if err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			utils.JSONError(c, http.StatusNotFound, err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, view)
}

// CurrentDue is the include-everything balance for one record.
func (lc *LedgerController) CurrentDue(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	due, err := lc.Ledger.CurrentDue(id)
	if err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			utils.JSONError(c, http.StatusNotFound, err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"due": due})
}

// ReturningGuests lists completed stays newest first for the check-in
// screen's returning-guest picker.
func (lc *LedgerController) ReturningGuests(c *gin.Context) {
	out, err := lc.Ledger.ReturningGuests()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, out)
}

// DeleteStay removes one historical stay snapshot.
func (lc *LedgerController) DeleteStay(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := lc.Guests.DeleteStay(id); err != nil {
		utils.JSONError(c, http.StatusNotFound, err.Error())
		return
	}
	notifyChange()
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

// PreferredRate reads the advisory rate for a guest's identity cluster.
func (lc *LedgerController) PreferredRate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	cluster, _, err := lc.Identity.ClusterFor(id)
	if err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			utils.JSONError(c, http.StatusNotFound, err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	rate, err := lc.Identity.PreferredRate(cluster.PreferredKey)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"key":  cluster.PreferredKey,
		"rate": rate,
	})
}

// SetPreferredRate stores (or clears, when rate <= 0) the advisory rate for
// a guest's identity cluster.
func (lc *LedgerController) SetPreferredRate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var body struct {
		Rate float64 `json:"rate"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	cluster, _, err := lc.Identity.ClusterFor(id)
	if err != nil {
		if errors.Is(err, services.ErrGuestNotFound) {
			utils.JSONError(c, http.StatusNotFound, err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if cluster.PreferredKey == "" {
		utils.JSONError(c, http.StatusBadRequest, "guest has no identifiers")
		return
	}
	if err := lc.Identity.SetPreferredRate(cluster.PreferredKey, body.Rate); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	notifyChange()
	utils.JSONSuccess(c, http.StatusOK, gin.H{"key": cluster.PreferredKey})
}

// Dashboard returns the front-desk counters.
func (lc *LedgerController) Dashboard(c *gin.Context) {
	var checkedIn, arrivals, occupied, vacant int64
	config.DB.Model(&models.Guest{}).
		Where("status = ? AND checked_out = ?", models.StatusCheckedIn, false).
		Count(&checkedIn)
	config.DB.Model(&models.Guest{}).
		Where("status = ? AND checked_out = ?", models.StatusArrival, false).
		Count(&arrivals)
	config.DB.Model(&models.Room{}).Where("occupied = ?", true).Count(&occupied)
	config.DB.Model(&models.Room{}).Where("occupied = ?", false).Count(&vacant)

	today := utils.Today()
	var departures int64
	config.DB.Model(&models.Guest{}).
		Where("status = ? AND checked_out = ? AND check_out_date = ?",
			models.StatusCheckedIn, false, today).
		Count(&departures)

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"checkedIn":  checkedIn,
		"arrivals":   arrivals,
		"occupied":   occupied,
		"vacant":     vacant,
		"departures": departures,
		"date":       today,
	})
}
