package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"frontdesk-backend/services"
	"frontdesk-backend/utils"
)

// GetSyncSnapshot exposes the whole-state document so a peer desk (or the
// relay) can pull current state.
func GetSyncSnapshot(c *gin.Context) {
	if Sync == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "sync not configured")
		return
	}
	snap, err := Sync.Snapshot()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, snap)
}

// ApplySyncSnapshot accepts a pushed snapshot and replaces local state.
// Pushes inside the echo grace window after our own push are dropped.
func ApplySyncSnapshot(c *gin.Context) {
	if Sync == nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "sync not configured")
		return
	}
	var snap services.SyncSnapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid snapshot payload")
		return
	}
	if err := Sync.ApplyRemote(snap); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"applied": true})
}
