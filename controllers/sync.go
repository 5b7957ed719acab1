package controllers

import "frontdesk-backend/services"

// Sync is the shared publisher every mutating handler notifies. Nil or
// unconfigured publishers are safe no-ops.
var Sync *services.SyncPublisher

func notifyChange() {
	if Sync != nil {
		Sync.NotifyChange()
	}
}
