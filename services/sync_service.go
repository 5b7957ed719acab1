package services

import (
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"frontdesk-backend/models"
)

const (
	// syncDebounce coalesces bursts of mutations into one push.
	syncDebounce = 220 * time.Millisecond
	// echoGrace drops remote snapshots that arrive right after our own push,
	// so a round-trip echo cannot clobber newer local edits.
	echoGrace = 750 * time.Millisecond
)

// SyncSnapshot is the whole-state document exchanged with the remote relay.
// Sync is wholesale: the receiving side replaces its collections entirely.
type SyncSnapshot struct {
	PushedAt       time.Time              `json:"pushedAt"`
	Guests         []models.Guest         `json:"guests"`
	Rooms          []models.Room          `json:"rooms"`
	Stays          []models.StaySnapshot  `json:"stays"`
	Orders         []models.Order         `json:"orders"`
	Extras         []models.CustomItem    `json:"extras"`
	Payments       []models.Payment       `json:"payments"`
	Expenses       []models.Expense       `json:"expenses"`
	PreferredRates []models.PreferredRate `json:"preferredRates"`
	Settings       *models.HotelSetting   `json:"settings,omitempty"`
}

// SyncPublisher mirrors the local state to a remote relay endpoint after
// every mutation, debounced. Disabled (all methods no-ops) when no URL is
// configured.
type SyncPublisher struct {
	DB  *gorm.DB
	URL string

	client *resty.Client
	log    *zap.Logger

	mu         sync.Mutex
	timer      *time.Timer
	lastPushed time.Time
}

func NewSyncPublisher(db *gorm.DB, url string, log *zap.Logger) *SyncPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &SyncPublisher{
		DB:  db,
		URL: url,
		client: resty.New().
			SetTimeout(10 * time.Second).
			SetRetryCount(2).
			SetRetryWaitTime(500 * time.Millisecond),
		log: log,
	}
}

// Enabled reports whether a relay endpoint is configured.
func (s *SyncPublisher) Enabled() bool {
	return s != nil && s.URL != ""
}

// NotifyChange schedules a push. Calls within the debounce window collapse
// into a single push of the latest state.
func (s *SyncPublisher) NotifyChange() {
	if !s.Enabled() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(syncDebounce, s.pushNow)
}

func (s *SyncPublisher) pushNow() {
	snap, err := s.Snapshot()
	if err != nil {
		s.log.Warn("sync snapshot failed", zap.Error(err))
		return
	}
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(snap).
		Post(s.URL)
	if err != nil {
		// Next mutation retriggers; missed pushes are superseded anyway.
		s.log.Warn("sync push failed", zap.Error(err))
		return
	}
	if resp.IsError() {
		s.log.Warn("sync push rejected",
			zap.Int("status", resp.StatusCode()),
			zap.String("url", s.URL))
		return
	}
	s.mu.Lock()
	s.lastPushed = time.Now()
	s.mu.Unlock()
	s.log.Debug("sync push ok", zap.Int("guests", len(snap.Guests)))
}

// Snapshot collects the current state into one document.
func (s *SyncPublisher) Snapshot() (SyncSnapshot, error) {
	snap := SyncSnapshot{PushedAt: time.Now()}
	if err := s.DB.Find(&snap.Guests).Error; err != nil {
		return snap, err
	}
	if err := s.DB.Find(&snap.Rooms).Error; err != nil {
		return snap, err
	}
	if err := s.DB.Find(&snap.Stays).Error; err != nil {
		return snap, err
	}
	if err := s.DB.Find(&snap.Orders).Error; err != nil {
		return snap, err
	}
	if err := s.DB.Find(&snap.Extras).Error; err != nil {
		return snap, err
	}
	if err := s.DB.Find(&snap.Payments).Error; err != nil {
		return snap, err
	}
	if err := s.DB.Find(&snap.Expenses).Error; err != nil {
		return snap, err
	}
	if err := s.DB.Find(&snap.PreferredRates).Error; err != nil {
		return snap, err
	}
	var set models.HotelSetting
	if err := s.DB.First(&set).Error; err == nil {
		snap.Settings = &set
	}
	return snap, nil
}

// ApplyRemote replaces the local collections with a remote snapshot. A
// snapshot landing inside the echo grace window after our own push is
// dropped as a probable echo.
func (s *SyncPublisher) ApplyRemote(snap SyncSnapshot) error {
	s.mu.Lock()
	recent := !s.lastPushed.IsZero() && time.Since(s.lastPushed) < echoGrace
	s.mu.Unlock()
	if recent {
		s.log.Debug("sync apply skipped inside echo grace window")
		return nil
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.Guest{}, &models.Room{}, &models.StaySnapshot{},
			&models.Order{}, &models.CustomItem{}, &models.Payment{},
			&models.Expense{}, &models.PreferredRate{},
		} {
			// hard delete: soft-deleted rooms would still hold their
			// unique numbers and block the replacement rows
			if err := tx.Unscoped().Where("1 = 1").Delete(m).Error; err != nil {
				return err
			}
		}
		if len(snap.Guests) > 0 {
			if err := tx.Create(&snap.Guests).Error; err != nil {
				return err
			}
		}
		if len(snap.Rooms) > 0 {
			if err := tx.Create(&snap.Rooms).Error; err != nil {
				return err
			}
		}
		if len(snap.Stays) > 0 {
			if err := tx.Create(&snap.Stays).Error; err != nil {
				return err
			}
		}
		if len(snap.Orders) > 0 {
			if err := tx.Create(&snap.Orders).Error; err != nil {
				return err
			}
		}
		if len(snap.Extras) > 0 {
			if err := tx.Create(&snap.Extras).Error; err != nil {
				return err
			}
		}
		if len(snap.Payments) > 0 {
			if err := tx.Create(&snap.Payments).Error; err != nil {
				return err
			}
		}
		if len(snap.Expenses) > 0 {
			if err := tx.Create(&snap.Expenses).Error; err != nil {
				return err
			}
		}
		if len(snap.PreferredRates) > 0 {
			if err := tx.Create(&snap.PreferredRates).Error; err != nil {
				return err
			}
		}
		if snap.Settings != nil {
			var set models.HotelSetting
			if err := tx.First(&set).Error; err == nil {
				snap.Settings.ID = set.ID
				return tx.Save(snap.Settings).Error
			}
			return tx.Create(snap.Settings).Error
		}
		return nil
	})
}

// Pull fetches the relay's current snapshot and applies it locally.
func (s *SyncPublisher) Pull() error {
	if !s.Enabled() {
		return nil
	}
	var snap SyncSnapshot
	resp, err := s.client.R().SetResult(&snap).Get(s.URL)
	if err != nil {
		return err
	}
	if resp.IsError() {
		s.log.Warn("sync pull rejected", zap.Int("status", resp.StatusCode()))
		return nil
	}
	return s.ApplyRemote(snap)
}
