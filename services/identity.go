package services

import (
	"errors"
	"math"

	"gorm.io/gorm"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"
)

var ErrGuestNotFound = errors.New("guest_not_found")

// IdentityCluster groups the guest records believed to be the same person:
// every record whose normalized national-ID OR phone matches the seed's.
// It is derived, never persisted.
type IdentityCluster struct {
	IDs          []uint   `json:"ids"`
	NationalIDs  []string `json:"nationalIds"`
	Phones       []string `json:"phones"`
	PreferredKey string   `json:"preferredKey"`
}

// Contains reports cluster membership.
func (c IdentityCluster) Contains(id uint) bool {
	for _, v := range c.IDs {
		if v == id {
			return true
		}
	}
	return false
}

// IDSet returns membership as a set for filtering record collections.
func (c IdentityCluster) IDSet() map[uint]bool {
	s := make(map[uint]bool, len(c.IDs))
	for _, id := range c.IDs {
		s[id] = true
	}
	return s
}

// BuildCluster scans all guest records for the seed's identifiers. Either
// identifier matching suffices (OR, not AND). A seed without identifiers
// clusters alone with an empty preferred key, which disables rate lookups.
// Linear scan per call; fine for a single-property front desk.
func BuildCluster(seed models.Guest, all []models.Guest) IdentityCluster {
	seedNID := utils.NormalizeNationalID(seed.NationalID)
	seedPhone := utils.NormalizePhone(seed.Phone)

	var ids []uint
	var nids, phones []string
	seenNID := map[string]bool{}
	seenPhone := map[string]bool{}

	addNID := func(v string) {
		if v != "" && !seenNID[v] {
			seenNID[v] = true
			nids = append(nids, v)
		}
	}
	addPhone := func(v string) {
		if v != "" && !seenPhone[v] {
			seenPhone[v] = true
			phones = append(phones, v)
		}
	}
	addNID(seedNID)
	addPhone(seedPhone)

	for _, g := range all {
		n := utils.NormalizeNationalID(g.NationalID)
		p := utils.NormalizePhone(g.Phone)
		if (seedNID != "" && n != "" && n == seedNID) ||
			(seedPhone != "" && p != "" && p == seedPhone) {
			ids = append(ids, g.ID)
			addNID(n)
			addPhone(p)
		}
	}
	if len(ids) == 0 && seed.ID != 0 {
		ids = append(ids, seed.ID)
	}

	key := ""
	if len(nids) > 0 {
		key = utils.NationalIDKey(nids[0])
	} else if len(phones) > 0 {
		key = utils.PhoneKey(phones[0])
	}

	return IdentityCluster{IDs: ids, NationalIDs: nids, Phones: phones, PreferredKey: key}
}

// IdentityService resolves clusters against the store and manages the
// preferred-rate book.
type IdentityService struct {
	DB *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{DB: db}
}

// ClusterFor loads the seed and builds its cluster over all guest records.
func (s *IdentityService) ClusterFor(guestID uint) (IdentityCluster, models.Guest, error) {
	var seed models.Guest
	if err := s.DB.First(&seed, guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return IdentityCluster{}, seed, ErrGuestNotFound
		}
		return IdentityCluster{}, seed, err
	}
	var all []models.Guest
	if err := s.DB.Find(&all).Error; err != nil {
		return IdentityCluster{}, seed, err
	}
	return BuildCluster(seed, all), seed, nil
}

// PreferredRate looks up the advisory nightly rate for an identity key.
// An empty key is a no-op, not an error.
func (s *IdentityService) PreferredRate(key string) (float64, error) {
	if key == "" {
		return 0, nil
	}
	var pr models.PreferredRate
	err := s.DB.Where("identity_key = ?", key).First(&pr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return pr.Rate, nil
}

// SetPreferredRate stores a suggested rate (rounded to whole units, floored
// at 0). A zero rate clears the entry.
func (s *IdentityService) SetPreferredRate(key string, rate float64) error {
	if key == "" {
		return errors.New("identity_key_required")
	}
	r := math.Round(rate)
	if r <= 0 {
		return s.DB.Where("identity_key = ?", key).Delete(&models.PreferredRate{}).Error
	}
	var pr models.PreferredRate
	err := s.DB.Where("identity_key = ?", key).First(&pr).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.DB.Create(&models.PreferredRate{IdentityKey: key, Rate: r}).Error
	}
	if err != nil {
		return err
	}
	return s.DB.Model(&pr).Update("rate", r).Error
}
