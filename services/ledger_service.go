package services

import (
	"errors"
	"sort"

	"gorm.io/gorm"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"
)

// LedgerService aggregates record collections into ledger view models for
// the UI, print renderer and CSV exporter. It only reads; all mutation goes
// through the lifecycle and entry services.
type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

func (s *LedgerService) taxRate() float64 {
	var set models.HotelSetting
	if err := s.DB.First(&set).Error; err != nil {
		return 0
	}
	return set.TaxRate
}

// PreviewStay synthesizes the non-persisted stay for a guest who is still
// checked in, spanning check-in through today, so in-progress stays
// participate in identity totals without being finalized.
func PreviewStay(g models.Guest, today string) models.StaySnapshot {
	in := utils.DateOnly(g.CheckInDate)
	if in == "" {
		in = today
	}
	return models.StaySnapshot{
		GuestID:   g.ID,
		GuestName: g.Name,
		RoomNo:    g.RoomNo,
		Rate:      g.RoomRent,
		CheckIn:   in,
		CheckOut:  today,
		Preview:   true,
	}
}

// AttachmentRef points at an attachment somewhere in an identity cluster.
type AttachmentRef struct {
	GuestID uint `json:"guestId"`
	models.Attachment
}

// IdentityLedgerView is the combined all-time ledger for one real person.
type IdentityLedgerView struct {
	Seed          models.Guest          `json:"seed"`
	Cluster       IdentityCluster       `json:"cluster"`
	Stays         []models.StaySnapshot `json:"stays"`
	Orders        []models.Order        `json:"orders"`
	Extras        []models.CustomItem   `json:"extras"`
	Payments      []models.Payment      `json:"payments"`
	Attachments   []AttachmentRef       `json:"attachments"`
	Totals        Totals                `json:"totals"`
	PreferredRate float64               `json:"preferredRate"`
}

// IdentityLedger computes unconditional sums across the seed guest's whole
// identity cluster. Discounts and tax are staging-time concerns of a single
// checkout, so the lifetime view carries none.
func (s *LedgerService) IdentityLedger(identity *IdentityService, guestID uint) (IdentityLedgerView, error) {
	cluster, seed, err := identity.ClusterFor(guestID)
	if err != nil {
		return IdentityLedgerView{}, err
	}
	ids := cluster.IDs
	today := utils.Today()

	var members []models.Guest
	if err := s.DB.Where("id IN ?", ids).Find(&members).Error; err != nil {
		return IdentityLedgerView{}, err
	}

	var stays []models.StaySnapshot
	for _, g := range members {
		if g.Status == models.StatusCheckedIn && g.IsLive() {
			stays = append(stays, PreviewStay(g, today))
		}
	}
	var persisted []models.StaySnapshot
	if err := s.DB.Where("guest_id IN ?", ids).Find(&persisted).Error; err != nil {
		return IdentityLedgerView{}, err
	}
	stays = append(stays, persisted...)
	sort.SliceStable(stays, func(i, j int) bool { return stays[i].CheckIn < stays[j].CheckIn })

	var orders []models.Order
	var extras []models.CustomItem
	var pays []models.Payment
	if err := s.DB.Where("guest_id IN ?", ids).Order("date, time").Find(&orders).Error; err != nil {
		return IdentityLedgerView{}, err
	}
	if err := s.DB.Where("guest_id IN ?", ids).Order("date, time").Find(&extras).Error; err != nil {
		return IdentityLedgerView{}, err
	}
	if err := s.DB.Where("guest_id IN ?", ids).Order("date, time").Find(&pays).Error; err != nil {
		return IdentityLedgerView{}, err
	}

	charges := make([]StayCharge, 0, len(stays))
	for _, st := range stays {
		charges = append(charges, ChargeFromSnapshot(st))
	}
	totals := ComputeLedger(LedgerInput{
		Stays:    charges,
		Orders:   orders,
		Extras:   extras,
		Payments: pays,
	})

	var attachments []AttachmentRef
	for _, g := range members {
		if a := g.AttachmentMeta(); a != nil {
			attachments = append(attachments, AttachmentRef{GuestID: g.ID, Attachment: *a})
		}
	}

	rate, err := identity.PreferredRate(cluster.PreferredKey)
	if err != nil {
		return IdentityLedgerView{}, err
	}

	return IdentityLedgerView{
		Seed:          seed,
		Cluster:       cluster,
		Stays:         stays,
		Orders:        orders,
		Extras:        extras,
		Payments:      pays,
		Attachments:   attachments,
		Totals:        totals,
		PreferredRate: rate,
	}, nil
}

// StageInput carries the checkout editor's current selections: field
// overrides plus explicit inclusion id lists (nil list = include all), so
// staff can exclude a line item without deleting it.
type StageInput struct {
	Rate            *float64 `json:"rate"`
	HalfNight       *bool    `json:"halfNight"`
	CheckInDate     *string  `json:"checkInDate"`
	CheckOutDate    *string  `json:"checkOutDate"`
	DiscountPercent *float64 `json:"discountPercent"`
	DiscountFlat    *float64 `json:"discountFlat"`

	IncludeOrders   []uint `json:"includeOrders"`
	IncludeExtras   []uint `json:"includeExtras"`
	IncludePayments []uint `json:"includePayments"`
}

func idSet(ids []uint) map[uint]bool {
	if ids == nil {
		return nil
	}
	s := make(map[uint]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}

// StagedView is the editable invoice model for one guest record.
type StagedView struct {
	Guest    models.Guest        `json:"guest"`
	Nights   float64             `json:"nights"`
	Orders   []models.Order      `json:"orders"`
	Extras   []models.CustomItem `json:"extras"`
	Payments []models.Payment    `json:"payments"`
	Totals   Totals              `json:"totals"`
	Invoice  InvoiceTotals       `json:"invoice"`
}

// StagedLedger computes the single-record ledger the checkout screen edits.
// Overrides are applied in memory only; nothing is persisted here.
func (s *LedgerService) StagedLedger(guestID uint, in StageInput) (StagedView, error) {
	var g models.Guest
	if err := s.DB.First(&g, guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StagedView{}, ErrGuestNotFound
		}
		return StagedView{}, err
	}

	rate := g.RoomRent
	if in.Rate != nil {
		rate = *in.Rate
	}
	half := g.HalfNight
	if in.HalfNight != nil {
		half = *in.HalfNight
	}
	ci := g.CheckInDate
	if in.CheckInDate != nil {
		ci = *in.CheckInDate
	}
	co := g.CheckOutDate
	if in.CheckOutDate != nil {
		co = *in.CheckOutDate
	}
	if utils.DateOnly(co) == "" {
		co = utils.Today()
	}
	discP := g.DiscountPercent
	if in.DiscountPercent != nil {
		discP = *in.DiscountPercent
	}
	discR := g.DiscountFlat
	if in.DiscountFlat != nil {
		discR = *in.DiscountFlat
	}

	var orders []models.Order
	var extras []models.CustomItem
	var pays []models.Payment
	if err := s.DB.Where("guest_id = ?", g.ID).Order("date, time").Find(&orders).Error; err != nil {
		return StagedView{}, err
	}
	if err := s.DB.Where("guest_id = ?", g.ID).Order("date, time").Find(&extras).Error; err != nil {
		return StagedView{}, err
	}
	if err := s.DB.Where("guest_id = ?", g.ID).Order("date, time").Find(&pays).Error; err != nil {
		return StagedView{}, err
	}

	nights := utils.NightsWithHalf(ci, co, half)
	totals := ComputeLedger(LedgerInput{
		Stays:           []StayCharge{{Nights: nights, Rate: rate}},
		Orders:          orders,
		Extras:          extras,
		Payments:        pays,
		DiscountFlat:    discR,
		DiscountPercent: discP,
		TaxRate:         s.taxRate(),
		Include: &IncludeSet{
			Orders:   idSet(in.IncludeOrders),
			Extras:   idSet(in.IncludeExtras),
			Payments: idSet(in.IncludePayments),
		},
	})

	return StagedView{
		Guest:    g,
		Nights:   nights,
		Orders:   orders,
		Extras:   extras,
		Payments: pays,
		Totals:   totals,
		Invoice:  totals.Invoice(),
	}, nil
}

// CurrentDue is the include-everything due for one guest record, used for
// the overpayment advisory and the direct-checkout policy gate.
func (s *LedgerService) CurrentDue(guestID uint) (float64, error) {
	v, err := s.StagedLedger(guestID, StageInput{})
	if err != nil {
		return 0, err
	}
	return v.Totals.Due, nil
}

// ReturningGuest is one completed stay with its window-scoped finances:
// orders and payments are attributed to the stay by inclusive date range.
type ReturningGuest struct {
	GuestID       uint    `json:"guestId"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	LastIn        string  `json:"lastIn"`
	LastOut       string  `json:"lastOut"`
	LastRoom      string  `json:"lastRoom"`
	Rate          float64 `json:"rate"`
	Grand         float64 `json:"grand"`
	Paid          float64 `json:"paid"`
	Due           float64 `json:"due"`
	HasAttachment bool    `json:"hasAttachment"`
}

// ReturningGuests builds the historical stay list for the check-in screen,
// newest stay first.
func (s *LedgerService) ReturningGuests() ([]ReturningGuest, error) {
	var stays []models.StaySnapshot
	if err := s.DB.Order("check_in DESC").Find(&stays).Error; err != nil {
		return nil, err
	}
	var guests []models.Guest
	if err := s.DB.Find(&guests).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Guest, len(guests))
	for _, g := range guests {
		byID[g.ID] = g
	}

	var orders []models.Order
	var pays []models.Payment
	if err := s.DB.Find(&orders).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Find(&pays).Error; err != nil {
		return nil, err
	}

	out := make([]ReturningGuest, 0, len(stays))
	for _, st := range stays {
		g := byID[st.GuestID]
		in := utils.DateOnly(st.CheckIn)
		outISO := utils.DateOnly(st.CheckOut)
		if outISO == "" {
			outISO = in
		}
		rate := st.Rate
		if rate == 0 {
			rate = g.RoomRent
		}

		var stayOrders []models.Order
		for _, o := range orders {
			if o.GuestID == st.GuestID && utils.InRangeInclusive(o.Date, in, outISO) {
				stayOrders = append(stayOrders, o)
			}
		}
		var stayPays []models.Payment
		for _, p := range pays {
			if p.GuestID == st.GuestID && utils.InRangeInclusive(p.Date, in, outISO) {
				stayPays = append(stayPays, p)
			}
		}

		totals := ComputeLedger(LedgerInput{
			Stays:    []StayCharge{{Nights: utils.Nights(in, outISO), Rate: rate}},
			Orders:   stayOrders,
			Payments: stayPays,
		})

		name := st.GuestName
		if name == "" {
			name = g.Name
		}
		out = append(out, ReturningGuest{
			GuestID:       st.GuestID,
			Name:          name,
			Phone:         g.Phone,
			LastIn:        in,
			LastOut:       outISO,
			LastRoom:      st.RoomNo,
			Rate:          rate,
			Grand:         totals.Grand,
			Paid:          totals.Paid,
			Due:           totals.Due,
			HasAttachment: g.AttachmentMeta() != nil,
		})
	}
	return out, nil
}
