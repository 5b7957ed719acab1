package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"
)

var (
	ErrRoomRequired       = errors.New("room_required")
	ErrGuestClosed        = errors.New("guest_checked_out")
	ErrOutstandingDue     = errors.New("outstanding_due")
	ErrInvalidStatus      = errors.New("invalid_status")
	ErrAttachmentTooLarge = errors.New("attachment_too_large")
)

// GuestService drives guest lifecycle transitions and their side effects:
// room assignment/release and stay-history snapshotting. Every multi-entity
// mutation runs in one transaction.
type GuestService struct {
	DB     *gorm.DB
	Ledger *LedgerService
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db, Ledger: NewLedgerService(db)}
}

// CheckInInput is the front-desk form payload for a new guest record.
type CheckInInput struct {
	Name       string `json:"name"`
	FatherName string `json:"fatherName"`
	NationalID string `json:"nationalId"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Company    string `json:"company"`
	Persons    int    `json:"persons"`

	CheckInDate  string `json:"checkInDate"`
	CheckInTime  string `json:"checkInTime"`
	CheckOutDate string `json:"checkOutDate"`
	CheckOutTime string `json:"checkOutTime"`

	Rooms     []string `json:"rooms"`
	RoomRent  float64  `json:"roomRent"`
	HalfNight bool     `json:"halfNight"`

	Status     string             `json:"status"`
	Attachment *models.Attachment `json:"attachment"`
}

func validateAttachment(a *models.Attachment) error {
	if a == nil {
		return nil
	}
	if a.Size > models.MaxAttachmentSize || int64(len(a.DataURL)) > 2*models.MaxAttachmentSize {
		return ErrAttachmentTooLarge
	}
	return nil
}

// CheckIn creates a new guest record. Status checked-in requires at least
// one room and occupies every listed room; arrival never occupies a room
// even when one is pre-selected.
func (s *GuestService) CheckIn(in CheckInInput) (models.Guest, error) {
	status := in.Status
	if status == "" {
		status = models.StatusCheckedIn
	}
	if status != models.StatusCheckedIn && status != models.StatusArrival {
		return models.Guest{}, ErrInvalidStatus
	}
	if status == models.StatusCheckedIn && len(in.Rooms) == 0 {
		return models.Guest{}, ErrRoomRequired
	}
	if err := validateAttachment(in.Attachment); err != nil {
		return models.Guest{}, err
	}

	persons := in.Persons
	if persons < 1 {
		persons = 1
	}
	name := in.Name
	if name == "" {
		name = "Guest"
	}
	ciDate := utils.DateOnly(in.CheckInDate)
	if ciDate == "" {
		ciDate = utils.Today()
	}
	ciTime := in.CheckInTime
	if ciTime == "" {
		ciTime = utils.NowTime()
	}

	guest := models.Guest{
		Name:         name,
		FatherName:   in.FatherName,
		NationalID:   in.NationalID,
		Phone:        in.Phone,
		Address:      in.Address,
		Company:      in.Company,
		Persons:      persons,
		CheckInDate:  ciDate,
		CheckInTime:  ciTime,
		CheckOutDate: utils.DateOnly(in.CheckOutDate),
		CheckOutTime: in.CheckOutTime,
		RoomNo:       JoinRooms(in.Rooms),
		RoomRent:     in.RoomRent,
		HalfNight:    in.HalfNight,
		Status:       status,
		CheckedOut:   false,
	}
	if err := guest.SetAttachment(in.Attachment); err != nil {
		return models.Guest{}, fmt.Errorf("failed to encode attachment: %w", err)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&guest).Error; err != nil {
			return fmt.Errorf("failed to create guest: %w", err)
		}
		if status != models.StatusCheckedIn {
			return nil
		}
		return occupyAll(tx, guest.ID, in.Rooms)
	})
	if err != nil {
		return models.Guest{}, err
	}
	return guest, nil
}

// occupyAll assigns each listed room to the guest through the pure state
// machine and persists the rooms that changed.
func occupyAll(tx *gorm.DB, guestID uint, numbers []string) error {
	var rooms []models.Room
	if err := tx.Find(&rooms).Error; err != nil {
		return err
	}
	next := rooms
	for _, no := range numbers {
		var err error
		next, err = AssignRoom(next, no, guestID)
		if err != nil {
			return err
		}
	}
	return persistRoomChanges(tx, rooms, next)
}

// releaseAll frees every room the guest holds.
func releaseAll(tx *gorm.DB, guestID uint) error {
	var rooms []models.Room
	if err := tx.Find(&rooms).Error; err != nil {
		return err
	}
	next := rooms
	for _, no := range HeldBy(rooms, guestID) {
		next = ReleaseRoom(next, no)
	}
	return persistRoomChanges(tx, rooms, next)
}

func persistRoomChanges(tx *gorm.DB, before, after []models.Room) error {
	if len(before) != len(after) {
		return errors.New("room slice mismatch")
	}
	for i := range after {
		if roomChanged(before[i], after[i]) {
			if err := tx.Model(&models.Room{}).Where("id = ?", after[i].ID).
				Updates(map[string]interface{}{
					"occupied": after[i].Occupied,
					"status":   after[i].Status,
					"guest_id": after[i].GuestID,
				}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func roomChanged(a, b models.Room) bool {
	if a.Occupied != b.Occupied || a.Status != b.Status {
		return true
	}
	switch {
	case a.GuestID == nil && b.GuestID == nil:
		return false
	case a.GuestID == nil || b.GuestID == nil:
		return true
	default:
		return *a.GuestID != *b.GuestID
	}
}

// GuestListItem decorates a record with the in-house table's derived
// columns: nights billed so far and how many rooms the label spans.
type GuestListItem struct {
	models.Guest
	Nights    float64 `json:"nights"`
	RoomCount int     `json:"roomCount"`
}

// List returns guest records newest first. Nights follow the unified rule:
// closed records use their own window, live checked-in records bill against
// today, arrivals bill nothing.
func (s *GuestService) List(status string, liveOnly bool) ([]GuestListItem, error) {
	q := s.DB.Model(&models.Guest{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if liveOnly {
		q = q.Where("checked_out = ? AND status <> ?", false, models.StatusCheckedOut)
	}

	var guests []models.Guest
	if err := q.Order("id DESC").Find(&guests).Error; err != nil {
		return nil, err
	}

	today := utils.Today()
	out := make([]GuestListItem, 0, len(guests))
	for _, g := range guests {
		out = append(out, GuestListItem{
			Guest:     g,
			Nights:    utils.NightsFor(g.CheckInDate, g.CheckOutDate, g.Status, g.CheckedOut, today),
			RoomCount: g.RoomMultiplier(),
		})
	}
	return out, nil
}

// UpdateInput edits a live guest record; nil fields are left unchanged.
type UpdateInput struct {
	Name       *string `json:"name"`
	FatherName *string `json:"fatherName"`
	NationalID *string `json:"nationalId"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	Company    *string `json:"company"`
	Persons    *int    `json:"persons"`

	CheckInDate  *string `json:"checkInDate"`
	CheckInTime  *string `json:"checkInTime"`
	CheckOutDate *string `json:"checkOutDate"`
	CheckOutTime *string `json:"checkOutTime"`

	Rooms     *[]string `json:"rooms"`
	RoomRent  *float64  `json:"roomRent"`
	HalfNight *bool     `json:"halfNight"`

	DiscountPercent *float64 `json:"discountPercent"`
	DiscountFlat    *float64 `json:"discountFlat"`

	Status     *string            `json:"status"`
	Attachment *models.Attachment `json:"attachment"`
}

// Update edits a guest that is still in house. A room change releases the
// old rooms and occupies the new ones; switching to arrival releases every
// held room. Closed records are not editable through this path.
func (s *GuestService) Update(guestID uint, in UpdateInput) (models.Guest, error) {
	var guest models.Guest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&guest, guestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestNotFound
			}
			return err
		}
		if !guest.IsLive() {
			return ErrGuestClosed
		}

		if in.Name != nil {
			guest.Name = *in.Name
		}
		if in.FatherName != nil {
			guest.FatherName = *in.FatherName
		}
		if in.NationalID != nil {
			guest.NationalID = *in.NationalID
		}
		if in.Phone != nil {
			guest.Phone = *in.Phone
		}
		if in.Address != nil {
			guest.Address = *in.Address
		}
		if in.Company != nil {
			guest.Company = *in.Company
		}
		if in.Persons != nil && *in.Persons >= 1 {
			guest.Persons = *in.Persons
		}
		if in.CheckInDate != nil {
			guest.CheckInDate = utils.DateOnly(*in.CheckInDate)
		}
		if in.CheckInTime != nil {
			guest.CheckInTime = *in.CheckInTime
		}
		if in.CheckOutDate != nil {
			guest.CheckOutDate = utils.DateOnly(*in.CheckOutDate)
		}
		if in.CheckOutTime != nil {
			guest.CheckOutTime = *in.CheckOutTime
		}
		if in.RoomRent != nil {
			guest.RoomRent = *in.RoomRent
		}
		if in.HalfNight != nil {
			guest.HalfNight = *in.HalfNight
		}
		if in.DiscountPercent != nil {
			guest.DiscountPercent = *in.DiscountPercent
		}
		if in.DiscountFlat != nil {
			guest.DiscountFlat = *in.DiscountFlat
		}
		if in.Attachment != nil {
			if err := validateAttachment(in.Attachment); err != nil {
				return err
			}
			if err := guest.SetAttachment(in.Attachment); err != nil {
				return err
			}
		}

		status := guest.Status
		if in.Status != nil {
			if *in.Status != models.StatusCheckedIn && *in.Status != models.StatusArrival {
				return ErrInvalidStatus
			}
			status = *in.Status
		}

		prevRooms := guest.Rooms()
		newRooms := prevRooms
		if in.Rooms != nil {
			newRooms = *in.Rooms
		}
		guest.Status = status
		guest.RoomNo = JoinRooms(newRooms)

		switch status {
		case models.StatusCheckedIn:
			if len(newRooms) == 0 {
				return ErrRoomRequired
			}
			for _, old := range prevRooms {
				if !containsRoom(newRooms, old) {
					if err := releaseOne(tx, old); err != nil {
						return err
					}
				}
			}
			if err := occupyAll(tx, guest.ID, newRooms); err != nil {
				return err
			}
		case models.StatusArrival:
			// Arrival keeps the pre-selected label but never occupies.
			if err := releaseAll(tx, guest.ID); err != nil {
				return err
			}
		}

		return tx.Save(&guest).Error
	})
	if err != nil {
		return models.Guest{}, err
	}
	return guest, nil
}

func containsRoom(rooms []string, no string) bool {
	for _, r := range rooms {
		if r == no {
			return true
		}
	}
	return false
}

func releaseOne(tx *gorm.DB, number string) error {
	var rooms []models.Room
	if err := tx.Find(&rooms).Error; err != nil {
		return err
	}
	return persistRoomChanges(tx, rooms, ReleaseRoom(rooms, number))
}

// CheckoutInput finalizes a stay. AllowDues selects checkout-with-dues;
// Stage carries the checkout editor's field overrides and inclusion sets.
type CheckoutInput struct {
	AllowDues bool       `json:"allowDues"`
	Stage     StageInput `json:"stage"`
}

// CheckoutResult is what the invoice renderer consumes.
type CheckoutResult struct {
	Guest    models.Guest        `json:"guest"`
	Snapshot models.StaySnapshot `json:"snapshot"`
	Totals   Totals              `json:"totals"`
	Invoice  InvoiceTotals       `json:"invoice"`
}

// Checkout closes a live guest record: persists the staged billing fields,
// defaults the checkout date/time to now when unset, writes the immutable
// stay snapshot and releases every held room. Direct checkout (AllowDues
// false) is rejected while due > 0; checkout-with-dues always proceeds and
// the balance stays visible on the closed record's ledger.
func (s *GuestService) Checkout(guestID uint, in CheckoutInput) (CheckoutResult, error) {
	staged, err := s.Ledger.StagedLedger(guestID, in.Stage)
	if err != nil {
		return CheckoutResult{}, err
	}
	if !staged.Guest.IsLive() {
		return CheckoutResult{}, ErrGuestClosed
	}
	if !in.AllowDues && staged.Totals.Due > 0 {
		return CheckoutResult{}, ErrOutstandingDue
	}

	guest := staged.Guest
	now := time.Now()
	outDate := ""
	if in.Stage.CheckOutDate != nil {
		outDate = utils.DateOnly(*in.Stage.CheckOutDate)
	}
	if outDate == "" {
		outDate = utils.DateOnly(guest.CheckOutDate)
	}
	if outDate == "" {
		outDate = now.Format(utils.DateLayout)
	}

	guest.CheckOutDate = outDate
	if guest.CheckOutTime == "" {
		guest.CheckOutTime = now.Format("15:04")
	}
	if in.Stage.Rate != nil {
		guest.RoomRent = *in.Stage.Rate
	}
	if in.Stage.HalfNight != nil {
		guest.HalfNight = *in.Stage.HalfNight
	}
	if in.Stage.DiscountPercent != nil {
		guest.DiscountPercent = *in.Stage.DiscountPercent
	}
	if in.Stage.DiscountFlat != nil {
		guest.DiscountFlat = *in.Stage.DiscountFlat
	}
	guest.Status = models.StatusCheckedOut
	guest.CheckedOut = true

	checkIn := utils.DateOnly(guest.CheckInDate)
	if checkIn == "" {
		checkIn = outDate
	}
	snapshot := models.StaySnapshot{
		GuestID:   guest.ID,
		GuestName: guest.Name,
		RoomNo:    guest.RoomNo,
		Rate:      guest.RoomRent,
		CheckIn:   checkIn,
		CheckOut:  outDate,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&guest).Error; err != nil {
			return err
		}
		if err := tx.Create(&snapshot).Error; err != nil {
			return fmt.Errorf("failed to create stay snapshot: %w", err)
		}
		return releaseAll(tx, guest.ID)
	})
	if err != nil {
		return CheckoutResult{}, err
	}

	return CheckoutResult{
		Guest:    guest,
		Snapshot: snapshot,
		Totals:   staged.Totals,
		Invoice:  staged.Totals.Invoice(),
	}, nil
}

// ReCheckInSeed builds an unsaved draft for a returning guest: profile
// fields and attachment carried over, stay fields reset to today, prior
// checkout cleared. The historical record and its snapshots stay untouched;
// saving the draft creates a brand-new record.
func (s *GuestService) ReCheckInSeed(fromGuestID uint) (models.Guest, error) {
	var prev models.Guest
	if err := s.DB.First(&prev, fromGuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Guest{}, ErrGuestNotFound
		}
		return models.Guest{}, err
	}

	draft := models.Guest{
		Name:        prev.Name,
		FatherName:  prev.FatherName,
		NationalID:  prev.NationalID,
		Phone:       prev.Phone,
		Address:     prev.Address,
		Company:     prev.Company,
		Persons:     prev.Persons,
		CheckInDate: utils.Today(),
		CheckInTime: utils.NowTime(),
		// afternoon checkout default
		CheckOutTime: "12:00",
		RoomNo:       prev.RoomNo,
		RoomRent:     prev.RoomRent,
		Status:       models.StatusCheckedIn,
		Attachment:   prev.Attachment,
	}
	return draft, nil
}

// Delete removes one guest record and cascades to its own orders, payments,
// adjustments and stay snapshots, freeing any rooms it still holds. Sibling
// records in the same identity cluster are untouched.
func (s *GuestService) Delete(guestID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var guest models.Guest
		if err := tx.First(&guest, guestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGuestNotFound
			}
			return err
		}
		if guest.IsLive() {
			if err := releaseAll(tx, guest.ID); err != nil {
				return err
			}
		}
		for _, m := range []interface{}{
			&models.Order{}, &models.Payment{}, &models.CustomItem{}, &models.StaySnapshot{},
		} {
			if err := tx.Where("guest_id = ?", guest.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&guest).Error
	})
}

// DeleteStay removes a single historical stay snapshot.
func (s *GuestService) DeleteStay(stayID uint) error {
	res := s.DB.Delete(&models.StaySnapshot{}, stayID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("stay_not_found")
	}
	return nil
}

// LateCheckoutBump reports whether the operator should be asked to roll a
// same-day checkout to tomorrow: after 6 PM local, checking out "today"
// would bill less than the night actually used. Advisory only; the caller
// confirms before any date changes.
func LateCheckoutBump(now time.Time, checkOutDate string) bool {
	out := utils.DateOnly(checkOutDate)
	if out == "" {
		out = now.Format(utils.DateLayout)
	}
	return now.Hour() >= 18 && out == now.Format(utils.DateLayout)
}
