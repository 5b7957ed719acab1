package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.HotelSetting{},
		&models.Room{},
		&models.Guest{},
		&models.StaySnapshot{},
		&models.Order{},
		&models.Payment{},
		&models.CustomItem{},
		&models.Expense{},
		&models.PreferredRate{},
	))
	return db
}

func seedRooms(t *testing.T, db *gorm.DB, numbers ...string) {
	t.Helper()
	for _, n := range numbers {
		require.NoError(t, db.Create(&models.Room{Number: n, Rate: 3500, Status: models.RoomVacant}).Error)
	}
}

func roomByNumber(t *testing.T, db *gorm.DB, number string) models.Room {
	t.Helper()
	var r models.Room
	require.NoError(t, db.Where("number = ?", number).First(&r).Error)
	return r
}

func TestCheckInOccupiesRooms(t *testing.T) {
	db := testDB(t)
	seedRooms(t, db, "101", "102")
	svc := NewGuestService(db)

	guest, err := svc.CheckIn(CheckInInput{
		Name:     "Ali Khan",
		Phone:    "0300-1234567",
		Rooms:    []string{"101", "102"},
		RoomRent: 3500,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCheckedIn, guest.Status)
	assert.Equal(t, "101/102", guest.RoomNo)

	r := roomByNumber(t, db, "101")
	assert.True(t, r.Occupied)
	assert.Equal(t, guest.ID, *r.GuestID)
}

func TestCheckInRequiresRoom(t *testing.T) {
	db := testDB(t)
	svc := NewGuestService(db)

	_, err := svc.CheckIn(CheckInInput{Name: "Ali", Status: models.StatusCheckedIn})
	assert.ErrorIs(t, err, ErrRoomRequired)
}

func TestCheckInConflictLeavesNothingBehind(t *testing.T) {
	db := testDB(t)
	seedRooms(t, db, "101")
	svc := NewGuestService(db)

	first, err := svc.CheckIn(CheckInInput{Name: "First", Rooms: []string{"101"}})
	require.NoError(t, err)

	_, err = svc.CheckIn(CheckInInput{Name: "Second", Rooms: []string{"101"}})
	assert.ErrorIs(t, err, ErrRoomOccupied)

	// room still belongs to the first guest, no second record persisted
	r := roomByNumber(t, db, "101")
	assert.Equal(t, first.ID, *r.GuestID)
	var count int64
	db.Model(&models.Guest{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestArrivalNeverOccupies(t *testing.T) {
	db := testDB(t)
	seedRooms(t, db, "101")
	svc := NewGuestService(db)

	guest, err := svc.CheckIn(CheckInInput{
		Name:   "Early Bird",
		Status: models.StatusArrival,
		Rooms:  []string{"101"},
	})
	require.NoError(t, err)
	assert.Equal(t, "101", guest.RoomNo)

	r := roomByNumber(t, db, "101")
	assert.False(t, r.Occupied)
	assert.Nil(t, r.GuestID)
}

func TestUpdateRoomSwap(t *testing.T) {
	db := testDB(t)
	seedRooms(t, db, "101", "102")
	svc := NewGuestService(db)

	guest, err := svc.CheckIn(CheckInInput{Name: "Ali", Rooms: []string{"101"}})
	require.NoError(t, err)

	newRooms := []string{"102"}
	updated, err := svc.Update(guest.ID, UpdateInput{Rooms: &newRooms})
	require.NoError(t, err)
	assert.Equal(t, "102", updated.RoomNo)

	assert.False(t, roomByNumber(t, db, "101").Occupied)
	assert.True(t, roomByNumber(t, db, "102").Occupied)
}

func TestUpdateToArrivalReleasesRooms(t *testing.T) {
	db := testDB(t)
	seedRooms(t, db, "101")
	svc := NewGuestService(db)

	guest, err := svc.CheckIn(CheckInInput{Name: "Ali", Rooms: []string{"101"}})
	require.NoError(t, err)

	status := models.StatusArrival
	updated, err := svc.Update(guest.ID, UpdateInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusArrival, updated.Status)
	assert.False(t, roomByNumber(t, db, "101").Occupied)
}

func TestDirectCheckoutBlockedOnDue(t *testing.T) {
	db := testDB(t)
	seedRooms(t, db, "101")
	svc := NewGuestService(db)

	guest, err := svc.CheckIn(CheckInInput{Name: "Ali", Rooms: []string{"101"}, RoomRent: 3500})
	require.NoError(t, err)

	_, err = svc.Checkout(guest.ID, CheckoutInput{AllowDues: false})
	assert.ErrorIs(t, err, ErrOutstandingDue)

	// record stays live, room stays held
	var g models.Guest
	require.NoError(t, db.First(&g, guest.ID).Error)
	assert.True(t, g.IsLive())
	assert.True(t, roomByNumber(t, db, "101").Occupied)
}

func TestCheckoutWithDues(t *testing.T) {
	db := testDB(t)
	seedRooms(t, db, "101")
	svc := NewGuestService(db)

	guest, err := svc.CheckIn(CheckInInput{
		Name:        "Ali",
		Rooms:       []string{"101"},
		RoomRent:    3500,
		CheckInDate: utils.Today(),
	})
	require.NoError(t, err)

	res, err := svc.Checkout(guest.ID, CheckoutInput{AllowDues: true})
	require.NoError(t, err)

	assert.Equal(t, models.StatusCheckedOut, res.Guest.Status)
	assert.True(t, res.Guest.CheckedOut)
	assert.NotEmpty(t, res.Guest.CheckOutDate)
	assert.NotEmpty(t, res.Guest.CheckOutTime)

	// same-day stay still bills one night
	assert.Equal(t, 3500.0, res.Totals.Room)
	assert.Equal(t, 3500.0, res.Totals.Due)

	// one snapshot written, room released
	var snaps []models.StaySnapshot
	require.NoError(t, db.Where("guest_id = ?", guest.ID).Find(&snaps).Error)
	require.Len(t, snaps, 1)
	assert.Equal(t, guest.RoomNo, snaps[0].RoomNo)
	assert.False(t, roomByNumber(t, db, "101").Occupied)
}

func TestCheckoutPersistsStagedFields(t *testing.T) {
	db := testDB(t)
	seedRooms(t, db, "101")
	svc := NewGuestService(db)

	guest, err := svc.CheckIn(CheckInInput{Name: "Ali", Rooms: []string{"101"}, RoomRent: 3500})
	require.NoError(t, err)

	rate := 4200.0
	discP := 10.0
	res, err := svc.Checkout(guest.ID, CheckoutInput{
		AllowDues: true,
		Stage:     StageInput{Rate: &rate, DiscountPercent: &discP},
	})
	require.NoError(t, err)
	assert.Equal(t, 4200.0, res.Guest.RoomRent)
	assert.Equal(t, 10.0, res.Guest.DiscountPercent)
	assert.Equal(t, 4200.0, res.Snapshot.Rate)
}

func TestClosedRecordNotEditable(t *testing.T) {
	db := testDB(t)
	seedRooms(t, db, "101")
	svc := NewGuestService(db)

	guest, err := svc.CheckIn(CheckInInput{Name: "Ali", Rooms: []string{"101"}})
	require.NoError(t, err)
	_, err = svc.Checkout(guest.ID, CheckoutInput{AllowDues: true})
	require.NoError(t, err)

	name := "Renamed"
	_, err = svc.Update(guest.ID, UpdateInput{Name: &name})
	assert.ErrorIs(t, err, ErrGuestClosed)

	_, err = svc.Checkout(guest.ID, CheckoutInput{AllowDues: true})
	assert.ErrorIs(t, err, ErrGuestClosed)
}

func TestReCheckInSeed(t *testing.T) {
	db := testDB(t)
	seedRooms(t, db, "101")
	svc := NewGuestService(db)

	guest, err := svc.CheckIn(CheckInInput{
		Name:       "Ali",
		NationalID: "42101-1234567-1",
		Rooms:      []string{"101"},
		RoomRent:   3500,
	})
	require.NoError(t, err)
	_, err = svc.Checkout(guest.ID, CheckoutInput{AllowDues: true})
	require.NoError(t, err)

	draft, err := svc.ReCheckInSeed(guest.ID)
	require.NoError(t, err)

	assert.Zero(t, draft.ID)
	assert.Equal(t, "Ali", draft.Name)
	assert.Equal(t, "42101-1234567-1", draft.NationalID)
	assert.Equal(t, utils.Today(), draft.CheckInDate)
	assert.Empty(t, draft.CheckOutDate)
	assert.False(t, draft.CheckedOut)

	// the historical record is untouched
	var prev models.Guest
	require.NoError(t, db.First(&prev, guest.ID).Error)
	assert.Equal(t, models.StatusCheckedOut, prev.Status)
}

func TestDeleteCascades(t *testing.T) {
	db := testDB(t)
	seedRooms(t, db, "101")
	svc := NewGuestService(db)
	orders := NewOrderService(db)
	pays := NewPaymentService(db)

	guest, err := svc.CheckIn(CheckInInput{Name: "Ali", Rooms: []string{"101"}, RoomRent: 3500})
	require.NoError(t, err)
	_, err = orders.Create(OrderInput{GuestID: guest.ID, Item: "dinner", Amount: 1200})
	require.NoError(t, err)
	_, err = pays.Create(PaymentInput{GuestID: guest.ID, Amount: 1000})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(guest.ID))

	var n int64
	db.Model(&models.Order{}).Where("guest_id = ?", guest.ID).Count(&n)
	assert.Zero(t, n)
	db.Model(&models.Payment{}).Where("guest_id = ?", guest.ID).Count(&n)
	assert.Zero(t, n)
	assert.False(t, roomByNumber(t, db, "101").Occupied)

	assert.ErrorIs(t, svc.Delete(guest.ID), ErrGuestNotFound)
}

func TestListDerivedColumns(t *testing.T) {
	db := testDB(t)
	seedRooms(t, db, "101", "102", "201")
	svc := NewGuestService(db)

	multi, err := svc.CheckIn(CheckInInput{
		Name:        "Multi Room",
		Rooms:       []string{"101", "102"},
		CheckInDate: utils.Today(),
	})
	require.NoError(t, err)

	arrival, err := svc.CheckIn(CheckInInput{
		Name:   "Early Bird",
		Status: models.StatusArrival,
	})
	require.NoError(t, err)

	closed, err := svc.CheckIn(CheckInInput{Name: "Closed", Rooms: []string{"201"}})
	require.NoError(t, err)
	_, err = svc.Checkout(closed.ID, CheckoutInput{AllowDues: true})
	require.NoError(t, err)

	list, err := svc.List("", false)
	require.NoError(t, err)
	require.Len(t, list, 3)

	byID := map[uint]GuestListItem{}
	for _, it := range list {
		byID[it.ID] = it
	}

	// live checked-in guest bills against today (same day = 1 night)
	assert.Equal(t, 1.0, byID[multi.ID].Nights)
	assert.Equal(t, 2, byID[multi.ID].RoomCount)

	// arrivals bill nothing
	assert.Equal(t, 0.0, byID[arrival.ID].Nights)

	// closed records use their own window
	assert.Equal(t, 1.0, byID[closed.ID].Nights)

	// newest first
	assert.Equal(t, closed.ID, list[0].ID)

	live, err := svc.List("", true)
	require.NoError(t, err)
	assert.Len(t, live, 2)

	arrivals, err := svc.List(models.StatusArrival, false)
	require.NoError(t, err)
	require.Len(t, arrivals, 1)
	assert.Equal(t, arrival.ID, arrivals[0].ID)
}

func mustTime(t *testing.T, v string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02T15:04:05", v, time.Local)
	require.NoError(t, err)
	return ts
}

func TestLateCheckoutBump(t *testing.T) {
	evening := mustTime(t, "2025-03-10T19:30:00")
	noon := mustTime(t, "2025-03-10T12:00:00")

	assert.True(t, LateCheckoutBump(evening, "2025-03-10"))
	assert.True(t, LateCheckoutBump(evening, "")) // empty defaults to today
	assert.False(t, LateCheckoutBump(evening, "2025-03-11"))
	assert.False(t, LateCheckoutBump(noon, "2025-03-10"))
}
