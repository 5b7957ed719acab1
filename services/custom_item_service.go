package services

import (
	"errors"

	"gorm.io/gorm"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"
)

// CustomItemService records signed one-off adjustments: positive for extra
// charges (damages, late fees), negative for goodwill credits.
type CustomItemService struct {
	DB *gorm.DB
}

func NewCustomItemService(db *gorm.DB) *CustomItemService {
	return &CustomItemService{DB: db}
}

type CustomItemInput struct {
	GuestID     uint    `json:"guestId"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	Time        string  `json:"time"`
	Note        string  `json:"note"`
}

func (s *CustomItemService) Create(in CustomItemInput) (models.CustomItem, error) {
	if in.Description == "" {
		return models.CustomItem{}, errors.New("description_required")
	}
	if in.Amount == 0 {
		return models.CustomItem{}, errors.New("amount_required")
	}
	var guest models.Guest
	if err := s.DB.First(&guest, in.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CustomItem{}, ErrGuestNotFound
		}
		return models.CustomItem{}, err
	}

	item := models.CustomItem{
		GuestID:     in.GuestID,
		Description: in.Description,
		Amount:      in.Amount,
		Date:        utils.DateOnly(in.Date),
		Time:        in.Time,
		Note:        in.Note,
	}
	if item.Date == "" {
		item.Date = utils.Today()
	}
	if item.Time == "" {
		item.Time = utils.NowTime()
	}
	if err := s.DB.Create(&item).Error; err != nil {
		return models.CustomItem{}, err
	}
	return item, nil
}

func (s *CustomItemService) Delete(itemID uint) error {
	res := s.DB.Delete(&models.CustomItem{}, itemID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("custom_item_not_found")
	}
	return nil
}

func (s *CustomItemService) ForGuest(guestID uint) ([]models.CustomItem, error) {
	var items []models.CustomItem
	err := s.DB.Where("guest_id = ?", guestID).Order("date, time").Find(&items).Error
	return items, err
}
