package services

import (
	"errors"

	"gorm.io/gorm"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"
)

var ErrAmountNotPositive = errors.New("amount_not_positive")

// OrderService records restaurant/room-service charge lines against guests.
type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

type OrderInput struct {
	GuestID uint    `json:"guestId"`
	Item    string  `json:"item"`
	Amount  float64 `json:"amount"`
	Date    string  `json:"date"`
	Time    string  `json:"time"`
	Note    string  `json:"note"`
}

func (s *OrderService) Create(in OrderInput) (models.Order, error) {
	if in.Amount <= 0 {
		return models.Order{}, ErrAmountNotPositive
	}
	var guest models.Guest
	if err := s.DB.First(&guest, in.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrGuestNotFound
		}
		return models.Order{}, err
	}

	order := models.Order{
		GuestID: in.GuestID,
		Item:    in.Item,
		Amount:  in.Amount,
		Date:    utils.DateOnly(in.Date),
		Time:    in.Time,
		Note:    in.Note,
	}
	if order.Date == "" {
		order.Date = utils.Today()
	}
	if order.Time == "" {
		order.Time = utils.NowTime()
	}
	if err := s.DB.Create(&order).Error; err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *OrderService) Delete(orderID uint) error {
	res := s.DB.Delete(&models.Order{}, orderID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("order_not_found")
	}
	return nil
}

func (s *OrderService) ForGuest(guestID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Where("guest_id = ?", guestID).Order("date, time").Find(&orders).Error
	return orders, err
}
