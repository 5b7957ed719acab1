package services

import (
	"errors"

	"gorm.io/gorm"

	"frontdesk-backend/models"
	"frontdesk-backend/utils"
)

// ErrOverpayment flags a payment larger than the record's current due. The
// caller resends with ConfirmOverpay after the operator accepts the warning;
// the advance is then recorded and due goes negative.
var ErrOverpayment = errors.New("overpayment_requires_confirmation")

// PaymentService records money received against guests.
type PaymentService struct {
	DB     *gorm.DB
	Ledger *LedgerService
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db, Ledger: NewLedgerService(db)}
}

type PaymentInput struct {
	GuestID        uint    `json:"guestId"`
	Amount         float64 `json:"amount"`
	Method         string  `json:"method"`
	Ref            string  `json:"ref"`
	Date           string  `json:"date"`
	Time           string  `json:"time"`
	Notes          string  `json:"notes"`
	ConfirmOverpay bool    `json:"confirmOverpay"`
}

func (s *PaymentService) Create(in PaymentInput) (models.Payment, error) {
	if in.Amount <= 0 {
		return models.Payment{}, ErrAmountNotPositive
	}
	var guest models.Guest
	if err := s.DB.First(&guest, in.GuestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Payment{}, ErrGuestNotFound
		}
		return models.Payment{}, err
	}

	if !in.ConfirmOverpay {
		due, err := s.Ledger.CurrentDue(in.GuestID)
		if err != nil {
			return models.Payment{}, err
		}
		if in.Amount > due {
			return models.Payment{}, ErrOverpayment
		}
	}

	pay := models.Payment{
		GuestID: in.GuestID,
		Amount:  in.Amount,
		Method:  in.Method,
		Ref:     in.Ref,
		Date:    utils.DateOnly(in.Date),
		Time:    in.Time,
		Notes:   in.Notes,
	}
	if pay.Method == "" {
		pay.Method = "cash"
	}
	if pay.Ref == "" {
		if ref, err := utils.GenerateReceiptRef(8); err == nil {
			pay.Ref = ref
		}
	}
	if pay.Date == "" {
		pay.Date = utils.Today()
	}
	if pay.Time == "" {
		pay.Time = utils.NowTime()
	}
	if err := s.DB.Create(&pay).Error; err != nil {
		return models.Payment{}, err
	}
	return pay, nil
}

// PayFullDue records one payment that zeroes the record's current balance.
func (s *PaymentService) PayFullDue(guestID uint, method string) (models.Payment, error) {
	due, err := s.Ledger.CurrentDue(guestID)
	if err != nil {
		return models.Payment{}, err
	}
	if due <= 0 {
		return models.Payment{}, errors.New("nothing_due")
	}
	return s.Create(PaymentInput{
		GuestID:        guestID,
		Amount:         due,
		Method:         method,
		ConfirmOverpay: true,
	})
}

func (s *PaymentService) Delete(paymentID uint) error {
	res := s.DB.Delete(&models.Payment{}, paymentID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("payment_not_found")
	}
	return nil
}

func (s *PaymentService) ForGuest(guestID uint) ([]models.Payment, error) {
	var pays []models.Payment
	err := s.DB.Where("guest_id = ?", guestID).Order("date, time").Find(&pays).Error
	return pays, err
}
