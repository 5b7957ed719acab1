package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"frontdesk-backend/config"
	"frontdesk-backend/models"
)

type hotelSettingsPayload struct {
	HotelName     string   `json:"hotelName"`
	Address       string   `json:"address"`
	Phone         string   `json:"phone"`
	Currency      string   `json:"currency"`
	CurrencyLabel string   `json:"currencyLabel"`
	Locale        string   `json:"locale"`
	TaxRate       *float64 `json:"taxRate"`
}

func GetHotelSettings(c *gin.Context) {
	var hotel models.HotelSetting
	if err := config.DB.First(&hotel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"hotel": models.HotelSetting{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"hotel": hotel})
}

func UpdateHotelSettings(c *gin.Context) {
	var payload hotelSettingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if payload.TaxRate != nil && (*payload.TaxRate < 0 || *payload.TaxRate > 100) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "taxRate must be between 0 and 100"})
		return
	}

	var hotel models.HotelSetting
	err := config.DB.First(&hotel).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	hotel.HotelName = payload.HotelName
	hotel.Address = payload.Address
	hotel.Phone = payload.Phone
	if payload.Currency != "" {
		hotel.Currency = payload.Currency
	}
	if payload.CurrencyLabel != "" {
		hotel.CurrencyLabel = payload.CurrencyLabel
	}
	if payload.Locale != "" {
		hotel.Locale = payload.Locale
	}
	if payload.TaxRate != nil {
		hotel.TaxRate = *payload.TaxRate
	}

	if err := config.DB.Save(&hotel).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	notifyChange()
	c.JSON(http.StatusOK, gin.H{"hotel": hotel})
}
