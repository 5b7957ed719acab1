package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"frontdesk-backend/config"
	"frontdesk-backend/models"
)

// ----------------------------------------------------
// 1. Get Rooms (GET /api/rooms)
// ----------------------------------------------------

func GetRooms(c *gin.Context) {
	var rooms []models.Room
	config.DB.Order("number").Find(&rooms)

	c.JSON(http.StatusOK, rooms)
}

// ----------------------------------------------------
// 2. Create Room (POST /api/rooms)
// ----------------------------------------------------

func CreateRoom(c *gin.Context) {
	var room models.Room

	if err := c.ShouldBindJSON(&room); err != nil {
		log.Printf("JSON binding error (400): %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	room.Number = strings.TrimSpace(room.Number)
	if room.Number == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Room number is required.",
		})
		return
	}

	// New rooms always start vacant regardless of payload.
	room.Occupied = false
	room.Status = models.RoomVacant
	room.GuestID = nil

	if result := config.DB.Create(&room); result.Error != nil {
		if strings.Contains(result.Error.Error(), "Duplicate entry") || strings.Contains(result.Error.Error(), "UNIQUE constraint failed") {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": fmt.Sprintf("Room '%s' already exists.", room.Number),
			})
			return
		}

		log.Printf("DB error creating room: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Database error",
			"details": result.Error.Error(),
		})
		return
	}

	notifyChange()
	c.JSON(http.StatusCreated, room)
}

// ----------------------------------------------------
// 3. Update Room (PATCH /api/rooms/:id)
// ----------------------------------------------------

func UpdateRoom(c *gin.Context) {
	id := c.Param("id")
	var updateData map[string]interface{}

	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request payload",
			"details": err.Error(),
		})
		return
	}

	// Occupancy fields change only through the lifecycle controller.
	delete(updateData, "id")
	delete(updateData, "created_at")
	delete(updateData, "updated_at")
	delete(updateData, "deleted_at")
	delete(updateData, "occupied")
	delete(updateData, "guest_id")
	delete(updateData, "guestId")

	if err := config.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updateData).Error; err != nil {
		log.Printf("update error for room %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Update failed",
			"details": err.Error(),
		})
		return
	}

	notifyChange()
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Room updated successfully",
	})
}

// ----------------------------------------------------
// 4. Delete Room (DELETE /api/rooms/:id)
// ----------------------------------------------------

func DeleteRoom(c *gin.Context) {
	id := c.Param("id")

	var room models.Room
	if err := config.DB.Where("id = ?", id).First(&room).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Room with ID %s not found.", id),
		})
		return
	}
	if room.Occupied {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "Cannot delete an occupied room.",
		})
		return
	}

	// hard delete so the number can be reused
	if result := config.DB.Unscoped().Delete(&room); result.Error != nil {
		log.Printf("DB error deleting room %s: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete room.",
		})
		return
	}

	notifyChange()
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Room deleted successfully",
	})
}
