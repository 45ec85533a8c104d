package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	availabilityRepo "strbooking/database/repository/availability"
	propertyRepo "strbooking/database/repository/property"
	"strbooking/models"
	bookingSvc "strbooking/services/booking"
	"strbooking/services/payment"
	"strbooking/services/tasks"
	"strbooking/utils"
)

// Admin CRUD over properties. Everything here sits behind the admin
// token middleware.

func CreatePropertyHandler(repo propertyRepo.PropertyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p models.Property
		if err := c.ShouldBindJSON(&p); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid property", err.Error())
			return
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		p.CreatedAt = time.Now()

		id, err := repo.Create(c.Request.Context(), p)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	}
}

func GetPropertyHandler(repo propertyRepo.PropertyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func ListPropertiesHandler(repo propertyRepo.PropertyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		activeOnly := c.DefaultQuery("active", "false") == "true"
		list, err := repo.List(c.Request.Context(), activeOnly)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"properties": list})
	}
}

func UpdatePropertyHandler(repo propertyRepo.PropertyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p models.Property
		if err := c.ShouldBindJSON(&p); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid property", err.Error())
			return
		}
		p.ID = c.Param("id")

		if err := repo.Update(c.Request.Context(), p); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}

func DeletePropertyHandler(repo propertyRepo.PropertyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

// AddCohostHandler attaches a co-host with a validated split config.
func AddCohostHandler(repo propertyRepo.PropertyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cohost models.Cohost
		if err := c.ShouldBindJSON(&cohost); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid cohost", err.Error())
			return
		}
		if err := payment.ValidateSplitConfig(cohost.SplitType, cohost.SplitValue); err != nil {
			respondServiceError(c, err)
			return
		}
		if cohost.ID == "" {
			cohost.ID = uuid.New().String()
		}
		cohost.Active = true
		cohost.CreatedAt = time.Now()

		if err := repo.AddCohost(c.Request.Context(), c.Param("id"), cohost); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cohost)
	}
}

func RemoveCohostHandler(repo propertyRepo.PropertyRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.RemoveCohost(c.Request.Context(), c.Param("id"), c.Param("cohostId")); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "removed"})
	}
}

// SetPriceOverrideHandler stores a per-night rate; a null rate clears it.
func SetPriceOverrideHandler(repo availabilityRepo.AvailabilityRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Date string   `json:"date" binding:"required"`
			Rate *float64 `json:"rate"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid override", err.Error())
			return
		}
		if input.Rate != nil && *input.Rate < 0 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid override", "rate must not be negative")
			return
		}

		if err := repo.SetPriceOverride(c.Request.Context(), c.Param("id"), input.Date, input.Rate); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "saved"})
	}
}

// TriggerCalendarSyncHandler enqueues an immediate feed import for one
// property, ahead of the recurring schedule.
func TriggerCalendarSyncHandler(queue bookingSvc.TaskQueue) gin.HandlerFunc {
	return func(c *gin.Context) {
		task, opts, err := tasks.NewCalendarSyncTask(c.Param("id"))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		if _, err := queue.Enqueue(task, opts...); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"status": "sync scheduled"})
	}
}
