package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"booklyo/middleware"
	"booklyo/models"
	"booklyo/services/establishment"
	"booklyo/utils"
)

func writeEstablishmentError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, establishment.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "establishment not found", "")
	case errors.Is(err, establishment.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "not the establishment owner", "")
	case errors.Is(err, establishment.ErrInvalidInput):
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, fallback, err.Error())
	}
}

// RegisterEstablishment creates the caller's establishment.
func RegisterEstablishment(svc establishment.EstablishmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var est models.Establishment
		if err := c.ShouldBindJSON(&est); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		est.OwnerUID = middleware.UID(c)

		created, err := svc.Register(c.Request.Context(), &est)
		if err != nil {
			writeEstablishmentError(c, err, "failed to register establishment")
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// GetEstablishment returns the public profile by id.
func GetEstablishment(svc establishment.EstablishmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		est, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeEstablishmentError(c, err, "failed to fetch establishment")
			return
		}
		c.JSON(http.StatusOK, est)
	}
}

// GetMyEstablishment returns the authenticated owner's establishment.
func GetMyEstablishment(svc establishment.EstablishmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		est, err := svc.GetByOwnerUID(c.Request.Context(), middleware.UID(c))
		if err != nil {
			writeEstablishmentError(c, err, "failed to fetch establishment")
			return
		}
		c.JSON(http.StatusOK, est)
	}
}

// UpdateEstablishment updates the profile fields.
func UpdateEstablishment(svc establishment.EstablishmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var est models.Establishment
		if err := c.ShouldBindJSON(&est); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
		est.ID = c.Param("id")

		if err := svc.UpdateProfile(c.Request.Context(), &est, middleware.UID(c)); err != nil {
			writeEstablishmentError(c, err, "failed to update establishment")
			return
		}
		c.JSON(http.StatusOK, est)
	}
}

// DeleteEstablishment removes the establishment and its catalogue.
func DeleteEstablishment(svc establishment.EstablishmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id"), middleware.UID(c)); err != nil {
			writeEstablishmentError(c, err, "failed to delete establishment")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

// UpdateSchedule replaces the establishment's weekly hours.
func UpdateSchedule(svc establishment.EstablishmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ws models.WeeklySchedule
		if err := c.ShouldBindJSON(&ws); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		if err := svc.UpdateSchedule(c.Request.Context(), c.Param("id"), ws, middleware.UID(c)); err != nil {
			writeEstablishmentError(c, err, "failed to update schedule")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}

// UpdateStaffSchedule replaces one staff member's hours. Hours outside
// the establishment's are accepted with warnings in the response.
func UpdateStaffSchedule(svc establishment.EstablishmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var ws models.WeeklySchedule
		if err := c.ShouldBindJSON(&ws); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		warnings, err := svc.UpdateStaffSchedule(c.Request.Context(), c.Param("id"), c.Param("staffId"), ws, middleware.UID(c))
		if err != nil {
			writeEstablishmentError(c, err, "failed to update staff schedule")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated", "warnings": warnings})
	}
}

// UpsertServiceOffering adds or updates one catalogue entry.
func UpsertServiceOffering(svc establishment.EstablishmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var offering models.Service
		if err := c.ShouldBindJSON(&offering); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		saved, err := svc.UpsertService(c.Request.Context(), c.Param("id"), offering, middleware.UID(c))
		if err != nil {
			writeEstablishmentError(c, err, "failed to save service")
			return
		}
		c.JSON(http.StatusOK, saved)
	}
}

// RemoveServiceOffering deletes one catalogue entry.
func RemoveServiceOffering(svc establishment.EstablishmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.RemoveService(c.Request.Context(), c.Param("id"), c.Param("serviceId"), middleware.UID(c)); err != nil {
			writeEstablishmentError(c, err, "failed to remove service")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "removed"})
	}
}

// UpsertStaff adds or updates one staff member.
func UpsertStaff(svc establishment.EstablishmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var member models.StaffMember
		if err := c.ShouldBindJSON(&member); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}

		saved, err := svc.UpsertStaff(c.Request.Context(), c.Param("id"), member, middleware.UID(c))
		if err != nil {
			writeEstablishmentError(c, err, "failed to save staff member")
			return
		}
		c.JSON(http.StatusOK, saved)
	}
}

// RemoveStaff deletes one staff member.
func RemoveStaff(svc establishment.EstablishmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.RemoveStaff(c.Request.Context(), c.Param("id"), c.Param("staffId"), middleware.UID(c)); err != nil {
			writeEstablishmentError(c, err, "failed to remove staff member")
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "removed"})
	}
}
