package pizzeriaserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	storefrontmapper "github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/adapters/http/mapper"
	storefrontports "github.com/Apurer/go-gin-pizzeria/internal/domains/storefront/ports"
	apierrors "github.com/Apurer/go-gin-pizzeria/internal/shared/errors"
)

// StorefrontAPI serves opening hours and availability.
type StorefrontAPI struct {
	service storefrontports.Service
}

func NewStorefrontAPI(service storefrontports.Service) StorefrontAPI {
	return StorefrontAPI{service: service}
}

// Get /v1/storefront/status
// Reports whether the store is open right now
func (api *StorefrontAPI) GetStatus(c *gin.Context) {
	status, err := api.service.Status(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, storefrontmapper.FromStatus(status))
}

// Get /v1/storefront/schedule
func (api *StorefrontAPI) GetSchedule(c *gin.Context) {
	schedule, err := api.service.Schedule(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, storefrontmapper.FromDomainSchedule(schedule))
}

// Put /v1/storefront/schedule
// Replaces the weekly schedule
func (api *StorefrontAPI) UpdateSchedule(c *gin.Context) {
	var payload storefrontmapper.Schedule
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	saved, err := api.service.UpdateSchedule(c.Request.Context(), storefrontmapper.ToDomainSchedule(payload))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, storefrontmapper.FromDomainSchedule(saved))
}
