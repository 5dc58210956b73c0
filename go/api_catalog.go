package pizzeriaserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/go-gin-pizzeria/internal/domains/catalog/ports"
)

// CatalogAPI serves the menu.
type CatalogAPI struct {
	service catalogports.Service
}

func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Get /v1/catalog
// Lists active items grouped by category
func (api *CatalogAPI) ListCatalog(c *gin.Context) {
	items, err := api.service.ListCatalog(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromItems(items))
}

// Get /v1/catalog/additions
func (api *CatalogAPI) ListAdditions(c *gin.Context) {
	additions, err := api.service.ListAdditions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromAdditions(additions))
}
