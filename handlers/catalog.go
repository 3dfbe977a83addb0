package handlers

import (
	"net/http"

	"styledecor/models"
	"styledecor/services/catalog"
	"styledecor/utils"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	Service *catalog.Service
}

func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{Service: svc}
}

func (h *CatalogHandler) CoverageAreasHandler(c *gin.Context) {
	areas, err := h.Service.CoverageAreas(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, areas)
}

func (h *CatalogHandler) ListServicesHandler(c *gin.Context) {
	services, err := h.Service.Services(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *CatalogHandler) CreateServiceHandler(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	var in models.ServiceInput
	if !bindJSON(c, &in) {
		return
	}
	svc, err := h.Service.CreateService(c.Request.Context(), caller, in)
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": svc.ID, "service": svc})
}

func (h *CatalogHandler) ListPackagesHandler(c *gin.Context) {
	packages, err := h.Service.Packages(c.Request.Context(), c.Query("service"))
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, packages)
}

func (h *CatalogHandler) PopularPackagesHandler(c *gin.Context) {
	popular, err := h.Service.PopularPackages(c.Request.Context())
	if err != nil {
		utils.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, popular)
}
