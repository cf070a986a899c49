package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nilgiri-travels/service-booking/internal/application"
	"github.com/nilgiri-travels/service-booking/internal/domain/catalog"
	"github.com/nilgiri-travels/service-booking/internal/response"
)

// CatalogHandler serves the public content endpoints: tour packages, temple
// pages, the fleet listing, site settings and attached media.
type CatalogHandler struct {
	catalog  *application.CatalogService
	settings *application.SettingsService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogSvc *application.CatalogService, settings *application.SettingsService) *CatalogHandler {
	return &CatalogHandler{catalog: catalogSvc, settings: settings}
}

// RegisterRoutes registers the public content routes on the given group.
func (h *CatalogHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/packages", h.ListPackages)
	r.GET("/packages/:slug", h.GetPackage)
	r.GET("/temples", h.ListTemples)
	r.GET("/temples/:slug", h.GetTemple)
	r.GET("/fleet", h.ListFleet)
	r.GET("/settings/:section", h.GetSettings)
	r.GET("/media/:kind/:owner_id", h.ListMedia)
}

// ListPackages handles GET /api/v1/packages.
func (h *CatalogHandler) ListPackages(c *gin.Context) {
	packages, err := h.catalog.ListPackages(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, packages)
}

// GetPackage handles GET /api/v1/packages/:slug.
func (h *CatalogHandler) GetPackage(c *gin.Context) {
	p, err := h.catalog.GetPackageBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, p)
}

// ListTemples handles GET /api/v1/temples.
func (h *CatalogHandler) ListTemples(c *gin.Context) {
	temples, err := h.catalog.ListTemples(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, temples)
}

// GetTemple handles GET /api/v1/temples/:slug.
func (h *CatalogHandler) GetTemple(c *gin.Context) {
	t, err := h.catalog.GetTempleBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, t)
}

// ListFleet handles GET /api/v1/fleet.
func (h *CatalogHandler) ListFleet(c *gin.Context) {
	vehicles, err := h.catalog.ListFleet(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, vehicles)
}

// GetSettings handles GET /api/v1/settings/:section, returning the section's
// key/value map for the site header, footer, contact or tracking blocks.
func (h *CatalogHandler) GetSettings(c *gin.Context) {
	values, err := h.settings.GetSection(c.Request.Context(), c.Param("section"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, values)
}

// ListMedia handles GET /api/v1/media/:kind/:owner_id.
func (h *CatalogHandler) ListMedia(c *gin.Context) {
	ownerID, err := uuid.Parse(c.Param("owner_id"))
	if err != nil {
		response.BadRequest(c, "invalid owner ID")
		return
	}

	assets, err := h.catalog.ListMedia(c.Request.Context(), catalog.MediaOwner(c.Param("kind")), ownerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, assets)
}
