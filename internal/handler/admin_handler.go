package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nilgiri-travels/service-booking/internal/application"
	"github.com/nilgiri-travels/service-booking/internal/auth"
	bookingDomain "github.com/nilgiri-travels/service-booking/internal/domain/booking"
	"github.com/nilgiri-travels/service-booking/internal/domain/catalog"
	"github.com/nilgiri-travels/service-booking/internal/middleware"
	"github.com/nilgiri-travels/service-booking/internal/response"
)

// AdminHandler serves the admin area: login, booking management and the
// content/pricing CRUD behind the public site.
type AdminHandler struct {
	bookings          *application.BookingService
	pricing           *application.PricingService
	catalog           *application.CatalogService
	settings          *application.SettingsService
	vouchers          *application.VoucherService
	jwtManager        *auth.JWTManager
	adminUsername     string
	adminPasswordHash string
}

// NewAdminHandler creates a new AdminHandler. The admin credential is a
// single username plus bcrypt hash injected from configuration.
func NewAdminHandler(
	bookings *application.BookingService,
	pricing *application.PricingService,
	catalogSvc *application.CatalogService,
	settings *application.SettingsService,
	vouchers *application.VoucherService,
	jwtManager *auth.JWTManager,
	adminUsername, adminPasswordHash string,
) *AdminHandler {
	return &AdminHandler{
		bookings:          bookings,
		pricing:           pricing,
		catalog:           catalogSvc,
		settings:          settings,
		vouchers:          vouchers,
		jwtManager:        jwtManager,
		adminUsername:     adminUsername,
		adminPasswordHash: adminPasswordHash,
	}
}

// RegisterRoutes registers the admin routes on the given group. Everything
// except login sits behind the session middleware.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/login", h.Login)

	admin := r.Group("")
	admin.Use(middleware.AdminAuthMiddleware(h.jwtManager))
	{
		admin.GET("/bookings", h.ListBookings)
		admin.GET("/bookings/schedule", h.ListBookingsForDate)
		admin.GET("/bookings/stats", h.BookingStats)
		admin.GET("/bookings/:id", h.GetBooking)
		admin.POST("/bookings/:id/confirm", h.ConfirmBooking)
		admin.POST("/bookings/:id/complete", h.CompleteBooking)
		admin.POST("/bookings/:id/cancel", h.CancelBooking)
		admin.GET("/vouchers/:number", h.DownloadVoucher)

		admin.GET("/seasons", h.ListSeasons)
		admin.POST("/seasons", h.CreateSeason)
		admin.PUT("/seasons/:id", h.UpdateSeason)
		admin.DELETE("/seasons/:id", h.DeleteSeason)

		admin.GET("/packages/:package_id/prices", h.ListPrices)
		admin.POST("/prices", h.CreatePrice)
		admin.PUT("/prices/:id", h.UpdatePrice)
		admin.DELETE("/prices/:id", h.DeletePrice)

		admin.GET("/packages", h.ListPackages)
		admin.POST("/packages", h.CreatePackage)
		admin.PUT("/packages/:package_id", h.UpdatePackage)
		admin.DELETE("/packages/:package_id", h.DeletePackage)

		admin.GET("/temples", h.ListTemples)
		admin.POST("/temples", h.CreateTemple)
		admin.PUT("/temples/:id", h.UpdateTemple)
		admin.DELETE("/temples/:id", h.DeleteTemple)

		admin.GET("/fleet", h.ListFleet)
		admin.POST("/fleet", h.CreateFleetVehicle)
		admin.PUT("/fleet/:id", h.UpdateFleetVehicle)
		admin.DELETE("/fleet/:id", h.DeleteFleetVehicle)

		admin.GET("/settings", h.ListSettings)
		admin.PUT("/settings", h.PutSetting)
		admin.DELETE("/settings/:section/:key", h.DeleteSetting)

		admin.POST("/media", h.UploadMedia)
		admin.DELETE("/media/:id", h.DeleteMedia)
	}
}

// --- Session ---

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if req.Username != h.adminUsername || !auth.CheckPassword(h.adminPasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.jwtManager.Generate(req.Username)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"token": token})
}

// --- Bookings ---

// ListBookings handles GET /api/v1/admin/bookings.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	page, limit := parsePagination(c)

	items, total, err := h.bookings.ListAllBookings(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, items, total, page, limit)
}

// ListBookingsForDate handles GET /api/v1/admin/bookings/schedule?date=... and
// returns the trips running on one day.
func (h *AdminHandler) ListBookingsForDate(c *gin.Context) {
	date, err := time.ParseInLocation(bookingDomain.DateLayout, c.Query("date"), time.Local)
	if err != nil {
		response.BadRequest(c, "date query parameter must be YYYY-MM-DD")
		return
	}

	items, err := h.bookings.ListBookingsForDate(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// BookingStats handles GET /api/v1/admin/bookings/stats.
func (h *AdminHandler) BookingStats(c *gin.Context) {
	stats, err := h.bookings.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// GetBooking handles GET /api/v1/admin/bookings/:id.
func (h *AdminHandler) GetBooking(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.bookings.GetBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ConfirmBooking handles POST /api/v1/admin/bookings/:id/confirm, for advance
// payments taken outside the gateway.
func (h *AdminHandler) ConfirmBooking(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.bookings.ConfirmBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CompleteBooking handles POST /api/v1/admin/bookings/:id/complete.
func (h *AdminHandler) CompleteBooking(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.bookings.CompleteBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// CancelBooking handles POST /api/v1/admin/bookings/:id/cancel.
func (h *AdminHandler) CancelBooking(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.bookings.CancelBooking(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DownloadVoucher handles GET /api/v1/admin/vouchers/:number, returning the
// booking voucher as a PDF attachment.
func (h *AdminHandler) DownloadVoucher(c *gin.Context) {
	number := c.Param("number")

	pdf, err := h.vouchers.GenerateVoucher(c.Request.Context(), number)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", number))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// --- Seasons ---

// ListSeasons handles GET /api/v1/admin/seasons.
func (h *AdminHandler) ListSeasons(c *gin.Context) {
	items, err := h.pricing.ListSeasons(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// CreateSeason handles POST /api/v1/admin/seasons.
func (h *AdminHandler) CreateSeason(c *gin.Context) {
	var input application.SeasonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.pricing.CreateSeason(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateSeason handles PUT /api/v1/admin/seasons/:id.
func (h *AdminHandler) UpdateSeason(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input application.SeasonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.pricing.UpdateSeason(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteSeason handles DELETE /api/v1/admin/seasons/:id.
func (h *AdminHandler) DeleteSeason(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.pricing.DeleteSeason(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// --- Prices ---

// ListPrices handles GET /api/v1/admin/packages/:package_id/prices.
func (h *AdminHandler) ListPrices(c *gin.Context) {
	packageID, ok := parseUUIDParam(c, "package_id")
	if !ok {
		return
	}

	items, err := h.pricing.ListPrices(c.Request.Context(), packageID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// CreatePrice handles POST /api/v1/admin/prices.
func (h *AdminHandler) CreatePrice(c *gin.Context) {
	var input application.PriceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.pricing.CreatePrice(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdatePrice handles PUT /api/v1/admin/prices/:id.
func (h *AdminHandler) UpdatePrice(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input application.PriceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.pricing.UpdatePrice(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeletePrice handles DELETE /api/v1/admin/prices/:id.
func (h *AdminHandler) DeletePrice(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.pricing.DeletePrice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// --- Packages ---

// ListPackages handles GET /api/v1/admin/packages.
func (h *AdminHandler) ListPackages(c *gin.Context) {
	items, err := h.catalog.ListAllPackages(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// CreatePackage handles POST /api/v1/admin/packages.
func (h *AdminHandler) CreatePackage(c *gin.Context) {
	var input application.PackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.catalog.CreatePackage(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdatePackage handles PUT /api/v1/admin/packages/:package_id.
func (h *AdminHandler) UpdatePackage(c *gin.Context) {
	id, ok := parseUUIDParam(c, "package_id")
	if !ok {
		return
	}

	var input application.PackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.catalog.UpdatePackage(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeletePackage handles DELETE /api/v1/admin/packages/:package_id.
func (h *AdminHandler) DeletePackage(c *gin.Context) {
	id, ok := parseUUIDParam(c, "package_id")
	if !ok {
		return
	}

	if err := h.catalog.DeletePackage(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// --- Temples ---

// ListTemples handles GET /api/v1/admin/temples.
func (h *AdminHandler) ListTemples(c *gin.Context) {
	items, err := h.catalog.ListAllTemples(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// CreateTemple handles POST /api/v1/admin/temples.
func (h *AdminHandler) CreateTemple(c *gin.Context) {
	var input application.TempleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.catalog.CreateTemple(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateTemple handles PUT /api/v1/admin/temples/:id.
func (h *AdminHandler) UpdateTemple(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input application.TempleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.catalog.UpdateTemple(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteTemple handles DELETE /api/v1/admin/temples/:id.
func (h *AdminHandler) DeleteTemple(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteTemple(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// --- Fleet ---

// ListFleet handles GET /api/v1/admin/fleet.
func (h *AdminHandler) ListFleet(c *gin.Context) {
	items, err := h.catalog.ListAllFleet(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// CreateFleetVehicle handles POST /api/v1/admin/fleet.
func (h *AdminHandler) CreateFleetVehicle(c *gin.Context) {
	var input application.FleetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.catalog.CreateFleetVehicle(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateFleetVehicle handles PUT /api/v1/admin/fleet/:id.
func (h *AdminHandler) UpdateFleetVehicle(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var input application.FleetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.catalog.UpdateFleetVehicle(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteFleetVehicle handles DELETE /api/v1/admin/fleet/:id.
func (h *AdminHandler) DeleteFleetVehicle(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteFleetVehicle(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// --- Settings ---

// ListSettings handles GET /api/v1/admin/settings.
func (h *AdminHandler) ListSettings(c *gin.Context) {
	items, err := h.settings.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, items)
}

// PutSetting handles PUT /api/v1/admin/settings.
func (h *AdminHandler) PutSetting(c *gin.Context) {
	var input application.SettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.settings.Put(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteSetting handles DELETE /api/v1/admin/settings/:section/:key.
func (h *AdminHandler) DeleteSetting(c *gin.Context) {
	if err := h.settings.Delete(c.Request.Context(), c.Param("section"), c.Param("key")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// --- Media ---

// UploadMedia handles POST /api/v1/admin/media as a multipart form with
// owner_kind, owner_id, caption and file fields.
func (h *AdminHandler) UploadMedia(c *gin.Context) {
	ownerID, err := uuid.Parse(c.PostForm("owner_id"))
	if err != nil {
		response.BadRequest(c, "invalid owner ID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file field is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	asset, err := h.catalog.UploadMedia(
		c.Request.Context(),
		catalog.MediaOwner(c.PostForm("owner_kind")),
		ownerID,
		fileHeader.Filename,
		c.PostForm("caption"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, asset)
}

// DeleteMedia handles DELETE /api/v1/admin/media/:id.
func (h *AdminHandler) DeleteMedia(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalog.DeleteMedia(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// parseUUIDParam parses a UUID path parameter, writing a 400 on failure.
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
