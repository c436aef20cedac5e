package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/catalog"
)

// CatalogHandler exposes the read surface of the service catalog
type CatalogHandler struct {
	BaseHandler
	serviceRepo  catalog.ServiceRepository
	categoryRepo catalog.CategoryConfigRepository
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(serviceRepo catalog.ServiceRepository, categoryRepo catalog.CategoryConfigRepository) *CatalogHandler {
	return &CatalogHandler{
		serviceRepo:  serviceRepo,
		categoryRepo: categoryRepo,
	}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/services", h.ListServices)
	rg.GET("/services/:id", h.GetService)
	rg.GET("/categories", h.ListCategories)
}

// ServiceResponse represents a cataloged service in API responses
type ServiceResponse struct {
	ID                int64           `json:"id"`
	ProviderID        uuid.UUID       `json:"provider_id"`
	ExternalServiceID string          `json:"external_service_id"`
	DisplayName       string          `json:"display_name"`
	DisplayCategory   string          `json:"display_category"`
	Rate              decimal.Decimal `json:"rate"`
	Min               int             `json:"min"`
	Max               int             `json:"max"`
	AverageTime       string          `json:"average_time"`
	Description       string          `json:"description"`
	Status            string          `json:"status"`
	Verified          bool            `json:"verified"`
}

func toServiceResponse(s *catalog.Service) ServiceResponse {
	return ServiceResponse{
		ID:                s.ID,
		ProviderID:        s.ProviderID,
		ExternalServiceID: s.ExternalServiceID,
		DisplayName:       s.DisplayName,
		DisplayCategory:   s.DisplayCategory,
		Rate:              s.Rate,
		Min:               s.Min,
		Max:               s.Max,
		AverageTime:       s.AverageTime,
		Description:       s.Description,
		Status:            string(s.Status),
		Verified:          s.Verified,
	}
}

// CategoryResponse represents a display category in API responses
type CategoryResponse struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

// ListServices returns active services, optionally filtered by provider
// or display category
func (h *CatalogHandler) ListServices(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		services []catalog.Service
		err      error
	)

	if pid := c.Query("provider_id"); pid != "" {
		providerID, parseErr := uuid.Parse(pid)
		if parseErr != nil {
			h.BadRequest(c, "Invalid provider_id")
			return
		}
		services, err = h.serviceRepo.FindByProvider(ctx, providerID)
	} else {
		services, err = h.serviceRepo.FindActive(ctx)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	category := c.Query("category")
	resp := make([]ServiceResponse, 0, len(services))
	for i := range services {
		if category != "" && services[i].DisplayCategory != category {
			continue
		}
		resp = append(resp, toServiceResponse(&services[i]))
	}
	h.Success(c, resp)
}

// GetService returns a single service by id
func (h *CatalogHandler) GetService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.BadRequest(c, "Invalid service id")
		return
	}

	s, err := h.serviceRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toServiceResponse(s))
}

// ListCategories returns all display categories ordered for presentation
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	configs, err := h.categoryRepo.FindAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]CategoryResponse, 0, len(configs))
	for _, cfg := range configs {
		resp = append(resp, CategoryResponse{
			Name:      cfg.Name,
			SortOrder: cfg.SortOrder,
			IsActive:  cfg.IsActive,
		})
	}
	h.Success(c, resp)
}
