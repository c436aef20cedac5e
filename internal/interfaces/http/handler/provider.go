package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/provider"
)

// ProviderHandler handles provider management API endpoints
type ProviderHandler struct {
	BaseHandler
	repo provider.Repository
}

// NewProviderHandler creates a new ProviderHandler
func NewProviderHandler(repo provider.Repository) *ProviderHandler {
	return &ProviderHandler{repo: repo}
}

// RegisterRoutes registers provider routes
func (h *ProviderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	providers := rg.Group("/providers")
	{
		providers.GET("", h.List)
		providers.GET("/:id", h.Get)
		providers.POST("", h.Create)
	}
}

// CreateProviderRequest represents the payload for registering a provider
type CreateProviderRequest struct {
	Name     string `json:"name" binding:"required"`
	APIURL   string `json:"api_url" binding:"required,url"`
	APIKey   string `json:"api_key" binding:"required"`
	Currency string `json:"currency"`
}

// ProviderResponse represents a provider in API responses.
// The API key never leaves the server.
type ProviderResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	APIURL       string     `json:"api_url"`
	Currency     string     `json:"currency"`
	Status       string     `json:"status"`
	SyncStatus   string     `json:"sync_status"`
	SyncError    string     `json:"sync_error,omitempty"`
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func toProviderResponse(p *provider.Provider) ProviderResponse {
	return ProviderResponse{
		ID:           p.ID,
		Name:         p.Name,
		APIURL:       p.APIURL,
		Currency:     p.Currency,
		Status:       string(p.Status),
		SyncStatus:   string(p.SyncStatus),
		SyncError:    p.SyncError,
		LastSyncedAt: p.LastSyncedAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// List returns all registered providers
func (h *ProviderHandler) List(c *gin.Context) {
	providers, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]ProviderResponse, 0, len(providers))
	for i := range providers {
		resp = append(resp, toProviderResponse(&providers[i]))
	}
	h.Success(c, resp)
}

// Get returns a single provider by id
func (h *ProviderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid provider id")
		return
	}

	p, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toProviderResponse(p))
}

// Create registers a new upstream provider
func (h *ProviderHandler) Create(c *gin.Context) {
	var req CreateProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	p, err := provider.NewProvider(req.Name, req.APIURL, req.APIKey, req.Currency)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.repo.Save(c.Request.Context(), p); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, toProviderResponse(p))
}
