package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/application/dedup"
	catalogsync "github.com/SUPRAJ-8/NepoSMM-sub002/internal/application/sync"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/catalog"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/provider"
)

// CatalogSyncService runs catalog syncs against provider panels
type CatalogSyncService interface {
	SyncAll(ctx context.Context) (*catalogsync.Report, error)
	SyncProvider(ctx context.Context, p *provider.Provider) catalogsync.ProviderReport
}

// DedupService collapses duplicate service listings
type DedupService interface {
	Deduplicate(ctx context.Context) (*dedup.Report, error)
}

// SyncHandler exposes the sync and deduplication operations
type SyncHandler struct {
	BaseHandler
	syncService    CatalogSyncService
	dedupService   DedupService
	providerRepo   provider.Repository
	resolutionRepo catalog.DedupResolutionRepository
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(
	syncService CatalogSyncService,
	dedupService DedupService,
	providerRepo provider.Repository,
	resolutionRepo catalog.DedupResolutionRepository,
) *SyncHandler {
	return &SyncHandler{
		syncService:    syncService,
		dedupService:   dedupService,
		providerRepo:   providerRepo,
		resolutionRepo: resolutionRepo,
	}
}

// RegisterRoutes registers sync routes
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sync := rg.Group("/sync")
	{
		sync.POST("/catalog", h.SyncCatalog)
		sync.POST("/deduplicate", h.Deduplicate)
		sync.GET("/resolutions", h.ListResolutions)
	}
}

// SyncCatalogRequest optionally narrows a sync run to one provider
type SyncCatalogRequest struct {
	ProviderID *uuid.UUID `json:"provider_id"`
}

// SyncCatalog runs a catalog sync, either for every active provider or for
// the single provider named in the request body
func (h *SyncHandler) SyncCatalog(c *gin.Context) {
	var req SyncCatalogRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	ctx := c.Request.Context()

	if req.ProviderID != nil {
		p, err := h.providerRepo.FindByID(ctx, *req.ProviderID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		report := h.syncService.SyncProvider(ctx, p)
		h.Success(c, report)
		return
	}

	report, err := h.syncService.SyncAll(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// Deduplicate collapses duplicate active service listings and returns the
// resolution report
func (h *SyncHandler) Deduplicate(c *gin.Context) {
	report, err := h.dedupService.Deduplicate(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, report)
}

// DedupResolutionResponse represents one resolved duplicate group
type DedupResolutionResponse struct {
	ID                    int64     `json:"id"`
	ProviderID            uuid.UUID `json:"provider_id"`
	DisplayName           string    `json:"display_name"`
	DisplayCategory       string    `json:"display_category"`
	Rate                  string    `json:"rate"`
	CanonicalServiceID    int64     `json:"canonical_service_id"`
	DeactivatedServiceIDs string    `json:"deactivated_service_ids"`
	ResolvedAt            time.Time `json:"resolved_at"`
}

// ListResolutions returns the most recent dedup resolutions, newest first
func (h *SyncHandler) ListResolutions(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			h.BadRequest(c, "limit must be between 1 and 500")
			return
		}
		limit = parsed
	}

	resolutions, err := h.resolutionRepo.FindRecent(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]DedupResolutionResponse, 0, len(resolutions))
	for _, r := range resolutions {
		resp = append(resp, DedupResolutionResponse{
			ID:                    r.ID,
			ProviderID:            r.ProviderID,
			DisplayName:           r.DisplayName,
			DisplayCategory:       r.DisplayCategory,
			Rate:                  r.Rate,
			CanonicalServiceID:    r.CanonicalServiceID,
			DeactivatedServiceIDs: r.DeactivatedServiceIDs,
			ResolvedAt:            r.ResolvedAt,
		})
	}
	h.Success(c, resp)
}
