package dedup

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/catalog"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/order"
)

// Report summarizes one deduplication run
type Report struct {
	GroupsResolved      int           `json:"groups_resolved"`
	ServicesDeactivated int64         `json:"services_deactivated"`
	MalformedSkipped    int           `json:"malformed_skipped"`
	Duration            time.Duration `json:"duration"`
}

// Service resolves duplicate active listings. Two active services are
// duplicates when display name, display category, provider and rate all
// match. The service with the most orders survives; on a tie the lowest id
// does. Losers are deactivated, never deleted, and every resolved group
// leaves an audit record.
type Service struct {
	serviceRepo    catalog.ServiceRepository
	orderRepo      order.Repository
	resolutionRepo catalog.DedupResolutionRepository
	logger         *zap.Logger
}

// NewService creates a deduplication service
func NewService(
	serviceRepo catalog.ServiceRepository,
	orderRepo order.Repository,
	resolutionRepo catalog.DedupResolutionRepository,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		serviceRepo:    serviceRepo,
		orderRepo:      orderRepo,
		resolutionRepo: resolutionRepo,
		logger:         logger.Named("dedup"),
	}
}

// Deduplicate resolves all duplicate groups among active services. The run
// is deterministic: the same catalog state always picks the same survivors,
// and a second run over a clean catalog resolves nothing.
func (s *Service) Deduplicate(ctx context.Context) (*Report, error) {
	started := time.Now()
	report := &Report{}

	active, err := s.serviceRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	groups := make(map[catalog.DedupKey][]*catalog.Service)
	for i := range active {
		svc := &active[i]
		if strings.TrimSpace(svc.DisplayName) == "" || strings.TrimSpace(svc.DisplayCategory) == "" {
			report.MalformedSkipped++
			continue
		}
		key := catalog.DedupKeyOf(svc)
		groups[key] = append(groups[key], svc)
	}

	var candidateIDs []int64
	for _, members := range groups {
		if len(members) < 2 {
			continue
		}
		for _, m := range members {
			candidateIDs = append(candidateIDs, m.ID)
		}
	}
	if len(candidateIDs) == 0 {
		report.Duration = time.Since(started)
		return report, nil
	}

	orderCounts, err := s.orderRepo.CountByServiceIDs(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}

	for key, members := range groups {
		if len(members) < 2 {
			continue
		}
		canonical, losers := pickSurvivor(members, orderCounts)

		loserIDs := make([]int64, len(losers))
		for i, l := range losers {
			loserIDs[i] = l.ID
		}
		n, err := s.serviceRepo.DeactivateServices(ctx, loserIDs)
		if err != nil {
			return nil, err
		}

		resolution := &catalog.DedupResolution{
			ProviderID:            key.ProviderID,
			DisplayName:           key.DisplayName,
			DisplayCategory:       key.DisplayCategory,
			Rate:                  key.Rate,
			CanonicalServiceID:    canonical.ID,
			DeactivatedServiceIDs: joinIDs(loserIDs),
			ResolvedAt:            time.Now(),
		}
		if err := s.resolutionRepo.Save(ctx, resolution); err != nil {
			return nil, err
		}

		s.logger.Info("Resolved duplicate group",
			zap.String("display_name", key.DisplayName),
			zap.String("display_category", key.DisplayCategory),
			zap.Int64("canonical_id", canonical.ID),
			zap.Int64s("deactivated_ids", loserIDs),
		)
		report.GroupsResolved++
		report.ServicesDeactivated += n
	}

	report.Duration = time.Since(started)
	return report, nil
}

// pickSurvivor orders a duplicate group by order count descending, then id
// ascending, and splits it into the survivor and the rest
func pickSurvivor(members []*catalog.Service, orderCounts map[int64]int64) (*catalog.Service, []*catalog.Service) {
	sorted := make([]*catalog.Service, len(members))
	copy(sorted, members)
	sort.Slice(sorted, func(i, j int) bool {
		ci, cj := orderCounts[sorted[i].ID], orderCounts[sorted[j].ID]
		if ci != cj {
			return ci > cj
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted[0], sorted[1:]
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
