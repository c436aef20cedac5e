package smm

import (
	"strings"

	"github.com/google/uuid"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/order"
)

// defaultStatusMapping covers the status vocabulary most panels share.
// Providers with odd spellings get per-provider overrides from config.
var defaultStatusMapping = map[string]order.Status{
	"pending":     order.StatusPending,
	"queued":      order.StatusPending,
	"in progress": order.StatusProcessing,
	"inprogress":  order.StatusProcessing,
	"processing":  order.StatusProcessing,
	"completed":   order.StatusCompleted,
	"complete":    order.StatusCompleted,
	"partial":     order.StatusPartial,
	"canceled":    order.StatusCanceled,
	"cancelled":   order.StatusCanceled,
	"refunded":    order.StatusCanceled,
}

// StatusMapper translates provider-native order status strings into the
// canonical vocabulary. Lookup is case-insensitive; per-provider overrides
// win over the shared defaults.
type StatusMapper struct {
	overrides map[uuid.UUID]map[string]order.Status
}

// NewStatusMapper creates a mapper with per-provider overrides, keyed by
// provider id then by lowercase raw status
func NewStatusMapper(overrides map[uuid.UUID]map[string]order.Status) *StatusMapper {
	normalized := make(map[uuid.UUID]map[string]order.Status, len(overrides))
	for id, table := range overrides {
		m := make(map[string]order.Status, len(table))
		for raw, canonical := range table {
			m[normalizeStatus(raw)] = canonical
		}
		normalized[id] = m
	}
	return &StatusMapper{overrides: normalized}
}

// Map resolves a provider-native status string. The second return is false
// when neither the provider's table nor the defaults know the status.
func (m *StatusMapper) Map(providerID uuid.UUID, raw string) (order.Status, bool) {
	key := normalizeStatus(raw)
	if table, ok := m.overrides[providerID]; ok {
		if s, ok := table[key]; ok {
			return s, true
		}
	}
	s, ok := defaultStatusMapping[key]
	return s, ok
}

// normalizeStatus lowercases and trims a raw provider status
func normalizeStatus(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
