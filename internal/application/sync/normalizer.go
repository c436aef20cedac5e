package sync

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/catalog"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/provider"
)

// Upstream panels pack a lot of metadata into service names:
// "Instagram Followers [Start: 0-1 Hour][R30][HQ] Max 50K". When a provider
// omits average_time or description, the normalizer derives them from the
// name with the ordered heuristics below. The rules are best effort, tuned
// to observed naming conventions; names matching none of them fall back to
// "Not specified" rather than guessing.
var (
	startTokenRe    = regexp.MustCompile(`(?i)\[\s*start\s*:\s*([^\]]+)\]`)
	durationTokenRe = regexp.MustCompile(`(?i)\[\s*(\d+\s*(?:-\s*\d+)?\s*(?:hours?|hrs?|minutes?|mins?|days?))\s*\]`)
	bracketTokenRe  = regexp.MustCompile(`\[([^\]]+)\]`)
	speedTokenRe    = regexp.MustCompile(`(?i)\d+\s*[km]?\s*/\s*(?:day|hour|d|h)`)
	maxTokenRe      = regexp.MustCompile(`(?i)^max\b`)
)

// notSpecified is the average-time fallback when no rule matches
const notSpecified = "Not specified"

// DeriveAverageTime extracts a fulfillment-time hint from a service name.
// First match wins; the function is pure, so re-deriving from the same name
// always yields the same value.
func DeriveAverageTime(name string) string {
	if m := startTokenRe.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := durationTokenRe.FindStringSubmatch(name); m != nil {
		return strings.TrimSpace(m[1])
	}
	lower := strings.ToLower(name)
	if strings.Contains(lower, "instant") {
		return "Instant"
	}
	if strings.Contains(lower, "fast") {
		return "Fast"
	}
	return notSpecified
}

// DeriveDescription builds a description from the recognized bracketed tags
// of a service name (refill policy, speed ratio, quality tier, guarantee,
// max quantity), joined by " | ". When no tag is recognized it falls back
// to the name itself with decorative symbols stripped.
func DeriveDescription(name string) string {
	var tags []string
	for _, m := range bracketTokenRe.FindAllStringSubmatch(name, -1) {
		token := strings.TrimSpace(m[1])
		if isDescriptiveTag(token) {
			tags = append(tags, token)
		}
	}
	if len(tags) > 0 {
		return strings.Join(tags, " | ")
	}
	return stripDecorative(name)
}

// isDescriptiveTag reports whether a bracketed token carries information
// worth surfacing to customers
func isDescriptiveTag(token string) bool {
	lower := strings.ToLower(token)
	switch {
	case strings.HasPrefix(lower, "start"):
		// fulfillment time, already captured as average_time
		return false
	case strings.Contains(lower, "refill"):
		return true
	case speedTokenRe.MatchString(lower) || strings.HasPrefix(lower, "speed"):
		return true
	case lower == "hq" || lower == "lq" || lower == "uhq" ||
		strings.Contains(lower, "quality") || strings.Contains(lower, "real"):
		return true
	case strings.Contains(lower, "guarant") || strings.Contains(lower, "lifetime"):
		return true
	case maxTokenRe.MatchString(lower):
		return true
	default:
		return false
	}
}

// stripDecorative removes emoji and other decorative symbols from a name,
// collapsing the whitespace left behind
func stripDecorative(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) ||
			strings.ContainsRune(`[]()-+.,:/&%'"_|`, r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Normalizer converts raw provider records into canonical services
type Normalizer struct{}

// NewNormalizer creates a Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// DerivedFields resolves the average time and description for a raw record:
// provider-supplied values are used verbatim, missing ones are derived from
// the service name
func (n *Normalizer) DerivedFields(raw provider.RawService) (averageTime, description string) {
	averageTime = strings.TrimSpace(raw.AverageTime)
	if averageTime == "" {
		averageTime = DeriveAverageTime(raw.Name)
	}
	description = strings.TrimSpace(raw.Description)
	if description == "" {
		description = DeriveDescription(raw.Name)
	}
	return averageTime, description
}

// Normalize produces a new canonical service from a raw record at first
// ingest. Original name and category are captured here, once, and never
// touched again by any sync path.
func (n *Normalizer) Normalize(raw provider.RawService, p *provider.Provider) (*catalog.Service, error) {
	svc, err := catalog.NewService(p.ID, raw.ExternalID, raw.Name, raw.Category)
	if err != nil {
		return nil, err
	}
	if err := svc.SetPricing(raw.Rate, raw.Min, raw.Max); err != nil {
		return nil, err
	}
	averageTime, description := n.DerivedFields(raw)
	svc.ApplyDerivedFields(averageTime, description)
	return svc, nil
}
