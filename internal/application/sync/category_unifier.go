package sync

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/catalog"
)

// CategoryUnifier collapses category-name drift (stray trailing characters,
// alternate capitalization, singular/plural variants) into one canonical
// spelling per category. The alias table is operator-maintained
// configuration, not code. Unification is a batch rewrite over active
// services and must run before deduplication so category drift cannot mask
// true duplicates.
type CategoryUnifier struct {
	aliases      map[string]string
	serviceRepo  catalog.ServiceRepository
	categoryRepo catalog.CategoryConfigRepository
	logger       *zap.Logger
}

// NewCategoryUnifier creates a unifier with an alias -> canonical table
func NewCategoryUnifier(
	aliases map[string]string,
	serviceRepo catalog.ServiceRepository,
	categoryRepo catalog.CategoryConfigRepository,
	logger *zap.Logger,
) *CategoryUnifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	normalized := make(map[string]string, len(aliases))
	for alias, canonical := range aliases {
		normalized[strings.ToLower(strings.TrimSpace(alias))] = strings.TrimSpace(canonical)
	}
	return &CategoryUnifier{
		aliases:      normalized,
		serviceRepo:  serviceRepo,
		categoryRepo: categoryRepo,
		logger:       logger.Named("category-unifier"),
	}
}

// Resolve returns the canonical spelling for a category, or the input
// unchanged when no alias matches
func (u *CategoryUnifier) Resolve(category string) string {
	if canonical, ok := u.aliases[strings.ToLower(strings.TrimSpace(category))]; ok && canonical != "" {
		return canonical
	}
	return category
}

// Unify rewrites display_category for every active service whose category
// matches an alias. Returns the number of rewritten rows.
func (u *CategoryUnifier) Unify(ctx context.Context) (int64, error) {
	categories, err := u.serviceRepo.DistinctActiveDisplayCategories(ctx)
	if err != nil {
		return 0, err
	}

	var rewritten int64
	for _, category := range categories {
		canonical := u.Resolve(category)
		if canonical == category {
			continue
		}
		n, err := u.serviceRepo.RenameDisplayCategory(ctx, category, canonical)
		if err != nil {
			return rewritten, err
		}
		if err := u.categoryRepo.EnsureExists(ctx, canonical); err != nil {
			return rewritten, err
		}
		u.logger.Info("Unified category spelling",
			zap.String("from", category),
			zap.String("to", canonical),
			zap.Int64("services", n),
		)
		rewritten += n
	}
	return rewritten, nil
}
