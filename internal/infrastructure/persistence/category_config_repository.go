package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/catalog"
	"github.com/SUPRAJ-8/NepoSMM-sub002/internal/domain/shared"
)

// GormCategoryConfigRepository implements catalog.CategoryConfigRepository using GORM
type GormCategoryConfigRepository struct {
	db *gorm.DB
}

// NewGormCategoryConfigRepository creates a new GormCategoryConfigRepository
func NewGormCategoryConfigRepository(db *gorm.DB) *GormCategoryConfigRepository {
	return &GormCategoryConfigRepository{db: db}
}

// FindAll returns all category configs ordered by sort order
func (r *GormCategoryConfigRepository) FindAll(ctx context.Context) ([]catalog.CategoryConfig, error) {
	var configs []catalog.CategoryConfig
	if err := r.db.WithContext(ctx).
		Order("sort_order ASC, name ASC").
		Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// FindByName finds a category config by its unique name
func (r *GormCategoryConfigRepository) FindByName(ctx context.Context, name string) (*catalog.CategoryConfig, error) {
	var c catalog.CategoryConfig
	if err := r.db.WithContext(ctx).First(&c, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// EnsureExists creates a config for the category if none exists yet. The
// insert is conflict-tolerant so concurrent sync workers ingesting the same
// new category cannot fail each other.
func (r *GormCategoryConfigRepository) EnsureExists(ctx context.Context, name string) error {
	c, err := catalog.NewCategoryConfig(name, 0)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(c).Error
}

// Save creates or updates a category config
func (r *GormCategoryConfigRepository) Save(ctx context.Context, c *catalog.CategoryConfig) error {
	return r.db.WithContext(ctx).Save(c).Error
}
