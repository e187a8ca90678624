package modifierrepo

import (
	"context"
	"errors"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/pricing"
	"workshop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormModifierRepository implements ModifierRepository using GORM.
type GormModifierRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormModifierRepository creates a new GORM price modifier repository.
func NewGormModifierRepository(db *gorm.DB, tracker aggregateTracker) *GormModifierRepository {
	return &GormModifierRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new price modifier to the database.
func (r *GormModifierRepository) Add(ctx context.Context, aggregate *pricing.PriceModifier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing price modifier to the database.
func (r *GormModifierRepository) Update(ctx context.Context, aggregate *pricing.PriceModifier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ModifierDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("modifier", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a price modifier by ID.
func (r *GormModifierRepository) Get(ctx context.Context, id kernel.UUID) (*pricing.PriceModifier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ModifierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("modifier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByCode retrieves a price modifier by its unique business code.
func (r *GormModifierRepository) GetByCode(ctx context.Context, code string) (*pricing.PriceModifier, error) {
	var dto ModifierDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("modifier", code)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistsByCode reports whether a modifier with the given code exists.
func (r *GormModifierRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ModifierDTO{}).
		Where("code = ?", code).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetAllActive retrieves all active modifiers ordered by ascending priority.
func (r *GormModifierRepository) GetAllActive(ctx context.Context) ([]*pricing.PriceModifier, error) {
	var dtos []ModifierDTO
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetByPropertyID retrieves the modifiers bound to the given property.
func (r *GormModifierRepository) GetByPropertyID(
	ctx context.Context,
	propertyID kernel.UUID,
) ([]*pricing.PriceModifier, error) {
	if err := propertyID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ModifierDTO
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID.Bytes()).
		Order("priority").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// Delete removes a price modifier.
func (r *GormModifierRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ModifierDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("modifier", id.String())
	}

	return nil
}

func (r *GormModifierRepository) toDomainAll(dtos []ModifierDTO) ([]*pricing.PriceModifier, error) {
	modifiers := make([]*pricing.PriceModifier, 0, len(dtos))
	for _, dto := range dtos {
		modifier, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		modifiers = append(modifiers, modifier)
	}
	return modifiers, nil
}
