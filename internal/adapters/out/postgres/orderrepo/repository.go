package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/ports"
	"workshop/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its full section and item tree to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order to the database. The section and item tree
// is replaced wholesale: the aggregate owns its children exclusively, so the
// persisted tree always mirrors the in-memory one.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "Sections").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if err := r.replaceTree(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormOrderRepository) replaceTree(ctx context.Context, dto OrderDTO) error {
	db := r.db.WithContext(ctx)

	itemIDs := db.Model(&OrderItemDTO{}).Select("id").Where("order_id = ?", dto.ID)
	if err := db.Where("item_id IN (?)", itemIDs).Delete(&OrderItemPropertyDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", dto.ID).Delete(&OrderItemDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", dto.ID).Delete(&OrderSectionDTO{}).Error; err != nil {
		return err
	}

	if len(dto.Sections) == 0 {
		return nil
	}
	return db.Create(&dto.Sections).Error
}

// Get retrieves an order by ID with its sections, items and properties.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.preloaded(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderNumber retrieves an order by its business number.
func (r *GormOrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	var dto OrderDTO
	err := r.preloaded(ctx).First(&dto, "order_number = ?", orderNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", orderNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// ExistsByOrderNumber reports whether an order with the given business number exists.
func (r *GormOrderRepository) ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("order_number = ?", orderNumber).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetAll retrieves orders matching the filter, newest order number first.
func (r *GormOrderRepository) GetAll(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	db := r.preloaded(ctx)

	if filter.ClientID != 0 {
		db = db.Where("client_id = ?", filter.ClientID)
	}
	if filter.Status != order.UnknownStatus {
		db = db.Where("status = ?", filter.Status.String())
	}
	if filter.From != nil {
		db = db.Where("deadline >= ?", *filter.From)
	}
	if filter.To != nil {
		db = db.Where("deadline <= ?", *filter.To)
	}

	var dtos []OrderDTO
	if err := db.Order("order_number DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// Delete removes an order with its sections, items and properties.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	dto := OrderDTO{ID: id.Bytes()}
	if err := r.replaceTree(ctx, dto); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}

	return nil
}

// NextOrderNumber generates the next sequential business number in the form
// ORD-<year>-<sequence>, restarting the sequence each calendar year.
func (r *GormOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("ORD-%d-", time.Now().Year())

	// The suffix is compared as an integer: a varchar MAX would invert once
	// the sequence outgrows its zero padding (999 sorts above 1000).
	var last *int
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("order_number LIKE ?", prefix+"%").
		Select(fmt.Sprintf("MAX(CAST(SUBSTRING(order_number FROM %d) AS integer))", len(prefix)+1)).
		Scan(&last).Error
	if err != nil {
		return "", err
	}

	sequence := 1
	if last != nil {
		sequence = *last + 1
	}

	return fmt.Sprintf("%s%03d", prefix, sequence), nil
}

// GetLockedBefore retrieves orders whose advisory lock was acquired before
// the given instant.
func (r *GormOrderRepository) GetLockedBefore(ctx context.Context, lockedBefore time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.preloaded(ctx).
		Where("locked_at IS NOT NULL AND locked_at < ?", lockedBefore).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("section_number")
		}).
		Preload("Sections.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Preload("Sections.Items.Properties")
}

func (r *GormOrderRepository) toDomainAll(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}
	return orders, nil
}
