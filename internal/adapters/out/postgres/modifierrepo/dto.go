// Package modifierrepo provides data transfer objects and mapping functions
// for price modifier persistence. This package implements the repository
// pattern for the pricing domain aggregate, handling the conversion between
// domain entities and database representations.
package modifierrepo

import (
	"time"

	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ModifierDTO represents the database structure for persisting price
// modifiers, indexed for lookups by code, activity and property binding.
type ModifierDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Code                string          `gorm:"size:100;uniqueIndex"`
	Name                string          `gorm:"size:200"`
	Type                string          `gorm:"size:20"`
	Value               decimal.Decimal `gorm:"type:numeric"`
	Priority            int
	IsActive            bool       `gorm:"index"`
	PropertyID          *uuid.UUID `gorm:"type:uuid;index"`
	PropertyValue       *string    `gorm:"size:200"`
	ConditionExpression *string
	StartDate           *time.Time
	EndDate             *time.Time
}

// TableName specifies the database table name for price modifier entities.
func (ModifierDTO) TableName() string {
	return "price_modifiers"
}

// fromDomain converts a price modifier domain aggregate to its database
// representation.
func fromDomain(modifier *pricing.PriceModifier) ModifierDTO {
	var propertyID *uuid.UUID
	if id := modifier.PropertyID(); id != nil {
		raw := id.Bytes()
		propertyID = &raw
	}

	return ModifierDTO{
		ID:                  modifier.ID().Bytes(),
		Code:                modifier.Code(),
		Name:                modifier.Name(),
		Type:                modifier.Type().String(),
		Value:               modifier.Value(),
		Priority:            modifier.Priority(),
		IsActive:            modifier.IsActive(),
		PropertyID:          propertyID,
		PropertyValue:       modifier.PropertyValue(),
		ConditionExpression: modifier.ConditionExpression(),
		StartDate:           modifier.StartDate(),
		EndDate:             modifier.EndDate(),
	}
}

// toDomain converts a database DTO to a price modifier domain aggregate
// using RestorePriceModifier, re-validating all invariants.
func toDomain(dto ModifierDTO) (*pricing.PriceModifier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	modifierType, err := pricing.ModifierTypeFromString(dto.Type)
	if err != nil {
		return nil, err
	}

	var propertyID *kernel.UUID
	if dto.PropertyID != nil {
		restored, propertyErr := kernel.UUIDFromBytes((*dto.PropertyID)[:])
		if propertyErr != nil {
			return nil, propertyErr
		}
		propertyID = &restored
	}

	return pricing.RestorePriceModifier(
		id,
		dto.Code,
		dto.Name,
		modifierType,
		dto.Value,
		dto.Priority,
		dto.IsActive,
		pricing.ModifierOptions{
			PropertyID:          propertyID,
			PropertyValue:       dto.PropertyValue,
			ConditionExpression: dto.ConditionExpression,
			StartDate:           dto.StartDate,
			EndDate:             dto.EndDate,
		},
	)
}
