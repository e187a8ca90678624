// Package productrepo provides data transfer objects and mapping functions
// for the product catalog. The catalog is maintained by an external system;
// this repository only reads it for price calculation.
package productrepo

import (
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure of one catalog product with
// its default dimensions embedded.
type ProductDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"size:200"`
	BasePrice       float64
	UnitType        string `gorm:"size:20"`
	DefaultLengthMM float64
	DefaultWidthMM  float64
	Properties      []ProductPropertyDTO `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// ProductPropertyDTO represents one default property selection of a product.
type ProductPropertyDTO struct {
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	PropertyID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Value      string    `gorm:"size:200"`
	IsActive   bool
}

// TableName specifies the database table name for product property rows.
func (ProductPropertyDTO) TableName() string {
	return "product_properties"
}

// toDomain converts a database DTO to a product catalog entity.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	basePrice, err := kernel.NewMoneyFromFloat(dto.BasePrice)
	if err != nil {
		return nil, err
	}

	unitType, err := product.UnitTypeFromString(dto.UnitType)
	if err != nil {
		return nil, err
	}

	dimensions, err := product.NewDimensions(dto.DefaultLengthMM, dto.DefaultWidthMM)
	if err != nil {
		return nil, err
	}

	properties := make([]product.PropertyActivation, 0, len(dto.Properties))
	for _, propertyDTO := range dto.Properties {
		propertyID, propertyErr := kernel.UUIDFromBytes(propertyDTO.PropertyID[:])
		if propertyErr != nil {
			return nil, propertyErr
		}

		activation, propertyErr := product.NewPropertyActivation(propertyID, propertyDTO.Value, propertyDTO.IsActive)
		if propertyErr != nil {
			return nil, propertyErr
		}
		properties = append(properties, activation)
	}

	return product.NewProduct(id, dto.Name, basePrice, unitType, dimensions, properties)
}
