// Package productrepo maps product aggregates to their relational form.
// The stock column is special: regular Update never writes it, only the
// atomic ReserveStock and ReleaseStock operations do.
package productrepo

import (
	"github.com/google/uuid"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/product"
)

// ProductDTO is the database row for a product aggregate.
type ProductDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Tenant           string    `gorm:"type:varchar(64);not null;index"`
	StoreID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Name             string    `gorm:"type:varchar(255);not null"`
	Category         string    `gorm:"type:varchar(128);not null"`
	Price            int64     `gorm:"type:bigint;not null"`
	Stock            int       `gorm:"type:int;not null"`
	MaxOrderQuantity int       `gorm:"type:int;not null"`
	Active           bool      `gorm:"type:boolean;not null"`
}

// TableName overrides GORM's default to "products".
func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:               p.ID().Bytes(),
		Tenant:           p.Tenant().String(),
		StoreID:          p.StoreID().Bytes(),
		Name:             p.Name(),
		Category:         p.Category(),
		Price:            p.Price().Int64(),
		Stock:            p.Stock(),
		MaxOrderQuantity: p.MaxOrderQuantity(),
		Active:           p.IsActive(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenant, err := kernel.NewTenantID(dto.Tenant)
	if err != nil {
		return nil, err
	}
	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, tenant, storeID, dto.Name, dto.Category,
		price, dto.Stock, dto.MaxOrderQuantity, dto.Active)
}
