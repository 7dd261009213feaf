// Package catalogrepo reads the product catalog. The service never writes
// products outside of seeding; prices and stock are owned upstream.
package catalogrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductDTO struct {
	ID         string    `gorm:"primaryKey;size:64"`
	Name       string    `gorm:"not null"`
	ImageURL   string
	PriceCents int64     `gorm:"not null"`
	Stock      int       `gorm:"not null"`
	OwnerID    uuid.UUID `gorm:"type:uuid;index;not null"`
}

func (ProductDTO) TableName() string {
	return "products"
}

// GormProductCatalog implements ProductCatalog using GORM.
type GormProductCatalog struct {
	db *gorm.DB
}

func NewGormProductCatalog(db *gorm.DB) *GormProductCatalog {
	return &GormProductCatalog{db: db}
}

func (c *GormProductCatalog) Get(ctx context.Context, productID string) (catalog.Product, error) {
	var dto ProductDTO
	if err := c.db.WithContext(ctx).First(&dto, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Product{}, errs.NewObjectNotFoundError("product", productID)
		}
		return catalog.Product{}, err
	}
	return toDomain(dto)
}

func (c *GormProductCatalog) GetMany(ctx context.Context, productIDs []string) (map[string]catalog.Product, error) {
	products := make(map[string]catalog.Product, len(productIDs))
	if len(productIDs) == 0 {
		return products, nil
	}

	var dtos []ProductDTO
	if err := c.db.WithContext(ctx).Where("id IN ?", productIDs).Find(&dtos).Error; err != nil {
		return nil, err
	}
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		products[p.ID()] = p
	}
	return products, nil
}

// Upsert inserts or replaces products. Used for seeding.
func (c *GormProductCatalog) Upsert(ctx context.Context, products ...catalog.Product) error {
	if len(products) == 0 {
		return nil
	}

	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, ProductDTO{
			ID:         p.ID(),
			Name:       p.Name(),
			ImageURL:   p.ImageURL(),
			PriceCents: p.Price().Cents(),
			Stock:      p.Stock(),
			OwnerID:    p.OwnerID().Bytes(),
		})
	}
	return c.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&dtos).Error
}

func toDomain(dto ProductDTO) (catalog.Product, error) {
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return catalog.Product{}, err
	}
	return catalog.NewProduct(dto.ID, dto.Name, dto.ImageURL, kernel.MoneyFromCents(dto.PriceCents), dto.Stock, ownerID)
}
