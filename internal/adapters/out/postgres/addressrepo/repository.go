// Package addressrepo reads saved customer addresses.
package addressrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`
	Recipient  string    `gorm:"not null"`
	Street     string    `gorm:"not null"`
	City       string    `gorm:"not null"`
	Zip        string    `gorm:"not null"`
	Phone      string    `gorm:"not null"`
	IsDefault  bool      `gorm:"not null;default:false"`
}

func (AddressDTO) TableName() string {
	return "addresses"
}

// GormAddressBook implements AddressBook using GORM.
type GormAddressBook struct {
	db *gorm.DB
}

func NewGormAddressBook(db *gorm.DB) *GormAddressBook {
	return &GormAddressBook{db: db}
}

// Get returns the address only when it belongs to customerID.
func (b *GormAddressBook) Get(ctx context.Context, customerID, addressID kernel.UUID) (kernel.Address, error) {
	var dto AddressDTO
	err := b.db.WithContext(ctx).
		First(&dto, "id = ? AND customer_id = ?", addressID.Bytes(), customerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.Address{}, errs.NewObjectNotFoundError("address", addressID.String())
		}
		return kernel.Address{}, err
	}
	return dto.toDomain()
}

func (b *GormAddressBook) GetDefault(ctx context.Context, customerID kernel.UUID) (kernel.Address, error) {
	var dto AddressDTO
	err := b.db.WithContext(ctx).
		First(&dto, "customer_id = ? AND is_default = ?", customerID.Bytes(), true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.Address{}, errs.NewObjectNotFoundError("default address", customerID.String())
		}
		return kernel.Address{}, err
	}
	return dto.toDomain()
}

// Save stores an address. Marking it default clears the previous default
// of the same customer.
func (b *GormAddressBook) Save(ctx context.Context, id, customerID kernel.UUID, address kernel.Address, isDefault bool) error {
	if err := errors.Join(id.Validate(), customerID.Validate(), address.Validate()); err != nil {
		return err
	}

	return b.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if isDefault {
			err := tx.Model(&AddressDTO{}).
				Where("customer_id = ? AND is_default = ?", customerID.Bytes(), true).
				Update("is_default", false).Error
			if err != nil {
				return err
			}
		}
		return tx.Save(&AddressDTO{
			ID:         id.Bytes(),
			CustomerID: customerID.Bytes(),
			Recipient:  address.Recipient(),
			Street:     address.Street(),
			City:       address.City(),
			Zip:        address.Zip(),
			Phone:      address.Phone(),
			IsDefault:  isDefault,
		}).Error
	})
}

func (dto AddressDTO) toDomain() (kernel.Address, error) {
	return kernel.NewAddress(dto.Recipient, dto.Street, dto.City, dto.Zip, dto.Phone)
}
