package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Address struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Latitude     *float64  `gorm:"not null" json:"latitude"`
	Longitude    *float64  `gorm:"not null" json:"longitude"`
	Province     string    `gorm:"type:varchar(100);not null;index" json:"province" valid:"required~Province is required"`
	City         string    `gorm:"type:varchar(100);not null;index" json:"city" valid:"required~City is required"`
	CityDistrict string    `gorm:"type:varchar(100);not null;index" json:"city_district" valid:"required~City district is required"`
	Village      string    `gorm:"type:varchar(100)" json:"village"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Address) TableName() string {
	return "alamat"
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// AddressPayload is the body accepted by the address endpoints and embedded in
// a child submission.
type AddressPayload struct {
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Province     string   `json:"province" valid:"required~Province is required"`
	City         string   `json:"city" valid:"required~City is required"`
	CityDistrict string   `json:"city_district" valid:"required~City district is required"`
	Village      string   `json:"village"`
}

func (p AddressPayload) ToAddress() Address {
	return Address{
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		Province:     p.Province,
		City:         p.City,
		CityDistrict: p.CityDistrict,
		Village:      p.Village,
	}
}

type AddressRepo interface {
	GetAllAddress(ctx context.Context) (*[]Address, error)
	GetAddressByID(ctx context.Context, id uuid.UUID) (*Address, error)
	CreateAddress(ctx context.Context, addr *Address) error
	UpdateAddress(ctx context.Context, id uuid.UUID, addr *Address) (*Address, error)
	DeleteAddress(ctx context.Context, id uuid.UUID) error
}

type AddressUseCase interface {
	GetAllAddress(ctx context.Context, scope Scope) (*[]Address, error)
	GetAddressByID(ctx context.Context, scope Scope, id uuid.UUID) (*Address, error)
	CreateAddress(ctx context.Context, payload *AddressPayload) (*Address, error)
	UpdateAddress(ctx context.Context, id uuid.UUID, payload *AddressPayload) (*Address, error)
	DeleteAddress(ctx context.Context, id uuid.UUID) error
}
