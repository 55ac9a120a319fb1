package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"stunting/domain"
)

const pgForeignKeyViolation = "23503"

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(database *gorm.DB) domain.AddressRepo {
	return &addressRepository{
		db: database,
	}
}

func (ar *addressRepository) GetAllAddress(ctx context.Context) (*[]domain.Address, error) {
	var addrs []domain.Address
	err := ar.db.WithContext(ctx).Order("province, city, city_district, village").Find(&addrs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve addresses: %w", err)
	}
	return &addrs, nil
}

func (ar *addressRepository) GetAddressByID(ctx context.Context, id uuid.UUID) (*domain.Address, error) {
	var addr domain.Address
	err := ar.db.WithContext(ctx).Where("id = ?", id).First(&addr).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("address %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching address: %w", err)
	}
	return &addr, nil
}

func (ar *addressRepository) CreateAddress(ctx context.Context, addr *domain.Address) error {
	if err := ar.db.WithContext(ctx).Create(addr).Error; err != nil {
		return fmt.Errorf("could not insert address: %w", err)
	}
	return nil
}

func (ar *addressRepository) UpdateAddress(ctx context.Context, id uuid.UUID, addr *domain.Address) (*domain.Address, error) {
	existing, err := ar.GetAddressByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = ar.db.WithContext(ctx).Model(existing).Select("latitude", "longitude", "province", "city", "city_district", "village").Updates(addr).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}

	return ar.GetAddressByID(ctx, id)
}

// DeleteAddress refuses to delete an address still referenced by a child
// record.
func (ar *addressRepository) DeleteAddress(ctx context.Context, id uuid.UUID) error {
	return ar.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var addr domain.Address
		if err := tx.Where("id = ?", id).First(&addr).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("address %s: %w", id, domain.ErrNotFound)
			}
			return fmt.Errorf("error fetching address: %w", err)
		}

		var refs int64
		if err := tx.Model(&domain.ChildRecord{}).Where("alamat_id = ?", id).Count(&refs).Error; err != nil {
			return fmt.Errorf("error checking address references: %w", err)
		}
		if refs > 0 {
			return fmt.Errorf("address %s is used by %d child records: %w", id, refs, domain.ErrAddressInUse)
		}

		if err := tx.Delete(&addr).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
				return fmt.Errorf("address %s: %w", id, domain.ErrAddressInUse)
			}
			return fmt.Errorf("failed to delete address: %w", err)
		}
		return nil
	})
}
