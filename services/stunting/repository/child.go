package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stunting/domain"
)

type childRepository struct {
	db *gorm.DB
}

func NewChildRepository(database *gorm.DB) domain.ChildRepo {
	return &childRepository{
		db: database,
	}
}

// CreateChild inserts the examination and, when addr is given, its address in
// the same transaction.
func (cr *childRepository) CreateChild(ctx context.Context, child *domain.ChildRecord, addr *domain.Address) error {
	return cr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return insertChild(tx, child, addr)
	})
}

// ImportChildren inserts every row or none of them.
func (cr *childRepository) ImportChildren(ctx context.Context, rows []domain.ChildImport) error {
	return cr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := insertChild(tx, &rows[i].Child, rows[i].Address); err != nil {
				var vErr *domain.ValidationError
				if errors.As(err, &vErr) {
					return domain.NewValidationError(vErr.Field, fmt.Sprintf("row %d: %s", rows[i].Row, vErr.Message))
				}
				return fmt.Errorf("row %d: %w", rows[i].Row, err)
			}
		}
		return nil
	})
}

func insertChild(tx *gorm.DB, child *domain.ChildRecord, addr *domain.Address) error {
	if addr != nil {
		if err := tx.Create(addr).Error; err != nil {
			return fmt.Errorf("could not insert address: %w", err)
		}
		child.AlamatID = &addr.ID
	} else if child.AlamatID != nil {
		var count int64
		if err := tx.Model(&domain.Address{}).Where("id = ?", *child.AlamatID).Count(&count).Error; err != nil {
			return fmt.Errorf("error checking address: %w", err)
		}
		if count == 0 {
			return domain.NewValidationError("alamat_id", "address does not exist")
		}
	}

	if err := tx.Omit("Alamat").Create(child).Error; err != nil {
		return fmt.Errorf("could not insert child record: %w", err)
	}

	if child.AlamatID != nil {
		var stored domain.Address
		if err := tx.Where("id = ?", *child.AlamatID).First(&stored).Error; err != nil {
			return fmt.Errorf("could not load address: %w", err)
		}
		child.Alamat = &stored
	}
	return nil
}

func (cr *childRepository) GetChildByID(ctx context.Context, id uuid.UUID) (*domain.ChildRecord, error) {
	var child domain.ChildRecord
	err := cr.db.WithContext(ctx).Preload("Alamat").Where("id = ?", id).First(&child).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("child %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching child record: %w", err)
	}
	return &child, nil
}

func (cr *childRepository) GetChildrenByNIK(ctx context.Context, nik string) (*[]domain.ChildRecord, error) {
	var children []domain.ChildRecord
	err := cr.db.WithContext(ctx).
		Preload("Alamat").
		Where("nik = ?", nik).
		Order("created_at DESC, id DESC").
		Find(&children).Error
	if err != nil {
		return nil, fmt.Errorf("error fetching child history: %w", err)
	}
	return &children, nil
}

// FindChildren returns the examinations inside the region and period, oldest
// first.
func (cr *childRepository) FindChildren(ctx context.Context, filter domain.ChildListFilter) (*[]domain.ChildRecord, error) {
	query := cr.db.WithContext(ctx).Joins("Alamat")

	r := filter.Region
	switch r.Level {
	case domain.LevelDistrict:
		query = query.Where(`LOWER("Alamat"."city_district") = LOWER(?)`, r.District)
		fallthrough
	case domain.LevelCity:
		query = query.Where(`LOWER("Alamat"."city") = LOWER(?)`, r.City)
		fallthrough
	case domain.LevelProvince:
		query = query.Where(`LOWER("Alamat"."province") = LOWER(?)`, r.Province)
	}

	from, to := filter.Period.Bounds()
	if !from.IsZero() {
		query = query.Where("children_data.created_at >= ?", from.UTC())
	}
	if !to.IsZero() {
		query = query.Where("children_data.created_at < ?", to.UTC())
	}

	if filter.NIK != "" {
		query = query.Where("children_data.nik = ?", filter.NIK)
	}

	var children []domain.ChildRecord
	err := query.Order("children_data.created_at ASC, children_data.id ASC").Find(&children).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve child records: %w", err)
	}
	return &children, nil
}

func (cr *childRepository) DeleteChild(ctx context.Context, id uuid.UUID) error {
	result := cr.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.ChildRecord{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete child record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("child %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
