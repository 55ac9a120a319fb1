package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChildRecord is one examination of a child. A new examination is a new row,
// rows are never updated in place.
type ChildRecord struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	NIK           *string    `gorm:"type:varchar(16);index" json:"nik"`
	Name          string     `gorm:"type:varchar(150)" json:"name"`
	Gender        string     `gorm:"type:varchar(10)" json:"gender"`
	Age           int        `gorm:"not null" json:"age"`
	BirthWeight   float64    `gorm:"not null" json:"birth_weight"`
	BirthLength   float64    `gorm:"not null" json:"birth_length"`
	BodyWeight    float64    `gorm:"not null" json:"body_weight"`
	BodyLength    float64    `gorm:"not null" json:"body_length"`
	Breastfeeding bool       `gorm:"not null;default:false" json:"breastfeeding"`
	IsStunting    bool       `gorm:"not null;default:false" json:"is_stunting"`
	StuntingImage bool       `gorm:"not null;default:false" json:"stunting_image"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	AlamatID      *uuid.UUID `gorm:"type:uuid;index" json:"alamat_id"`
	Alamat        *Address   `gorm:"foreignKey:AlamatID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"alamat,omitempty"`
}

func (ChildRecord) TableName() string {
	return "children_data"
}

func (c *ChildRecord) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// HasNIK reports whether the record carries a national identifier.
func (c ChildRecord) HasNIK() bool {
	return c.NIK != nil && *c.NIK != ""
}

type ChildPayload struct {
	NIK           *string         `json:"nik" valid:"numeric~NIK must contain only digits,stringlength(16|16)~NIK must be 16 digits,optional"`
	Name          string          `json:"name" valid:"stringlength(0|150)~Name cannot be more than 150 characters,optional"`
	Gender        string          `json:"gender" valid:"in(male|female)~Invalid gender,optional"`
	Age           *int            `json:"age"`
	BirthWeight   *float64        `json:"birth_weight"`
	BirthLength   *float64        `json:"birth_length"`
	BodyWeight    *float64        `json:"body_weight"`
	BodyLength    *float64        `json:"body_length"`
	Breastfeeding bool            `json:"breastfeeding"`
	IsStunting    bool            `json:"is_stunting"`
	StuntingImage bool            `json:"stunting_image"`
	Latitude      *float64        `json:"latitude"`
	Longitude     *float64        `json:"longitude"`
	AlamatID      *uuid.UUID      `json:"alamat_id"`
	Alamat        *AddressPayload `json:"alamat"`
}

// ToChildRecord copies the measured values. Pointer fields must already be
// checked for nil.
func (p ChildPayload) ToChildRecord() ChildRecord {
	return ChildRecord{
		NIK:           p.NIK,
		Name:          p.Name,
		Gender:        p.Gender,
		Age:           *p.Age,
		BirthWeight:   *p.BirthWeight,
		BirthLength:   *p.BirthLength,
		BodyWeight:    *p.BodyWeight,
		BodyLength:    *p.BodyLength,
		Breastfeeding: p.Breastfeeding,
		IsStunting:    p.IsStunting,
		StuntingImage: p.StuntingImage,
		AlamatID:      p.AlamatID,
	}
}

type ChildListFilter struct {
	Region Region
	Period Period
	NIK    string
}

// ChildImport is one parsed row of a bulk upload. Row is the 1-based line in
// the uploaded file.
type ChildImport struct {
	Row     int
	Child   ChildRecord
	Address *Address
}

// ChildUpload is one unvalidated row of a bulk upload.
type ChildUpload struct {
	Row     int
	Payload ChildPayload
}

// ImportError lists every rejected row of a bulk upload.
type ImportError struct {
	Rows []string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%d invalid rows", len(e.Rows))
}

type ChildRepo interface {
	CreateChild(ctx context.Context, child *ChildRecord, addr *Address) error
	ImportChildren(ctx context.Context, rows []ChildImport) error
	GetChildByID(ctx context.Context, id uuid.UUID) (*ChildRecord, error)
	GetChildrenByNIK(ctx context.Context, nik string) (*[]ChildRecord, error)
	FindChildren(ctx context.Context, filter ChildListFilter) (*[]ChildRecord, error)
	DeleteChild(ctx context.Context, id uuid.UUID) error
}

type ChildUseCase interface {
	CreateChild(ctx context.Context, payload *ChildPayload) (*ChildRecord, error)
	GetChildByID(ctx context.Context, scope Scope, id uuid.UUID) (*ChildRecord, error)
	GetChildHistory(ctx context.Context, scope Scope, nik string) (*[]ChildRecord, error)
	GetAllChildren(ctx context.Context, scope Scope, withDuplicates bool) (*[]ChildRecord, error)
	DeleteChild(ctx context.Context, id uuid.UUID) error
	ChildHistoryQRCode(ctx context.Context, scope Scope, nik string) ([]byte, error)
	ImportChildren(ctx context.Context, rows []ChildUpload) (int, error)
}
