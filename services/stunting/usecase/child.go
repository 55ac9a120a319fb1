package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"stunting/domain"
	"stunting/services/stunting/analytics"
)

type childUseCase struct {
	repo    domain.ChildRepo
	cache   domain.StatsCache
	baseURL string
	TimeOut time.Duration
}

func NewChildUseCase(repo domain.ChildRepo, cache domain.StatsCache, baseURL string, to time.Duration) domain.ChildUseCase {
	return &childUseCase{
		repo:    repo,
		cache:   cache,
		baseURL: strings.TrimRight(baseURL, "/"),
		TimeOut: to,
	}
}

func validateChild(p *domain.ChildPayload) error {
	if p == nil {
		return domain.NewValidationError("", "Request body is required")
	}
	if err := validateStruct(p); err != nil {
		return err
	}

	if p.Age == nil {
		return domain.NewValidationError("age", "Age is required")
	}
	if *p.Age < 0 {
		return domain.NewValidationError("age", "Age cannot be negative")
	}
	measurements := []struct {
		field string
		value *float64
	}{
		{"birth_weight", p.BirthWeight},
		{"birth_length", p.BirthLength},
		{"body_weight", p.BodyWeight},
		{"body_length", p.BodyLength},
	}
	for _, m := range measurements {
		if m.value == nil {
			return domain.NewValidationError(m.field, fmt.Sprintf("%s is required", m.field))
		}
		if *m.value < 0 {
			return domain.NewValidationError(m.field, fmt.Sprintf("%s cannot be negative", m.field))
		}
	}

	if p.Latitude != nil || p.Longitude != nil {
		if err := validateCoordinates(p.Latitude, p.Longitude); err != nil {
			return err
		}
	}

	if p.Alamat != nil {
		if p.AlamatID != nil {
			return domain.NewValidationError("alamat", "Send either alamat_id or alamat, not both")
		}
		if p.Alamat.Latitude == nil && p.Alamat.Longitude == nil {
			p.Alamat.Latitude, p.Alamat.Longitude = p.Latitude, p.Longitude
		}
		if err := validateAddress(p.Alamat); err != nil {
			return err
		}
	}
	return nil
}

func (cu *childUseCase) CreateChild(ctx context.Context, payload *domain.ChildPayload) (*domain.ChildRecord, error) {
	if err := validateChild(payload); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	child := payload.ToChildRecord()
	if child.NIK != nil && *child.NIK == "" {
		child.NIK = nil
	}

	var addr *domain.Address
	if payload.Alamat != nil {
		a := payload.Alamat.ToAddress()
		addr = &a
	}

	if err := cu.repo.CreateChild(ctx, &child, addr); err != nil {
		return nil, err
	}
	invalidateCache(ctx, cu.cache)
	return &child, nil
}

func (cu *childUseCase) GetChildByID(ctx context.Context, scope domain.Scope, id uuid.UUID) (*domain.ChildRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	v, err := cu.repo.GetChildByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsRecord(v) {
		return nil, fmt.Errorf("child %s: %w", id, domain.ErrNotFound)
	}
	return v, nil
}

// GetChildHistory lists every examination of one NIK the scope may see,
// newest first.
func (cu *childUseCase) GetChildHistory(ctx context.Context, scope domain.Scope, nik string) (*[]domain.ChildRecord, error) {
	nik = strings.TrimSpace(nik)
	if nik == "" {
		return nil, domain.NewValidationError("nik", "NIK is required")
	}

	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	v, err := cu.repo.GetChildrenByNIK(ctx, nik)
	if err != nil {
		return nil, err
	}
	history := domain.FilterRecords(scope, *v)
	if len(history) == 0 {
		return nil, fmt.Errorf("history of %s: %w", nik, domain.ErrNotFound)
	}
	return &history, nil
}

func (cu *childUseCase) GetAllChildren(ctx context.Context, scope domain.Scope, withDuplicates bool) (*[]domain.ChildRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	v, err := cu.repo.FindChildren(ctx, domain.ChildListFilter{
		Region: domain.Region{Level: domain.LevelAll},
	})
	if err != nil {
		return nil, err
	}

	children := domain.FilterRecords(scope, *v)
	if !withDuplicates {
		children = analytics.Deduplicate(children)
	}
	return &children, nil
}

func (cu *childUseCase) DeleteChild(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	if err := cu.repo.DeleteChild(ctx, id); err != nil {
		return err
	}
	invalidateCache(ctx, cu.cache)
	return nil
}

// ChildHistoryQRCode renders a PNG QR code pointing at the NIK's history. The
// history must be visible to the scope.
func (cu *childUseCase) ChildHistoryQRCode(ctx context.Context, scope domain.Scope, nik string) ([]byte, error) {
	if _, err := cu.GetChildHistory(ctx, scope, nik); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/children/nik/%s/history", cu.baseURL, strings.TrimSpace(nik))
	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("could not generate qr code: %w", err)
	}
	return png, nil
}

// ImportChildren validates every uploaded row and stores them in one
// transaction. Any invalid row rejects the whole upload with an ImportError.
func (cu *childUseCase) ImportChildren(ctx context.Context, rows []domain.ChildUpload) (int, error) {
	if len(rows) == 0 {
		return 0, domain.NewValidationError("file", "file contains no data rows")
	}

	var rejected []string
	imports := make([]domain.ChildImport, 0, len(rows))
	seen := make(map[string]int)
	for i := range rows {
		p := &rows[i].Payload
		if err := validateChild(p); err != nil {
			rejected = append(rejected, fmt.Sprintf("row %d: %s", rows[i].Row, err.Error()))
			continue
		}
		if p.NIK != nil && *p.NIK != "" {
			if first, dup := seen[*p.NIK]; dup {
				rejected = append(rejected, fmt.Sprintf("row %d: nik %s already used in row %d", rows[i].Row, *p.NIK, first))
				continue
			}
			seen[*p.NIK] = rows[i].Row
		}

		row := domain.ChildImport{Row: rows[i].Row, Child: p.ToChildRecord()}
		if row.Child.NIK != nil && *row.Child.NIK == "" {
			row.Child.NIK = nil
		}
		if p.Alamat != nil {
			a := p.Alamat.ToAddress()
			row.Address = &a
		}
		imports = append(imports, row)
	}
	if len(rejected) > 0 {
		return 0, &domain.ImportError{Rows: rejected}
	}

	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	if err := cu.repo.ImportChildren(ctx, imports); err != nil {
		return 0, err
	}
	invalidateCache(ctx, cu.cache)
	return len(imports), nil
}
