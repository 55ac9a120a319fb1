package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"stunting/domain"
)

type fakeChildRepo struct {
	records   []domain.ChildRecord
	created   *domain.ChildRecord
	createdAd *domain.Address
	findCalls int
	err       error
}

func (f *fakeChildRepo) CreateChild(ctx context.Context, child *domain.ChildRecord, addr *domain.Address) error {
	if f.err != nil {
		return f.err
	}
	if child.ID == uuid.Nil {
		child.ID = uuid.New()
	}
	if addr != nil {
		addr.ID = uuid.New()
		child.AlamatID = &addr.ID
		child.Alamat = addr
	}
	f.created = child
	f.createdAd = addr
	f.records = append(f.records, *child)
	return nil
}

func (f *fakeChildRepo) ImportChildren(ctx context.Context, rows []domain.ChildImport) error {
	if f.err != nil {
		return f.err
	}
	for i := range rows {
		if err := f.CreateChild(ctx, &rows[i].Child, rows[i].Address); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeChildRepo) GetChildByID(ctx context.Context, id uuid.UUID) (*domain.ChildRecord, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			rec := f.records[i]
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("child %s: %w", id, domain.ErrNotFound)
}

func (f *fakeChildRepo) GetChildrenByNIK(ctx context.Context, nik string) (*[]domain.ChildRecord, error) {
	var out []domain.ChildRecord
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].HasNIK() && *f.records[i].NIK == nik {
			out = append(out, f.records[i])
		}
	}
	return &out, nil
}

func (f *fakeChildRepo) FindChildren(ctx context.Context, filter domain.ChildListFilter) (*[]domain.ChildRecord, error) {
	f.findCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := []domain.ChildRecord{}
	for _, rec := range f.records {
		if filter.Region.Level == domain.LevelProvince {
			if rec.Alamat == nil || !strings.EqualFold(rec.Alamat.Province, filter.Region.Province) {
				continue
			}
		}
		out = append(out, rec)
	}
	return &out, nil
}

func (f *fakeChildRepo) DeleteChild(ctx context.Context, id uuid.UUID) error {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeAddressRepo struct {
	addrs   []domain.Address
	inUse   map[uuid.UUID]bool
	created int
}

func (f *fakeAddressRepo) GetAllAddress(ctx context.Context) (*[]domain.Address, error) {
	out := append([]domain.Address(nil), f.addrs...)
	return &out, nil
}

func (f *fakeAddressRepo) GetAddressByID(ctx context.Context, id uuid.UUID) (*domain.Address, error) {
	for i := range f.addrs {
		if f.addrs[i].ID == id {
			a := f.addrs[i]
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAddressRepo) CreateAddress(ctx context.Context, addr *domain.Address) error {
	addr.ID = uuid.New()
	f.addrs = append(f.addrs, *addr)
	f.created++
	return nil
}

func (f *fakeAddressRepo) UpdateAddress(ctx context.Context, id uuid.UUID, addr *domain.Address) (*domain.Address, error) {
	for i := range f.addrs {
		if f.addrs[i].ID == id {
			addr.ID = id
			f.addrs[i] = *addr
			return addr, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAddressRepo) DeleteAddress(ctx context.Context, id uuid.UUID) error {
	if f.inUse[id] {
		return domain.ErrAddressInUse
	}
	for i := range f.addrs {
		if f.addrs[i].ID == id {
			f.addrs = append(f.addrs[:i], f.addrs[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeUserRepo struct {
	users []domain.User
}

func (f *fakeUserRepo) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	for i := range f.users {
		if f.users[i].Username == strings.ToLower(username) {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *domain.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return domain.ErrDuplicate
		}
	}
	user.UserID = len(f.users) + 1
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) GetAllUser(ctx context.Context) (*[]domain.User, error) {
	out := append([]domain.User(nil), f.users...)
	return &out, nil
}

// memCache is an in-process StatsCache that counts invalidations.
type memCache struct {
	values      map[string]interface{}
	invalidated int
}

func newMemCache() *memCache {
	return &memCache{values: map[string]interface{}{}}
}

func (m *memCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	v, ok := m.values[key]
	if !ok {
		return false, nil
	}
	switch d := dest.(type) {
	case *domain.RegionStats:
		*d = v.(domain.RegionStats)
	case *domain.PolicyRecommendation:
		*d = v.(domain.PolicyRecommendation)
	default:
		return false, nil
	}
	return true, nil
}

func (m *memCache) Set(ctx context.Context, key string, value interface{}) error {
	m.values[key] = value
	return nil
}

func (m *memCache) Invalidate(ctx context.Context) error {
	m.values = map[string]interface{}{}
	m.invalidated++
	return nil
}

type fakeRecommender struct {
	policyCalls int
	lastStats   *domain.RegionStats
	fallback    bool
}

func (f *fakeRecommender) Individual(ctx context.Context, child *domain.ChildRecord) domain.IndividualRecommendation {
	status := "normal"
	if child.IsStunting {
		status = "stunting"
	}
	return domain.IndividualRecommendation{HealthStatus: status}
}

func (f *fakeRecommender) Policy(ctx context.Context, stats *domain.RegionStats) (domain.PolicyRecommendation, bool) {
	f.policyCalls++
	f.lastStats = stats
	return domain.PolicyRecommendation{Priority: domain.PriorityLow, Summary: stats.Location.Name()}, !f.fallback
}
