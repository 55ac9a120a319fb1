package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"

	"stunting/domain"
	"stunting/middleware"
)

var (
	adminScope    = domain.Scope{Role: domain.RoleAdmin}
	coblongScope  = domain.Scope{Role: domain.RolePuskesmas, District: "coblong"}
	testTimeout   = 5 * time.Second
	pngSignature  = []byte{0x89, 'P', 'N', 'G'}
	validLat      = -6.9
	validLong     = 107.6
	outOfRangeLat = 91.0
)

func intPtr(v int) *int               { return &v }
func f64Ptr(v float64) *float64       { return &v }
func strPtr(s string) *string         { return &s }
func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

func validChildPayload() *domain.ChildPayload {
	return &domain.ChildPayload{
		NIK:         strPtr("3273010101010001"),
		Name:        "Sari",
		Gender:      "female",
		Age:         intPtr(18),
		BirthWeight: f64Ptr(3.1),
		BirthLength: f64Ptr(49),
		BodyWeight:  f64Ptr(9.2),
		BodyLength:  f64Ptr(76),
	}
}

func addressIn(province, city, district, village string) *domain.Address {
	return &domain.Address{
		ID:           uuid.New(),
		Latitude:     f64Ptr(validLat),
		Longitude:    f64Ptr(validLong),
		Province:     province,
		City:         city,
		CityDistrict: district,
		Village:      village,
	}
}

func childAt(nik string, at time.Time, stunting bool, addr *domain.Address) domain.ChildRecord {
	rec := domain.ChildRecord{ID: uuid.New(), CreatedAt: at, IsStunting: stunting, Alamat: addr}
	if nik != "" {
		rec.NIK = strPtr(nik)
	}
	if addr != nil {
		rec.AlamatID = &addr.ID
	}
	return rec
}

func TestAddressUseCase_RejectsOutOfRangeCoordinates(t *testing.T) {
	repo := &fakeAddressRepo{}
	uc := NewAddressUseCase(repo, newMemCache(), testTimeout)

	_, err := uc.CreateAddress(context.Background(), &domain.AddressPayload{
		Latitude:     f64Ptr(outOfRangeLat),
		Longitude:    f64Ptr(validLong),
		Province:     "Jawa Barat",
		City:         "Bandung",
		CityDistrict: "Coblong",
	})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "latitude", vErr.Field)

	_, err = uc.CreateAddress(context.Background(), &domain.AddressPayload{
		Latitude:     f64Ptr(validLat),
		Longitude:    f64Ptr(-180.5),
		Province:     "Jawa Barat",
		City:         "Bandung",
		CityDistrict: "Coblong",
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "longitude", vErr.Field)

	_, err = uc.CreateAddress(context.Background(), &domain.AddressPayload{
		Latitude:  f64Ptr(validLat),
		Longitude: f64Ptr(validLong),
		City:      "Bandung",
	})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "city_district", vErr.Field)

	assert.Zero(t, repo.created)
}

func TestAddressUseCase_BoundaryCoordinatesAccepted(t *testing.T) {
	repo := &fakeAddressRepo{}
	cache := newMemCache()
	uc := NewAddressUseCase(repo, cache, testTimeout)

	addr, err := uc.CreateAddress(context.Background(), &domain.AddressPayload{
		Latitude:     f64Ptr(-90),
		Longitude:    f64Ptr(180),
		Province:     "Papua",
		City:         "Jayapura",
		CityDistrict: "Abepura",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, addr.ID)
	assert.Equal(t, 1, cache.invalidated)
}

func TestAddressUseCase_ScopeAndDelete(t *testing.T) {
	coblong := addressIn("Jawa Barat", "Bandung", "Coblong", "Dago")
	bogor := addressIn("Jawa Barat", "Bogor", "Tanah Sareal", "")
	repo := &fakeAddressRepo{
		addrs: []domain.Address{*coblong, *bogor},
		inUse: map[uuid.UUID]bool{coblong.ID: true},
	}
	uc := NewAddressUseCase(repo, newMemCache(), testTimeout)
	ctx := context.Background()

	all, err := uc.GetAllAddress(ctx, adminScope)
	require.NoError(t, err)
	assert.Len(t, *all, 2)

	scoped, err := uc.GetAllAddress(ctx, coblongScope)
	require.NoError(t, err)
	require.Len(t, *scoped, 1)
	assert.Equal(t, coblong.ID, (*scoped)[0].ID)

	_, err = uc.GetAddressByID(ctx, coblongScope, bogor.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, uc.DeleteAddress(ctx, coblong.ID), domain.ErrAddressInUse)
	assert.Len(t, repo.addrs, 2)
	assert.NoError(t, uc.DeleteAddress(ctx, bogor.ID))
}

func TestChildUseCase_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *domain.ChildPayload)
		field  string
	}{
		{"missing age", func(p *domain.ChildPayload) { p.Age = nil }, "age"},
		{"negative weight", func(p *domain.ChildPayload) { p.BodyWeight = f64Ptr(-1) }, "body_weight"},
		{"short nik", func(p *domain.ChildPayload) { p.NIK = strPtr("123") }, "nik"},
		{"bad gender", func(p *domain.ChildPayload) { p.Gender = "x" }, "gender"},
		{"direct latitude out of range", func(p *domain.ChildPayload) {
			p.Latitude = f64Ptr(outOfRangeLat)
			p.Longitude = f64Ptr(validLong)
		}, "latitude"},
		{"embedded address longitude out of range", func(p *domain.ChildPayload) {
			p.Alamat = &domain.AddressPayload{
				Latitude: f64Ptr(validLat), Longitude: f64Ptr(200),
				Province: "Jawa Barat", City: "Bandung", CityDistrict: "Coblong",
			}
		}, "longitude"},
		{"both address forms", func(p *domain.ChildPayload) {
			p.AlamatID = uuidPtr(uuid.New())
			p.Alamat = &domain.AddressPayload{
				Latitude: f64Ptr(validLat), Longitude: f64Ptr(validLong),
				Province: "Jawa Barat", City: "Bandung", CityDistrict: "Coblong",
			}
		}, "alamat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeChildRepo{}
			uc := NewChildUseCase(repo, newMemCache(), "http://localhost:8000", testTimeout)

			p := validChildPayload()
			tt.mutate(p)
			_, err := uc.CreateChild(context.Background(), p)

			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
			assert.Nil(t, repo.created)
		})
	}
}

func TestChildUseCase_CreateWithEmbeddedAddress(t *testing.T) {
	repo := &fakeChildRepo{}
	cache := newMemCache()
	uc := NewChildUseCase(repo, cache, "http://localhost:8000", testTimeout)

	p := validChildPayload()
	p.Latitude = f64Ptr(validLat)
	p.Longitude = f64Ptr(validLong)
	p.Alamat = &domain.AddressPayload{Province: "Jawa Barat", City: "Bandung", CityDistrict: "Coblong"}

	child, err := uc.CreateChild(context.Background(), p)
	require.NoError(t, err)
	require.NotNil(t, repo.createdAd)
	assert.Equal(t, validLat, *repo.createdAd.Latitude)
	assert.Equal(t, 76.0, child.BodyLength)
	assert.Equal(t, repo.createdAd.ID, *child.AlamatID)
	assert.Equal(t, 1, cache.invalidated)
}

func TestChildUseCase_GetAllChildrenDeduplicates(t *testing.T) {
	addr := addressIn("Jawa Barat", "Bandung", "Coblong", "Dago")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeChildRepo{records: []domain.ChildRecord{
		childAt("111", base, true, addr),
		childAt("111", base.Add(24*time.Hour), false, addr),
		childAt("", base, true, addr),
		childAt("222", base, false, nil),
	}}
	uc := NewChildUseCase(repo, newMemCache(), "", testTimeout)
	ctx := context.Background()

	latest, err := uc.GetAllChildren(ctx, adminScope, false)
	require.NoError(t, err)
	assert.Len(t, *latest, 3)

	everything, err := uc.GetAllChildren(ctx, adminScope, true)
	require.NoError(t, err)
	assert.Len(t, *everything, 4)

	scoped, err := uc.GetAllChildren(ctx, coblongScope, false)
	require.NoError(t, err)
	assert.Len(t, *scoped, 2)

	nobody, err := uc.GetAllChildren(ctx, domain.Scope{Role: domain.RolePuskesmas}, false)
	require.NoError(t, err)
	assert.Empty(t, *nobody)
}

func TestChildUseCase_HistoryAndQRCode(t *testing.T) {
	addr := addressIn("Jawa Barat", "Bandung", "Coblong", "Dago")
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeChildRepo{records: []domain.ChildRecord{
		childAt("111", base, true, addr),
		childAt("111", base.Add(time.Hour), false, addr),
		childAt("333", base, false, nil),
	}}
	uc := NewChildUseCase(repo, newMemCache(), "https://stunting.example.id/", testTimeout)
	ctx := context.Background()

	history, err := uc.GetChildHistory(ctx, adminScope, "111")
	require.NoError(t, err)
	require.Len(t, *history, 2)
	assert.False(t, (*history)[0].IsStunting)

	_, err = uc.GetChildHistory(ctx, adminScope, "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetChildHistory(ctx, coblongScope, "333")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	png, err := uc.ChildHistoryQRCode(ctx, adminScope, "111")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngSignature))
}

func TestChildUseCase_GetChildByIDRespectsScope(t *testing.T) {
	bogor := addressIn("Jawa Barat", "Bogor", "Tanah Sareal", "")
	rec := childAt("111", time.Now().UTC(), false, bogor)
	repo := &fakeChildRepo{records: []domain.ChildRecord{rec}}
	uc := NewChildUseCase(repo, newMemCache(), "", testTimeout)

	got, err := uc.GetChildByID(context.Background(), adminScope, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)

	_, err = uc.GetChildByID(context.Background(), coblongScope, rec.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func jabarRecords() []domain.ChildRecord {
	bandung := addressIn("Jawa Barat", "Bandung", "Coblong", "Dago")
	bogor := addressIn("Jawa Barat", "Bogor", "Tanah Sareal", "")
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []domain.ChildRecord{
		childAt("1", base, true, bandung),
		childAt("1", base.Add(time.Hour), false, bandung),
		childAt("2", base, true, bandung),
		childAt("3", base, false, bogor),
		childAt("4", base, true, bogor),
	}
}

func TestStatsUseCase_GetRegionStats(t *testing.T) {
	repo := &fakeChildRepo{records: jabarRecords()}
	cache := newMemCache()
	uc := NewStatsUseCase(repo, cache, testTimeout)
	ctx := context.Background()

	query := domain.StatsQuery{Region: domain.Region{Level: domain.LevelProvince, Province: "Jawa Barat"}}
	stats, err := uc.GetRegionStats(ctx, adminScope, query)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalChildren)
	assert.Equal(t, 2, stats.TotalStunting)
	assert.Equal(t, "50.00", stats.StuntingRate)
	assert.Equal(t, 2, stats.Groups["Bandung"].TotalChildren)
	assert.Equal(t, "50.00", stats.Groups["Bogor"].StuntingRate)

	_, err = uc.GetRegionStats(ctx, adminScope, query)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.findCalls)

	narrowed, err := uc.GetRegionStats(ctx, adminScope, domain.StatsQuery{Region: query.Region, District: "coblong"})
	require.NoError(t, err)
	assert.Equal(t, 2, narrowed.TotalChildren)

	scoped, err := uc.GetRegionStats(ctx, coblongScope, domain.StatsQuery{Region: query.Region, District: "tanah"})
	require.NoError(t, err)
	assert.Equal(t, 2, scoped.TotalChildren)
}

func TestStatsUseCase_RepositoryError(t *testing.T) {
	repo := &fakeChildRepo{err: errors.New("connection refused")}
	uc := NewStatsUseCase(repo, newMemCache(), testTimeout)

	_, err := uc.GetRegionStats(context.Background(), adminScope, domain.StatsQuery{Region: domain.Region{Level: domain.LevelAll}})
	assert.Error(t, err)
}

func TestStatsUseCase_ExportWorkbook(t *testing.T) {
	repo := &fakeChildRepo{records: jabarRecords()}
	uc := NewStatsUseCase(repo, newMemCache(), testTimeout)

	query := domain.StatsQuery{Region: domain.Region{Level: domain.LevelProvince, Province: "Jawa Barat"}}
	data, err := uc.ExportRegionStats(context.Background(), adminScope, query)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "Rekap Stunting Jawa Barat", rows[0][0])
	assert.Equal(t, []string{"Wilayah", "Jumlah Anak", "Jumlah Stunting", "Persentase (%)"}, rows[2])
	assert.Equal(t, []string{"Total", "4", "2", "50.00"}, rows[5])
}

func TestRecommendationUseCase_Policy(t *testing.T) {
	repo := &fakeChildRepo{records: jabarRecords()}
	rec := &fakeRecommender{}
	uc := NewRecommendationUseCase(repo, rec, newMemCache(), testTimeout)
	ctx := context.Background()

	query := domain.StatsQuery{Region: domain.Region{Level: domain.LevelProvince, Province: "Jawa Barat"}}
	policy, err := uc.GetPolicyRecommendation(ctx, adminScope, query)
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityLow, policy.Priority)
	assert.Equal(t, "Jawa Barat", policy.Summary)
	require.NotNil(t, rec.lastStats)
	assert.Equal(t, 4, rec.lastStats.TotalChildren)

	_, err = uc.GetPolicyRecommendation(ctx, adminScope, query)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.policyCalls)
}

func TestRecommendationUseCase_PolicyFallbackNotCached(t *testing.T) {
	repo := &fakeChildRepo{records: jabarRecords()}
	rec := &fakeRecommender{fallback: true}
	uc := NewRecommendationUseCase(repo, rec, newMemCache(), testTimeout)
	ctx := context.Background()

	query := domain.StatsQuery{Region: domain.Region{Level: domain.LevelProvince, Province: "Jawa Barat"}}
	for i := 0; i < 2; i++ {
		policy, err := uc.GetPolicyRecommendation(ctx, adminScope, query)
		require.NoError(t, err)
		assert.Equal(t, domain.PriorityLow, policy.Priority)
	}
	assert.Equal(t, 2, rec.policyCalls)

	rec.fallback = false
	_, err := uc.GetPolicyRecommendation(ctx, adminScope, query)
	require.NoError(t, err)
	_, err = uc.GetPolicyRecommendation(ctx, adminScope, query)
	require.NoError(t, err)
	assert.Equal(t, 3, rec.policyCalls)
}

func TestRecommendationUseCase_Individual(t *testing.T) {
	records := jabarRecords()
	repo := &fakeChildRepo{records: records}
	uc := NewRecommendationUseCase(repo, &fakeRecommender{}, newMemCache(), testTimeout)
	ctx := context.Background()

	got, err := uc.GetIndividualRecommendation(ctx, adminScope, records[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "stunting", got.HealthStatus)

	_, err = uc.GetIndividualRecommendation(ctx, coblongScope, records[3].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetIndividualRecommendation(ctx, adminScope, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUseCase_CreateUser(t *testing.T) {
	repo := &fakeUserRepo{}
	uc := NewUserUseCase(repo, testTimeout)
	ctx := context.Background()

	safe, err := uc.CreateUser(ctx, &domain.User{Username: " PKM-Coblong ", Password: "rahasia", Role: "Puskesmas", District: strPtr("Coblong")})
	require.NoError(t, err)
	assert.Equal(t, "pkm-coblong", safe.Username)
	require.Len(t, repo.users, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[0].Password), []byte("rahasia")))

	_, err = uc.CreateUser(ctx, &domain.User{Username: "pkm-coblong", Password: "x", Role: "puskesmas", District: strPtr("Coblong")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.CreateUser(ctx, &domain.User{Username: "kader", Password: "x", Role: "kader"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "role", vErr.Field)

	_, err = uc.CreateUser(ctx, &domain.User{Username: "pkm", Password: "x", Role: "puskesmas"})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "district", vErr.Field)

	users, err := uc.GetAllUser(ctx)
	require.NoError(t, err)
	assert.Len(t, *users, 1)
}

func TestAuthUseCase_Login(t *testing.T) {
	t.Setenv("BYTE_KEY", "test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := &fakeUserRepo{users: []domain.User{{
		UserID: 7, Username: "pkm-coblong", Password: string(hash),
		Role: domain.RolePuskesmas, District: strPtr("Coblong"),
	}}}
	uc := NewAuthUseCase(repo, testTimeout)
	ctx := context.Background()

	resp, err := uc.Login(ctx, &domain.LoginRequest{Username: "PKM-Coblong", Password: "rahasia"})
	require.NoError(t, err)
	assert.Equal(t, domain.RolePuskesmas, resp.Role)

	claims, err := middleware.VerifyJWT(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "Coblong", claims.District)

	_, err = uc.Login(ctx, &domain.LoginRequest{Username: "pkm-coblong", Password: "salah"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, &domain.LoginRequest{Username: "nobody", Password: "rahasia"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, &domain.LoginRequest{Username: "pkm-coblong"})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestChildUseCase_ImportChildren(t *testing.T) {
	repo := &fakeChildRepo{}
	cache := newMemCache()
	uc := NewChildUseCase(repo, cache, "", testTimeout)
	ctx := context.Background()

	first := *validChildPayload()
	second := *validChildPayload()
	second.NIK = strPtr("3273010101010002")
	second.Latitude = f64Ptr(validLat)
	second.Longitude = f64Ptr(validLong)
	second.Alamat = &domain.AddressPayload{Province: "Jawa Barat", City: "Bandung", CityDistrict: "Coblong"}

	n, err := uc.ImportChildren(ctx, []domain.ChildUpload{{Row: 2, Payload: first}, {Row: 3, Payload: second}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, repo.records, 2)
	assert.Equal(t, 1, cache.invalidated)

	bad := *validChildPayload()
	bad.Age = nil
	dup := *validChildPayload()
	_, err = uc.ImportChildren(ctx, []domain.ChildUpload{
		{Row: 2, Payload: *validChildPayload()},
		{Row: 3, Payload: bad},
		{Row: 4, Payload: dup},
	})
	var importErr *domain.ImportError
	require.ErrorAs(t, err, &importErr)
	assert.Equal(t, []string{
		"row 3: age: Age is required",
		"row 4: nik 3273010101010001 already used in row 2",
	}, importErr.Rows)
	assert.Len(t, repo.records, 2)

	_, err = uc.ImportChildren(ctx, nil)
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}
