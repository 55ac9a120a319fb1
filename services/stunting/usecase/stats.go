package usecase

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"stunting/config"
	"stunting/domain"
	"stunting/services/stunting/analytics"
)

const exportSheet = "Rekap"

type statsUseCase struct {
	repo    domain.ChildRepo
	cache   domain.StatsCache
	TimeOut time.Duration
}

func NewStatsUseCase(repo domain.ChildRepo, cache domain.StatsCache, to time.Duration) domain.StatsUseCase {
	return &statsUseCase{
		repo:    repo,
		cache:   cache,
		TimeOut: to,
	}
}

// cacheKey identifies one scoped statistics request.
func cacheKey(kind string, scope domain.Scope, q domain.StatsQuery) string {
	eff := scope.Narrow(q.District)
	return strings.ToLower(fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%d|%d|%s",
		kind, eff.Role, eff.District, q.Region.Level, q.Region.Province, q.Region.City, q.Region.District,
		q.Period.Year, q.Period.Month, q.Period.Mode))
}

func (su *statsUseCase) GetRegionStats(ctx context.Context, scope domain.Scope, query domain.StatsQuery) (*domain.RegionStats, error) {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	return computeStats(ctx, su.repo, su.cache, scope, query)
}

func computeStats(ctx context.Context, repo domain.ChildRepo, cache domain.StatsCache, scope domain.Scope, query domain.StatsQuery) (*domain.RegionStats, error) {
	log := config.GetLogrusInstance()
	key := cacheKey("stats", scope, query)

	var cached domain.RegionStats
	if hit, err := cache.Get(ctx, key, &cached); err != nil {
		log.WithError(err).Warn("statistics cache read failed")
	} else if hit {
		return &cached, nil
	}

	v, err := repo.FindChildren(ctx, domain.ChildListFilter{
		Region: query.Region,
		Period: query.Period,
	})
	if err != nil {
		return nil, err
	}

	visible := domain.FilterRecords(scope.Narrow(query.District), *v)
	stats := analytics.Aggregate(query.Region, analytics.Deduplicate(visible))

	if err := cache.Set(ctx, key, stats); err != nil {
		log.WithError(err).Warn("statistics cache write failed")
	}
	return &stats, nil
}

// ExportRegionStats writes the group breakdown and the total row to an XLSX
// workbook.
func (su *statsUseCase) ExportRegionStats(ctx context.Context, scope domain.Scope, query domain.StatsQuery) ([]byte, error) {
	stats, err := su.GetRegionStats(ctx, scope, query)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	f.SetCellValue(exportSheet, "A1", fmt.Sprintf("Rekap Stunting %s", stats.Location.Name()))
	headers := []string{"Wilayah", "Jumlah Anak", "Jumlah Stunting", "Persentase (%)"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		f.SetCellValue(exportSheet, cell, header)
		f.SetColWidth(exportSheet, cell[:1], cell[:1], 20)
	}

	row := 4
	for _, g := range analytics.SortedGroups(stats.Groups) {
		f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), g.Name)
		f.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), g.TotalChildren)
		f.SetCellValue(exportSheet, fmt.Sprintf("C%d", row), g.TotalStunting)
		f.SetCellValue(exportSheet, fmt.Sprintf("D%d", row), g.StuntingRate)
		row++
	}
	f.SetCellValue(exportSheet, fmt.Sprintf("A%d", row), "Total")
	f.SetCellValue(exportSheet, fmt.Sprintf("B%d", row), stats.TotalChildren)
	f.SetCellValue(exportSheet, fmt.Sprintf("C%d", row), stats.TotalStunting)
	f.SetCellValue(exportSheet, fmt.Sprintf("D%d", row), stats.StuntingRate)

	var buf *bytes.Buffer
	if buf, err = f.WriteToBuffer(); err != nil {
		return nil, fmt.Errorf("could not write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
