package domain

import (
	"context"
	"time"
)

type RegionLevel string

const (
	LevelAll      RegionLevel = "all"
	LevelProvince RegionLevel = "province"
	LevelCity     RegionLevel = "city"
	LevelDistrict RegionLevel = "district"
)

// Region names the administrative unit a statistics request targets. Only the
// names up to Level are meaningful.
type Region struct {
	Level    RegionLevel `json:"level"`
	Province string      `json:"province,omitempty"`
	City     string      `json:"city,omitempty"`
	District string      `json:"district,omitempty"`
}

// Name returns the most specific name of the region for its level.
func (r Region) Name() string {
	switch r.Level {
	case LevelProvince:
		return r.Province
	case LevelCity:
		return r.City
	case LevelDistrict:
		return r.District
	default:
		return "Indonesia"
	}
}

// GroupField is the address field the region's children are grouped by.
func (r Region) GroupField() string {
	switch r.Level {
	case LevelProvince:
		return "city"
	case LevelCity:
		return "district"
	case LevelDistrict:
		return "village"
	default:
		return "province"
	}
}

// GroupKey returns the response key holding the per-group breakdown,
// e.g. groupedByCity.
func (r Region) GroupKey() string {
	switch r.Level {
	case LevelProvince:
		return "groupedByCity"
	case LevelCity:
		return "groupedByDistrict"
	case LevelDistrict:
		return "groupedByVillage"
	default:
		return "groupedByProvince"
	}
}

type PeriodMode string

const (
	ModeCumulative PeriodMode = "cumulative"
	ModePeriod     PeriodMode = "period"
)

// Period selects examinations by creation time. A zero Year means no filter.
type Period struct {
	Year  int        `json:"year,omitempty"`
	Month int        `json:"month,omitempty"`
	Mode  PeriodMode `json:"mode,omitempty"`
}

func (p Period) IsZero() bool {
	return p.Year == 0
}

// Bounds returns the [from, to) window of the period in the server's local
// time zone. from is zero in cumulative mode.
func (p Period) Bounds() (time.Time, time.Time) {
	return p.BoundsIn(time.Local)
}

// BoundsIn is Bounds with month and year edges taken in loc.
func (p Period) BoundsIn(loc *time.Location) (time.Time, time.Time) {
	if p.IsZero() {
		return time.Time{}, time.Time{}
	}
	var start, end time.Time
	if p.Month == 0 {
		start = time.Date(p.Year, time.January, 1, 0, 0, 0, 0, loc)
		end = start.AddDate(1, 0, 0)
	} else {
		start = time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 1, 0)
	}
	if p.Mode == ModePeriod {
		return start, end
	}
	return time.Time{}, end
}

type GroupStat struct {
	Name          string `json:"name"`
	TotalChildren int    `json:"totalChildren"`
	TotalStunting int    `json:"totalStunting"`
	StuntingRate  string `json:"stuntingRate"`
}

type RegionStats struct {
	Level         RegionLevel          `json:"level"`
	Location      Region               `json:"location"`
	TotalChildren int                  `json:"totalChildren"`
	TotalStunting int                  `json:"totalStunting"`
	StuntingRate  string               `json:"stuntingRate"`
	Groups        map[string]GroupStat `json:"groups"`
	Data          []ChildRecord        `json:"data"`
}

// Body renders the stats in the response shape, with the breakdown under the
// level-specific groupedBy key.
func (s RegionStats) Body() map[string]interface{} {
	groups := s.Groups
	if groups == nil {
		groups = map[string]GroupStat{}
	}
	data := s.Data
	if data == nil {
		data = []ChildRecord{}
	}
	return map[string]interface{}{
		"level":               s.Level,
		"location":            s.Location,
		"totalChildren":       s.TotalChildren,
		"totalStunting":       s.TotalStunting,
		"stuntingRate":        s.StuntingRate,
		s.Location.GroupKey(): groups,
		"data":                data,
	}
}

type StatsQuery struct {
	Region Region
	Period Period
	// District narrows an admin view to one kecamatan; ignored for scoped users.
	District string
}

type StatsUseCase interface {
	GetRegionStats(ctx context.Context, scope Scope, query StatsQuery) (*RegionStats, error)
	ExportRegionStats(ctx context.Context, scope Scope, query StatsQuery) ([]byte, error)
}
