package analytics

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"stunting/domain"
)

const unknownGroup = "Tidak diketahui"

// Rate formats stunting/total as a percentage with two decimals, halves
// rounded up. An empty group reports "0.00".
func Rate(stunting, total int) string {
	if total == 0 {
		return "0.00"
	}
	pct := decimal.NewFromInt(int64(stunting) * 100).Div(decimal.NewFromInt(int64(total)))
	return pct.StringFixed(2)
}

// GroupName returns the value of the address field records are grouped by at
// the given region level.
func GroupName(region domain.Region, rec *domain.ChildRecord) string {
	if rec.Alamat == nil {
		return unknownGroup
	}
	var name string
	switch region.GroupField() {
	case "city":
		name = rec.Alamat.City
	case "district":
		name = rec.Alamat.CityDistrict
	case "village":
		name = rec.Alamat.Village
	default:
		name = rec.Alamat.Province
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return unknownGroup
	}
	return name
}

// Aggregate counts children and stunting cases per group of the region's
// drill-down level. Records are expected to be deduplicated already.
func Aggregate(region domain.Region, records []domain.ChildRecord) domain.RegionStats {
	type counter struct{ total, stunting int }

	groups := make(map[string]*counter)
	total, stunting := 0, 0
	for i := range records {
		name := GroupName(region, &records[i])
		c, ok := groups[name]
		if !ok {
			c = &counter{}
			groups[name] = c
		}
		c.total++
		total++
		if records[i].IsStunting {
			c.stunting++
			stunting++
		}
	}

	out := make(map[string]domain.GroupStat, len(groups))
	for name, c := range groups {
		out[name] = domain.GroupStat{
			Name:          name,
			TotalChildren: c.total,
			TotalStunting: c.stunting,
			StuntingRate:  Rate(c.stunting, c.total),
		}
	}

	return domain.RegionStats{
		Level:         region.Level,
		Location:      region,
		TotalChildren: total,
		TotalStunting: stunting,
		StuntingRate:  Rate(stunting, total),
		Groups:        out,
		Data:          records,
	}
}

// SortedGroups returns the groups ordered by name, for stable exports.
func SortedGroups(groups map[string]domain.GroupStat) []domain.GroupStat {
	out := make([]domain.GroupStat, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
