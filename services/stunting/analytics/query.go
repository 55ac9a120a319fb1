package analytics

import (
	"strconv"
	"strings"

	"stunting/domain"
)

// ParsePeriod reads the year, month and mode query values.
func ParsePeriod(year, month, mode string) (domain.Period, error) {
	var p domain.Period

	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", string(domain.ModeCumulative):
		p.Mode = domain.ModeCumulative
	case string(domain.ModePeriod), "monthly", "yearly":
		p.Mode = domain.ModePeriod
	default:
		return p, domain.NewValidationError("mode", "mode must be 'cumulative' or 'period'")
	}

	year = strings.TrimSpace(year)
	month = strings.TrimSpace(month)
	if year == "" {
		if month != "" {
			return p, domain.NewValidationError("month", "month requires year")
		}
		return p, nil
	}

	y, err := strconv.Atoi(year)
	if err != nil || y < 1900 || y > 9999 {
		return p, domain.NewValidationError("year", "year must be a four digit number")
	}
	p.Year = y

	if month != "" {
		m, err := strconv.Atoi(month)
		if err != nil || m < 1 || m > 12 {
			return p, domain.NewValidationError("month", "month must be between 1 and 12")
		}
		p.Month = m
	}
	return p, nil
}

// ParseRegion builds a Region from a level and the names along it. Every name
// up to the level is required.
func ParseRegion(level, province, city, district string) (domain.Region, error) {
	r := domain.Region{
		Level:    domain.RegionLevel(strings.ToLower(strings.TrimSpace(level))),
		Province: strings.TrimSpace(province),
		City:     strings.TrimSpace(city),
		District: strings.TrimSpace(district),
	}
	if r.Level == "" {
		r.Level = domain.LevelAll
	}

	switch r.Level {
	case domain.LevelAll:
		return domain.Region{Level: domain.LevelAll}, nil
	case domain.LevelProvince:
		r.City, r.District = "", ""
	case domain.LevelCity:
		r.District = ""
	case domain.LevelDistrict:
	default:
		return r, domain.NewValidationError("level", "level must be one of all, province, city, district")
	}

	if r.Province == "" {
		return r, domain.NewValidationError("province", "province is required")
	}
	if (r.Level == domain.LevelCity || r.Level == domain.LevelDistrict) && r.City == "" {
		return r, domain.NewValidationError("city", "city is required")
	}
	if r.Level == domain.LevelDistrict && r.District == "" {
		return r, domain.NewValidationError("district", "district is required")
	}
	return r, nil
}
