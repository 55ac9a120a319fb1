package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriod_BoundsIn(t *testing.T) {
	wib := time.FixedZone("WIB", 7*60*60)

	// 00:30 WIB on 1 February is still 31 January in UTC.
	examined := time.Date(2024, 1, 31, 17, 30, 0, 0, time.UTC)

	feb := Period{Year: 2024, Month: 2, Mode: ModePeriod}
	from, to := feb.BoundsIn(wib)
	assert.True(t, from.Equal(time.Date(2024, 1, 31, 17, 0, 0, 0, time.UTC)))
	assert.True(t, to.Equal(time.Date(2024, 2, 29, 17, 0, 0, 0, time.UTC)))
	assert.False(t, examined.Before(from))
	assert.True(t, examined.Before(to))

	jan := Period{Year: 2024, Month: 1, Mode: ModePeriod}
	_, janEnd := jan.BoundsIn(wib)
	assert.False(t, examined.Before(janEnd))

	year := Period{Year: 2023, Mode: ModeCumulative}
	from, to = year.BoundsIn(wib)
	assert.True(t, from.IsZero())
	assert.True(t, to.Equal(time.Date(2023, 12, 31, 17, 0, 0, 0, time.UTC)))
}

func TestPeriod_BoundsUsesLocalZone(t *testing.T) {
	p := Period{Year: 2024, Month: 6, Mode: ModePeriod}
	from, _ := p.Bounds()
	assert.Equal(t, time.Local, from.Location())
	assert.Equal(t, 0, from.Hour())
	assert.Equal(t, 1, from.Day())
}
