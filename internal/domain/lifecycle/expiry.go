package lifecycle

import (
	"fmt"
	"time"

	domainErrors "github.com/polkiloo/undangan/internal/domain/errors"
)

var tierDays = map[int64]int{
	1: 30,
	2: 90,
	3: 180,
	4: 360,
}

// ActiveDays returns how long an invitation of the tier stays active.
func ActiveDays(tier int64) (int, error) {
	days, ok := tierDays[tier]
	if !ok {
		return 0, fmt.Errorf("%w: %d", domainErrors.ErrUnknownTier, tier)
	}
	return days, nil
}

// ExpiryDate adds the tier offset to the creation instant at calendar-day precision (UTC).
func ExpiryDate(tier int64, createdAt time.Time) (time.Time, error) {
	days, err := ActiveDays(tier)
	if err != nil {
		return time.Time{}, err
	}
	day := createdAt.UTC().Truncate(24 * time.Hour)
	return day.AddDate(0, 0, days), nil
}
