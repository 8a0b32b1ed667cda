package finance

import (
	"time"

	"carrental-backend/internal/domain"
)

const day = 24 * time.Hour

// RentalDays counts the chargeable days between pickup and drop. Every started
// 24 hour period is charged and a rental is never shorter than one day.
func RentalDays(pickup, drop time.Time) (int, error) {
	if drop.Before(pickup) {
		return 0, domain.InvalidInput("dropDate", "must not be before pickupDate")
	}
	days := periods(drop.Sub(pickup))
	if days < 1 {
		days = 1
	}
	return days, nil
}

// ExtensionDays counts the chargeable days added by moving the drop date from
// drop to extendedDrop. Moving it earlier or not at all adds nothing.
func ExtensionDays(drop, extendedDrop time.Time) int {
	if !extendedDrop.After(drop) {
		return 0
	}
	return periods(extendedDrop.Sub(drop))
}

func periods(d time.Duration) int {
	n := int(d / day)
	if d%day > 0 {
		n++
	}
	return n
}
