package order

import (
	"fmt"
	"time"
)

// NextDeliveryDate computes the next delivery instant for a recurring order
// from a reference instant. Weekly, biweekly and custom frequencies add a
// fixed number of days; monthly and quarterly use calendar month arithmetic
// with Go's AddDate normalization (Jan 31 + 1 month lands on Mar 2/3).
//
// customDays is required iff freq is FrequencyCustom and must be positive.
func NextDeliveryDate(freq Frequency, from time.Time, customDays *int) (time.Time, error) {
	switch freq {
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7), nil
	case FrequencyBiweekly:
		return from.AddDate(0, 0, 14), nil
	case FrequencyMonthly:
		return from.AddDate(0, 1, 0), nil
	case FrequencyQuarterly:
		return from.AddDate(0, 3, 0), nil
	case FrequencyCustom:
		if customDays == nil || *customDays <= 0 {
			return time.Time{}, ErrCustomDaysRequired
		}
		return from.AddDate(0, 0, *customDays), nil
	}
	return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidFrequency, freq)
}
