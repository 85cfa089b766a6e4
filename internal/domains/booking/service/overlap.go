package service

import (
	"context"
	"fmt"
	"medimate/internal/domains/booking/model"
	"medimate/internal/domains/booking/repository"
)

// OverlapChecker compares a candidate slot against the bookings one participant already holds.
type OverlapChecker struct {
	repo repository.Booking
}

func NewOverlapChecker(repo repository.Booking) OverlapChecker {
	return OverlapChecker{repo: repo}
}

// HasConflict reports whether any booking of ownerKey on axis, other than excludeBookingID,
// overlaps candidate. It always reads the store.
func (o OverlapChecker) HasConflict(ctx context.Context, axis repository.OwnerAxis, ownerKey string, candidate model.Interval, excludeBookingID string) (bool, error) {
	bookings, err := o.repo.FindByOwner(ctx, axis, ownerKey)
	if err != nil {
		return false, fmt.Errorf("failed to check %s overlap: %w", axis, err)
	}

	for _, booking := range bookings {
		if excludeBookingID != "" && booking.ID == excludeBookingID {
			continue
		}

		if booking.Interval().Overlaps(candidate) {
			return true, nil
		}
	}

	return false, nil
}
