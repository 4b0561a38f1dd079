package service

import (
	"time"

	"shareit/pkg/model"
)

// resolveLastNext picks the booking with the latest start at or before now
// and the one with the earliest start after now. Ties keep the lower id.
func resolveLastNext(bookings []*model.Booking, now time.Time) (last, next *model.Booking) {
	for _, b := range bookings {
		if b.Start.After(now) {
			if next == nil || b.Start.Before(next.Start) || (b.Start.Equal(next.Start) && b.ID < next.ID) {
				next = b
			}
			continue
		}
		if last == nil || b.Start.After(last.Start) || (b.Start.Equal(last.Start) && b.ID < last.ID) {
			last = b
		}
	}
	return last, next
}

func groupBookingsByItem(bookings []*model.Booking) map[int64][]*model.Booking {
	grouped := make(map[int64][]*model.Booking)
	for _, b := range bookings {
		grouped[b.ItemID] = append(grouped[b.ItemID], b)
	}
	return grouped
}
