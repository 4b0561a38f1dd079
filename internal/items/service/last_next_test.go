package service

import (
	"testing"
	"time"

	"shareit/pkg/model"
)

func TestResolveLastNext(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return now.Add(time.Duration(h) * time.Hour) }

	tests := []struct {
		name     string
		bookings []*model.Booking
		wantLast int64
		wantNext int64
	}{
		{"none", nil, 0, 0},
		{"only future", []*model.Booking{{ID: 1, Start: at(2)}, {ID: 2, Start: at(1)}}, 0, 2},
		{"only past", []*model.Booking{{ID: 1, Start: at(-5)}, {ID: 2, Start: at(-1)}}, 2, 0},
		{"start equal to now counts as last", []*model.Booking{{ID: 1, Start: now}, {ID: 2, Start: at(1)}}, 1, 2},
		{"current rental is last", []*model.Booking{{ID: 1, Start: at(-1), End: at(1)}, {ID: 2, Start: at(-10)}}, 1, 0},
		{"rejected still counts", []*model.Booking{{ID: 3, Start: at(3), Status: model.StatusRejected}}, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last, next := resolveLastNext(tt.bookings, now)
			if got := idOf(last); got != tt.wantLast {
				t.Errorf("last = %d, want %d", got, tt.wantLast)
			}
			if got := idOf(next); got != tt.wantNext {
				t.Errorf("next = %d, want %d", got, tt.wantNext)
			}
		})
	}
}

func idOf(b *model.Booking) int64 {
	if b == nil {
		return 0
	}
	return b.ID
}
