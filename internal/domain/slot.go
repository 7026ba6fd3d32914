package domain

import (
	"time"

	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// SlotKey идентифицирует один бронируемый слот: ресторан + дата + время
type SlotKey struct {
	RestaurantID int64
	Date         time.Time
	Time         types.TimeString
}

// TimeSlot represents one bookable time slot with its remaining capacity.
// Derived data: computed from the restaurant schedule and the occupancy ledger,
// never persisted as-is.
type TimeSlot struct {
	StartTime   types.TimeString
	Capacity    int // Сколько бронирований ресторан принимает одновременно
	BookedCount int // Активные бронирования на это точное время
}

// Available returns true if the slot still has free capacity
func (s *TimeSlot) Available() bool {
	return s.Capacity-s.BookedCount > 0
}

// AvailableSpots returns the number of free spots, never negative
func (s *TimeSlot) AvailableSpots() int {
	free := s.Capacity - s.BookedCount
	if free < 0 {
		return 0
	}
	return free
}

// IsFull returns true if the slot has no free capacity
func (s *TimeSlot) IsFull() bool {
	return !s.Available()
}
