package domain

// Default values used when the restaurant catalog omits optional settings
const (
	DefaultSlotGranularityMinutes = 30
	DefaultTablesPerSlot          = 1
	DefaultMaxPartySize           = 8
)

// Business validation constants
const (
	MinPartySize = 1

	MinSlotGranularityMinutes = 5
	MaxSlotGranularityMinutes = 240

	BookingReferenceLength = 7

	MaxSpecialRequestsLength = 500
	MaxCustomerNameLength    = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses статусы, удерживающие место в слоте.
// Используются при подсчёте занятости.
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses статусы, из которых нет переходов
var TerminalStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
	StatusNoShow,
}
