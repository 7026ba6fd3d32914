package restaurantcatalog

// Restaurant модель ресторана из каталога
type Restaurant struct {
	ID                     int64        `json:"id"`
	Name                   string       `json:"name"`
	MicrositeName          string       `json:"microsite_name"`
	Timezone               string       `json:"timezone"` // IANA, например "Europe/London"
	MaxPartySize           int          `json:"max_party_size"`
	TablesPerSlot          int          `json:"tables_per_slot"` // Вместимость одного слота
	SlotGranularityMinutes int          `json:"slot_granularity_minutes"`
	OpeningHours           OpeningHours `json:"opening_hours"`
}

// OpeningHours расписание работы ресторана по дням недели
type OpeningHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// DaySchedule часы работы в один день недели
type DaySchedule struct {
	IsOpen    bool    `json:"is_open"`
	OpenTime  *string `json:"open_time,omitempty"`  // "12:00"
	CloseTime *string `json:"close_time,omitempty"` // "22:00"
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
