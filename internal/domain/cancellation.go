package domain

// CancellationReason закрытый справочник причин отмены бронирования
type CancellationReason struct {
	ID          int64
	Reason      string
	Description string
}

// CancellationReasons форматы причин согласованы с фронтендом, порядок стабильный
var CancellationReasons = []CancellationReason{
	{ID: 1, Reason: "Customer Request", Description: "Customer requested cancellation"},
	{ID: 2, Reason: "Restaurant Closure", Description: "Restaurant temporarily closed"},
	{ID: 3, Reason: "Weather", Description: "Cancelled due to weather conditions"},
	{ID: 4, Reason: "Emergency", Description: "Emergency cancellation"},
	{ID: 5, Reason: "No Longer Needed", Description: "Booking no longer needed"},
}

// CancellationReasonByID возвращает причину по ID, ok=false для неизвестного ID
func CancellationReasonByID(id int64) (CancellationReason, bool) {
	for _, r := range CancellationReasons {
		if r.ID == id {
			return r, true
		}
	}
	return CancellationReason{}, false
}
