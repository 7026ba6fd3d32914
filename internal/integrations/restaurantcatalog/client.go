package restaurantcatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с каталогом ресторанов.
// Каталог владеет расписанием, вместимостью и таймзоной ресторана;
// здесь эти данные только читаются.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetRestaurant получает ресторан по ID
func (c *Client) GetRestaurant(ctx context.Context, restaurantID int64) (*Restaurant, error) {
	url := fmt.Sprintf("%s/internal/restaurants/%d", c.baseURL, restaurantID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid restaurant ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrRestaurantNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var restaurant Restaurant
	if err := json.NewDecoder(resp.Body).Decode(&restaurant); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	applyDefaults(&restaurant)

	return &restaurant, nil
}

// applyDefaults подставляет дефолты для опциональных настроек каталога
func applyDefaults(r *Restaurant) {
	if r.TablesPerSlot <= 0 {
		r.TablesPerSlot = 1
	}
	if r.SlotGranularityMinutes <= 0 {
		r.SlotGranularityMinutes = 30
	}
	if r.MaxPartySize <= 0 {
		r.MaxPartySize = 8
	}
	if r.Timezone == "" {
		r.Timezone = "UTC"
	}
}

// ScheduleForWeekday возвращает часы работы ресторана в указанный день недели
func (r *Restaurant) ScheduleForWeekday(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return r.OpeningHours.Monday
	case time.Tuesday:
		return r.OpeningHours.Tuesday
	case time.Wednesday:
		return r.OpeningHours.Wednesday
	case time.Thursday:
		return r.OpeningHours.Thursday
	case time.Friday:
		return r.OpeningHours.Friday
	case time.Saturday:
		return r.OpeningHours.Saturday
	case time.Sunday:
		return r.OpeningHours.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// Location возвращает таймзону ресторана; при ошибке парсинга - UTC
func (r *Restaurant) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
