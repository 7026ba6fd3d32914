// Package ledger авторитетный учёт занятости слотов.
//
// Счётчик booked_count материализован в таблице slot_occupancy с ключом
// (restaurant_id, visit_date, visit_time) и меняется только в одной
// транзакции с изменением таблицы bookings - в любой наблюдаемой точке
// счётчик согласован с бронированиями. Проверка вместимости и инкремент
// выполняются одним условным UPDATE, поэтому конкурентные reserve на один
// слот сериализуются блокировкой строки, не затрагивая другие слоты.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
	"github.com/m04kA/SMC-TableBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-TableBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TableBookingService/pkg/types"
)

// Repository репозиторий счётчиков занятости слотов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория занятости
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Reserve атомарно занимает одно место в слоте.
// Вставляет строку счётчика при первом бронировании слота; при повторных -
// инкрементирует с охранным условием booked_count < capacity. Если условие
// не выполнено, строк не возвращается и reserve завершается ErrSlotFull.
//
// Вызывается только внутри транзакции вместе с INSERT в bookings.
func (r *Repository) Reserve(ctx context.Context, key domain.SlotKey, capacity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("slot_occupancy").
		Columns("restaurant_id", "visit_date", "visit_time", "booked_count", "capacity").
		Values(key.RestaurantID, key.Date, key.Time, 1, capacity).
		Suffix(`ON CONFLICT (restaurant_id, visit_date, visit_time) DO UPDATE
			SET booked_count = slot_occupancy.booked_count + 1,
			    capacity = EXCLUDED.capacity,
			    updated_at = NOW()
			WHERE slot_occupancy.booked_count < EXCLUDED.capacity
			RETURNING booked_count`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reserve - build upsert query: %v", ErrBuildQuery, err)
	}

	var bookedCount int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&bookedCount)
	if err == sql.ErrNoRows {
		// Условный UPDATE не прошёл: слот полон
		return ErrSlotFull
	}
	if err != nil {
		return fmt.Errorf("%w: Reserve - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// Release освобождает одно место в слоте.
// Охранное условие booked_count > 0 делает операцию идемпотентной на уровне
// слота: повторный release уже освобождённого места - no-op, не ошибка.
func (r *Repository) Release(ctx context.Context, key domain.SlotKey) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slot_occupancy").
		Set("booked_count", squirrel.Expr("booked_count - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"restaurant_id": key.RestaurantID,
			"visit_date":    key.Date,
			"visit_time":    key.Time,
		}).
		Where(squirrel.Gt{"booked_count": 0}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// Move переносит одно занятое место из oldKey в newKey.
// Сначала reserve нового слота, затем release старого: при ErrSlotFull
// транзакция вызывающей стороны откатывается целиком и старый слот
// остаётся занятым - утечка вместимости невозможна.
//
// Вызывается только внутри транзакции.
func (r *Repository) Move(ctx context.Context, oldKey, newKey domain.SlotKey, capacity int) error {
	if err := r.Reserve(ctx, newKey, capacity); err != nil {
		return err
	}
	return r.Release(ctx, oldKey)
}

// GetDayOccupancy возвращает счётчики занятости всех слотов ресторана на дату.
// Используется калькулятором слотов; читает те же строки, которые меняет
// Reserve/Release, поэтому результат согласован с bookings.
func (r *Repository) GetDayOccupancy(ctx context.Context, restaurantID int64, date time.Time) (map[types.TimeString]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("visit_time", "booked_count").
		From("slot_occupancy").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		Where(squirrel.Eq{"visit_date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDayOccupancy - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDayOccupancy - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	occupancy := make(map[types.TimeString]int)
	for rows.Next() {
		var visitTime types.TimeString
		var bookedCount int
		if err := rows.Scan(&visitTime, &bookedCount); err != nil {
			return nil, fmt.Errorf("%w: GetDayOccupancy - scan row: %v", ErrScanRow, err)
		}
		occupancy[visitTime] = bookedCount
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDayOccupancy - rows error: %v", ErrScanRow, err)
	}

	return occupancy, nil
}
