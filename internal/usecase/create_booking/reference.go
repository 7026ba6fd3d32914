package create_booking

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/m04kA/SMC-TableBookingService/internal/domain"
)

// Алфавит кода бронирования: заглавные буквы и цифры
const referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Максимум попыток сгенерировать уникальный код
const maxReferenceAttempts = 5

// generateReference генерирует случайный код бронирования фиксированной длины
func generateReference() (string, error) {
	buf := make([]byte, domain.BookingReferenceLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	for i, b := range buf {
		buf[i] = referenceAlphabet[int(b)%len(referenceAlphabet)]
	}

	return string(buf), nil
}

// uniqueReference генерирует код бронирования, которого еще нет в базе.
// Коллизии крайне маловероятны (36^7 вариантов), но проверяем явно.
func (uc *UseCase) uniqueReference(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		reference, err := generateReference()
		if err != nil {
			return "", err
		}

		exists, err := uc.bookingRepo.ReferenceExists(ctx, reference)
		if err != nil {
			return "", err
		}
		if !exists {
			return reference, nil
		}

		uc.logger.Warn("CreateBooking: reference %s already taken, retrying", reference)
	}

	return "", fmt.Errorf("failed to generate unique reference after %d attempts", maxReferenceAttempts)
}
