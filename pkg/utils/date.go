package utils

import "time"

// ParseDate interpreta uma data no formato YYYY-MM-DD.
// Uma string vazia devolve fallback.
func ParseDate(dateStr string, fallback time.Time) (time.Time, error) {
	if dateStr == "" {
		return fallback, nil
	}

	return time.Parse(time.DateOnly, dateStr)
}

// Today devolve a data de hoje à meia-noite UTC
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
