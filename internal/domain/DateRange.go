package domain

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DateRange representa um intervalo inclusivo de dias de calendário
type DateRange struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// NewDateRange normaliza as datas para meia-noite UTC
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{
		Start: truncateToDay(start),
		End:   truncateToDay(end),
	}
}

// Days retorna a quantidade de dias do intervalo, incluindo o início e o fim.
// Um intervalo invertido tem zero dias.
func (r DateRange) Days() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int((r.End.Unix()-r.Start.Unix())/secondsPerDay) + 1
}

// DateAt retorna a data na posição i do intervalo (posição 0 = início)
func (r DateRange) DateAt(i int) time.Time {
	return r.Start.AddDate(0, 0, i)
}

func (r DateRange) IsInverted() bool {
	return r.End.Before(r.Start)
}

const secondsPerDay = 24 * 60 * 60

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type dateRangeJSON struct {
	Start string `json:"start_date"`
	End   string `json:"end_date"`
}

func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateRangeJSON{
		Start: r.Start.Format(time.DateOnly),
		End:   r.End.Format(time.DateOnly),
	})
}

func (r *DateRange) UnmarshalJSON(data []byte) error {
	var raw dateRangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	start, err := time.Parse(time.DateOnly, raw.Start)
	if err != nil {
		return err
	}
	end, err := time.Parse(time.DateOnly, raw.End)
	if err != nil {
		return err
	}

	*r = NewDateRange(start, end)
	return nil
}
