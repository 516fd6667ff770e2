package domain

import (
	"time"
)

// DailySeries é uma sequência de valores diários alinhada com um DateRange.
// A posição 0 corresponde à data de início.
type DailySeries struct {
	Range  DateRange
	Values []float64
}

// DatedValue é um valor da série marcado com a sua data
type DatedValue struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// NewDailySeries cria uma série zerada com um valor por dia do intervalo
func NewDailySeries(r DateRange) DailySeries {
	return DailySeries{
		Range:  r,
		Values: make([]float64, r.Days()),
	}
}

func (s DailySeries) Len() int {
	return len(s.Values)
}

// Points marca cada valor com a sua data no formato YYYY-MM-DD
func (s DailySeries) Points() []DatedValue {
	points := make([]DatedValue, len(s.Values))
	for i, v := range s.Values {
		points[i] = DatedValue{
			Date:  s.Range.DateAt(i).Format(time.DateOnly),
			Value: v,
		}
	}
	return points
}

// Total soma todos os valores da série
func (s DailySeries) Total() float64 {
	total := 0.0
	for _, v := range s.Values {
		total += v
	}
	return total
}
