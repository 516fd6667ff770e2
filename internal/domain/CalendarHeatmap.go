package domain

import "time"

const (
	UnitUsers = "users"
	UnitUSD   = "USD"
)

// HeatmapCell é um dia do mapa de calor de calendário
type HeatmapCell struct {
	Date    string  `json:"date"`
	Week    int     `json:"week"`    // Semana ISO do ano
	Weekday int     `json:"weekday"` // 0 = segunda-feira, 6 = domingo
	Month   int     `json:"month"`
	Value   float64 `json:"value"`
}

// HeatmapYear agrupa as células de um ano do calendário
type HeatmapYear struct {
	Year  int           `json:"year"`
	Cells []HeatmapCell `json:"cells"`
}

// CalendarHeatmap é a representação de uma série diária como mapa de calor de calendário
type CalendarHeatmap struct {
	Title string        `json:"title"`
	Unit  string        `json:"unit"`
	Min   float64       `json:"min"`
	Max   float64       `json:"max"`
	Years []HeatmapYear `json:"years"`
}

// HeatmapsResponse traz os dois mapas de calor do painel
type HeatmapsResponse struct {
	RunID       string           `json:"run_id"`
	Revenue     *CalendarHeatmap `json:"revenue"`
	ActiveUsers *CalendarHeatmap `json:"active_users"`
}

// NewCalendarHeatmap agrupa a série por ano, posicionando cada dia pela semana ISO e dia da semana
func NewCalendarHeatmap(title, unit string, series DailySeries) *CalendarHeatmap {
	heatmap := &CalendarHeatmap{
		Title: title,
		Unit:  unit,
		Years: []HeatmapYear{},
	}

	for i, value := range series.Values {
		date := series.Range.DateAt(i)

		if i == 0 || value < heatmap.Min {
			heatmap.Min = value
		}
		if i == 0 || value > heatmap.Max {
			heatmap.Max = value
		}

		// Semanas ISO podem pertencer ao ano vizinho; o agrupamento segue o ano civil
		_, week := date.ISOWeek()
		if date.Month() == time.January && week > 50 {
			week = 0
		}
		if date.Month() == time.December && week == 1 {
			week = 53
		}

		cell := HeatmapCell{
			Date:    date.Format(time.DateOnly),
			Week:    week,
			Weekday: (int(date.Weekday()) + 6) % 7,
			Month:   int(date.Month()),
			Value:   value,
		}

		last := len(heatmap.Years) - 1
		if last < 0 || heatmap.Years[last].Year != date.Year() {
			heatmap.Years = append(heatmap.Years, HeatmapYear{Year: date.Year()})
			last++
		}
		heatmap.Years[last].Cells = append(heatmap.Years[last].Cells, cell)
	}

	return heatmap
}
