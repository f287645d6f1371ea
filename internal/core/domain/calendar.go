package domain

import (
	"sort"
	"time"
)

type CalendarViewMode string

const (
	CalendarViewWeek  CalendarViewMode = "week"
	CalendarViewMonth CalendarViewMode = "month"
)

// Фиксированный видимый диапазон часов сетки: 08:00 - 19:00, 12 корзин
const (
	CalendarHourFirst = 8
	CalendarHourLast  = 19
)

// CalendarWindow - активный диапазон дат календаря
type CalendarWindow struct {
	Start time.Time        `json:"start"`
	End   time.Time        `json:"end"`
	View  CalendarViewMode `json:"view"`
}

// Contains - попадает ли время начала слота в окно, граница конца исключается
func (w CalendarWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

type CalendarCellKey struct {
	Day  int
	Hour int
}

type CalendarCell struct {
	Day   int    `json:"day"`
	Hour  int    `json:"hour"`
	Slots []Slot `json:"slots"`
}

type CalendarGrid struct {
	Window CalendarWindow `json:"window"`
	Filter DoctorFilter   `json:"filter"`
	Cells  map[CalendarCellKey]*CalendarCell
}

func NewCalendarGrid(window CalendarWindow, filter DoctorFilter) *CalendarGrid {
	return &CalendarGrid{
		Window: window,
		Filter: filter,
		Cells:  make(map[CalendarCellKey]*CalendarCell),
	}
}

func (g *CalendarGrid) Place(day int, hour int, slot Slot) {
	key := CalendarCellKey{Day: day, Hour: hour}
	cell, exists := g.Cells[key]
	if !exists {
		cell = &CalendarCell{Day: day, Hour: hour}
		g.Cells[key] = cell
	}
	cell.Slots = append(cell.Slots, slot)
}

func (g *CalendarGrid) Cell(day int, hour int) *CalendarCell {
	return g.Cells[CalendarCellKey{Day: day, Hour: hour}]
}

// CellList - ячейки в детерминированном порядке (день, час) для отображения
func (g *CalendarGrid) CellList() []CalendarCell {
	cells := make([]CalendarCell, 0, len(g.Cells))
	for _, cell := range g.Cells {
		cells = append(cells, *cell)
	}

	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Day != cells[j].Day {
			return cells[i].Day < cells[j].Day
		}
		return cells[i].Hour < cells[j].Hour
	})

	return cells
}
