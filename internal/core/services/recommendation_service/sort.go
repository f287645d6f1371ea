package recommendation_service

import "github.com/suchimauz/booking-slot-discovery/internal/core/domain"

type RecommendationSlice []domain.Recommendation

// ranksBefore - порядок ранжирования: по убыванию оценки,
// при равных оценках раньше идет более ранний слот, затем меньший идентификатор
func (s RecommendationSlice) ranksBefore(a, b domain.Recommendation) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if !a.Slot.StartTime.Date.Equal(b.Slot.StartTime.Date) {
		return a.Slot.StartTime.Date.Before(b.Slot.StartTime.Date)
	}
	return a.Slot.ID < b.Slot.ID
}

// quickSort - функция для сортировки RecommendationSlice
func (s RecommendationSlice) quickSort() RecommendationSlice {
	if len(s) < 2 {
		return s
	}

	// Выбираем опорный элемент
	pivot := s[len(s)/2]

	// Разделяем слайс на три части
	less := RecommendationSlice{}
	equal := RecommendationSlice{}
	greater := RecommendationSlice{}

	for _, rec := range s {
		if s.ranksBefore(rec, pivot) {
			less = append(less, rec)
		} else if s.ranksBefore(pivot, rec) {
			greater = append(greater, rec)
		} else {
			equal = append(equal, rec)
		}
	}

	// Рекурсивно сортируем подмассивы и объединяем их
	return append(append(less.quickSort(), equal...), greater.quickSort()...)
}
