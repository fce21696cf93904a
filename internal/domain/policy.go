package domain

import "time"

// DaysUntil возвращает количество полных календарных дней от now до anchor
// Обе даты усекаются до полуночи: политика отмены считает целые дни,
// а не прошедшие часы
func DaysUntil(anchor, now time.Time) int {
	anchorDay := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, anchor.Location())
	nowDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return int(anchorDay.Sub(nowDay).Hours() / 24)
}

// CancellationEligible проверяет запрос на отмену по правилу отсечки:
// запрос принимается, только если до опорной даты (заезд для номера,
// дата экскурсии для путешествия) остаётся не меньше CancellationCutoffDays
// полных дней. Возвращает также точное число дней для ответа клиенту
func CancellationEligible(anchor, now time.Time) (bool, int) {
	days := DaysUntil(anchor, now)
	return days >= CancellationCutoffDays, days
}
