package services

import "time"

// Clock - источник текущего времени.
type Clock interface {
	Now() time.Time
}

// SystemClock возвращает системное время в UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// ClockFunc позволяет использовать функцию как Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}
