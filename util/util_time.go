package util

import (
	"time"

	"github.com/jinzhu/now"
)

// BeginningOfDay returns midnight of t's calendar day in loc.
func BeginningOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return now.New(t.In(loc)).BeginningOfDay()
}
