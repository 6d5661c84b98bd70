/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package timeline maps calendar dates onto a zoomable 1-D pixel axis.
// The projector is pure: it holds no board state and every call derives
// its output from the arguments alone.
package timeline

import (
	"fmt"
	"time"

	"github.com/friendsincode/orderboard/internal/models"
)

// ZoomLevel selects the bucket granularity of the axis.
type ZoomLevel string

const (
	ZoomDay   ZoomLevel = "day"
	ZoomWeek  ZoomLevel = "week"
	ZoomMonth ZoomLevel = "month"
)

func (z ZoomLevel) Valid() bool {
	switch z {
	case ZoomDay, ZoomWeek, ZoomMonth:
		return true
	}
	return false
}

// Pixel widths per bucket at each zoom level, and the day-view window radius.
const (
	BucketWidthDay   = 80
	BucketWidthWeek  = 120
	BucketWidthMonth = 150
	DaysBuffer       = 14
)

// MinBarWidth keeps short orders visible and clickable.
const MinBarWidth = 100.0

// Bucket is one rendered column on the axis.
type Bucket struct {
	Start time.Time `json:"start"`
	Label string    `json:"label"`
	Width int       `json:"width"`
}

// Axis is the computed calendar-to-pixel mapping for one zoom level and
// reference date. Start and End are the midnights bounding the linear span
// used by the exact date mapping.
type Axis struct {
	Level       ZoomLevel `json:"level"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Buckets     []Bucket  `json:"buckets"`
	TotalWidth  float64   `json:"totalWidth"`
	TodayOffset float64   `json:"todayOffset"`
}

// BarGeometry is the pixel placement of one work order bar.
type BarGeometry struct {
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

// Projector computes axes and pixel mappings. The week start day is the only
// configuration it carries.
type Projector struct {
	weekStart time.Weekday
}

func New(weekStart time.Weekday) *Projector {
	return &Projector{weekStart: weekStart}
}

// ComputeAxis builds the bucket sequence for the given zoom level around the
// reference date, which is normalized to midnight first.
func (p *Projector) ComputeAxis(today time.Time, level ZoomLevel) (Axis, error) {
	today = models.Midnight(today)

	var axis Axis
	switch level {
	case ZoomDay:
		axis = p.dayAxis(today)
	case ZoomWeek:
		axis = p.weekAxis(today)
	case ZoomMonth:
		axis = p.monthAxis(today)
	default:
		return Axis{}, fmt.Errorf("unknown zoom level %q", level)
	}

	axis.Level = level
	for _, b := range axis.Buckets {
		axis.TotalWidth += float64(b.Width)
	}
	axis.TodayOffset = p.todayOffset(axis, today)
	return axis, nil
}

func (p *Projector) dayAxis(today time.Time) Axis {
	start := today.AddDate(0, 0, -DaysBuffer)
	end := today.AddDate(0, 0, DaysBuffer)

	var buckets []Bucket
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		buckets = append(buckets, Bucket{
			Start: d,
			Label: fmt.Sprintf("%d/%d", int(d.Month()), d.Day()),
			Width: BucketWidthDay,
		})
	}
	return Axis{Start: start, End: end, Buckets: buckets}
}

func (p *Projector) weekAxis(today time.Time) Axis {
	start := today.AddDate(0, 0, -7*4)
	start = start.AddDate(0, 0, -((int(start.Weekday())-int(p.weekStart))+7)%7)

	end := today.AddDate(0, 0, 7*4)
	end = end.AddDate(0, 0, (int(p.weekStart)+6-int(end.Weekday())+7)%7)

	var buckets []Bucket
	for d := start; !d.After(end); d = d.AddDate(0, 0, 7) {
		weekEnd := d.AddDate(0, 0, 6)
		buckets = append(buckets, Bucket{
			Start: d,
			Label: fmt.Sprintf("%d/%d - %d/%d",
				int(d.Month()), d.Day(), int(weekEnd.Month()), weekEnd.Day()),
			Width: BucketWidthWeek,
		})
	}
	return Axis{Start: start, End: end, Buckets: buckets}
}

func (p *Projector) monthAxis(today time.Time) Axis {
	start := time.Date(today.Year(), today.Month()-6, 1, 0, 0, 0, 0, time.UTC)
	// Day zero of month+7 is the last day of month+6.
	end := time.Date(today.Year(), today.Month()+7, 0, 0, 0, 0, 0, time.UTC)

	var buckets []Bucket
	for d := start; !d.After(end); d = d.AddDate(0, 1, 0) {
		buckets = append(buckets, Bucket{
			Start: d,
			Label: fmt.Sprintf("%d/%d", int(d.Month()), d.Year()),
			Width: BucketWidthMonth,
		})
	}
	return Axis{Start: start, End: end, Buckets: buckets}
}

// todayOffset positions the today marker by whole elapsed buckets, not exact
// elapsed time. The coarse interpolation disagrees with DateToPixel at the
// margins and the two must stay separate.
func (p *Projector) todayOffset(axis Axis, today time.Time) float64 {
	if len(axis.Buckets) == 0 {
		return 0
	}
	daysDiff := int(today.Sub(axis.Start).Hours() / 24)

	var elapsed int
	switch axis.Level {
	case ZoomDay:
		elapsed = daysDiff
	case ZoomWeek:
		elapsed = daysDiff / 7
	case ZoomMonth:
		elapsed = (today.Year()-axis.Start.Year())*12 + int(today.Month()) - int(axis.Start.Month())
	}
	return float64(elapsed) / float64(len(axis.Buckets)) * axis.TotalWidth
}

// DateToPixel maps a date onto the axis by exact linear interpolation,
// clamped to [0, TotalWidth].
func (p *Projector) DateToPixel(axis Axis, date time.Time) float64 {
	if date.Before(axis.Start) {
		return 0
	}
	if date.After(axis.End) {
		return axis.TotalWidth
	}
	span := axis.End.Sub(axis.Start)
	if span <= 0 {
		return 0
	}
	ratio := float64(date.Sub(axis.Start)) / float64(span)
	return ratio * axis.TotalWidth
}

// PixelToDate inverts the exact linear mapping. Positions outside
// [0, TotalWidth] extrapolate rather than clamp.
func (p *Projector) PixelToDate(axis Axis, position float64) time.Time {
	if axis.TotalWidth == 0 {
		return axis.Start
	}
	ratio := position / axis.TotalWidth
	span := axis.End.Sub(axis.Start)
	return axis.Start.Add(time.Duration(ratio * float64(span)))
}

// Bar computes the pixel placement of an order on the axis. Width is floored
// at MinBarWidth, then re-clipped so the bar never extends past the axis,
// which can leave orders near the axis end narrower than the floor.
func (p *Projector) Bar(axis Axis, start, end time.Time) BarGeometry {
	left := p.DateToPixel(axis, start)

	span := axis.End.Sub(axis.Start)
	var width float64
	if span > 0 {
		width = float64(end.Sub(start)) / float64(span) * axis.TotalWidth
	}
	if width < MinBarWidth {
		width = MinBarWidth
	}
	if maxLeft := axis.TotalWidth - width; left > maxLeft {
		width = axis.TotalWidth - left
	}
	return BarGeometry{Left: left, Width: width}
}

// Prefill is the creation form seed produced by a click on empty row space.
type Prefill struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// ClickPrefill inverts a clicked pixel position into a start date and offers
// a default one week duration.
func (p *Projector) ClickPrefill(axis Axis, position float64) Prefill {
	start := p.PixelToDate(axis, position)
	return Prefill{StartDate: start, EndDate: start.AddDate(0, 0, 7)}
}
