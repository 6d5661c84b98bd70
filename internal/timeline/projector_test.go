/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package timeline

import (
	"math"
	"testing"
	"time"

	"github.com/friendsincode/orderboard/internal/models"
)

func date(s string) time.Time {
	t, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayAxis(t *testing.T) Axis {
	t.Helper()
	axis, err := New(time.Sunday).ComputeAxis(date("2024-06-15"), ZoomDay)
	if err != nil {
		t.Fatal(err)
	}
	return axis
}

func TestDayAxis(t *testing.T) {
	axis := dayAxis(t)

	if !axis.Start.Equal(date("2024-06-01")) {
		t.Errorf("start = %v, want 2024-06-01", axis.Start)
	}
	if !axis.End.Equal(date("2024-06-29")) {
		t.Errorf("end = %v, want 2024-06-29", axis.End)
	}
	if len(axis.Buckets) != 29 {
		t.Fatalf("got %d buckets, want 29", len(axis.Buckets))
	}
	if axis.TotalWidth != 2320 {
		t.Errorf("total width = %v, want 2320", axis.TotalWidth)
	}
	if axis.Buckets[0].Label != "6/1" {
		t.Errorf("first label = %q, want 6/1", axis.Buckets[0].Label)
	}
	if axis.Buckets[28].Label != "6/29" {
		t.Errorf("last label = %q, want 6/29", axis.Buckets[28].Label)
	}
}

func TestWeekAxisSundayStart(t *testing.T) {
	// 2024-06-15 is a Saturday. Four weeks back is 2024-05-18, aligned back
	// to Sunday 2024-05-12. Four weeks forward is Saturday 2024-07-13, which
	// is already a week end.
	axis, err := New(time.Sunday).ComputeAxis(date("2024-06-15"), ZoomWeek)
	if err != nil {
		t.Fatal(err)
	}

	if !axis.Start.Equal(date("2024-05-12")) {
		t.Errorf("start = %v, want 2024-05-12", axis.Start)
	}
	if !axis.End.Equal(date("2024-07-13")) {
		t.Errorf("end = %v, want 2024-07-13", axis.End)
	}
	if len(axis.Buckets) != 9 {
		t.Fatalf("got %d buckets, want 9", len(axis.Buckets))
	}
	if axis.TotalWidth != 9*BucketWidthWeek {
		t.Errorf("total width = %v, want %d", axis.TotalWidth, 9*BucketWidthWeek)
	}
	if axis.Buckets[0].Label != "5/12 - 5/18" {
		t.Errorf("first label = %q", axis.Buckets[0].Label)
	}
}

func TestWeekAxisMondayStart(t *testing.T) {
	axis, err := New(time.Monday).ComputeAxis(date("2024-06-15"), ZoomWeek)
	if err != nil {
		t.Fatal(err)
	}

	// Monday alignment shifts the whole window by one day.
	if !axis.Start.Equal(date("2024-05-13")) {
		t.Errorf("start = %v, want Monday 2024-05-13", axis.Start)
	}
	if !axis.End.Equal(date("2024-07-14")) {
		t.Errorf("end = %v, want Sunday 2024-07-14", axis.End)
	}
	if axis.Start.Weekday() != time.Monday {
		t.Errorf("start weekday = %v", axis.Start.Weekday())
	}
}

func TestMonthAxis(t *testing.T) {
	axis, err := New(time.Sunday).ComputeAxis(date("2024-06-15"), ZoomMonth)
	if err != nil {
		t.Fatal(err)
	}

	if !axis.Start.Equal(date("2023-12-01")) {
		t.Errorf("start = %v, want 2023-12-01", axis.Start)
	}
	if !axis.End.Equal(date("2024-12-31")) {
		t.Errorf("end = %v, want 2024-12-31", axis.End)
	}
	if len(axis.Buckets) != 13 {
		t.Fatalf("got %d buckets, want 13", len(axis.Buckets))
	}
	if axis.Buckets[0].Label != "12/2023" {
		t.Errorf("first label = %q, want 12/2023", axis.Buckets[0].Label)
	}
	if axis.Buckets[12].Label != "12/2024" {
		t.Errorf("last label = %q, want 12/2024", axis.Buckets[12].Label)
	}
}

func TestMonthAxisYearBoundaryOverflow(t *testing.T) {
	// October 31 minus six months must land on April 1, not normalize past it.
	axis, err := New(time.Sunday).ComputeAxis(date("2024-10-31"), ZoomMonth)
	if err != nil {
		t.Fatal(err)
	}
	if !axis.Start.Equal(date("2024-04-01")) {
		t.Errorf("start = %v, want 2024-04-01", axis.Start)
	}
	if !axis.End.Equal(date("2025-04-30")) {
		t.Errorf("end = %v, want 2025-04-30", axis.End)
	}
}

func TestAxisMonotonicity(t *testing.T) {
	p := New(time.Sunday)
	for _, level := range []ZoomLevel{ZoomDay, ZoomWeek, ZoomMonth} {
		axis, err := p.ComputeAxis(date("2024-06-15"), level)
		if err != nil {
			t.Fatal(err)
		}
		sum := 0
		for i, b := range axis.Buckets {
			sum += b.Width
			if i > 0 && !axis.Buckets[i-1].Start.Before(b.Start) {
				t.Errorf("%s: bucket %d start not increasing", level, i)
			}
		}
		if float64(sum) != axis.TotalWidth {
			t.Errorf("%s: total width %v != bucket sum %d", level, axis.TotalWidth, sum)
		}
	}
}

func TestComputeAxisRejectsUnknownLevel(t *testing.T) {
	if _, err := New(time.Sunday).ComputeAxis(date("2024-06-15"), ZoomLevel("year")); err == nil {
		t.Fatal("expected error for unknown zoom level")
	}
}

func TestTodayOffsetIsCoarse(t *testing.T) {
	axis := dayAxis(t)
	p := New(time.Sunday)

	// Whole-bucket interpolation: 14 elapsed days over 29 buckets.
	want := 14.0 / 29.0 * 2320
	if math.Abs(axis.TodayOffset-want) > 1e-9 {
		t.Errorf("today offset = %v, want %v", axis.TodayOffset, want)
	}

	// The exact mapping places the same date differently. The two
	// interpolations are separate on purpose.
	exact := p.DateToPixel(axis, date("2024-06-15"))
	if math.Abs(exact-axis.TodayOffset) < 1 {
		t.Errorf("coarse offset %v unexpectedly matches exact position %v", axis.TodayOffset, exact)
	}
}

func TestDateToPixelClamps(t *testing.T) {
	axis := dayAxis(t)
	p := New(time.Sunday)

	if got := p.DateToPixel(axis, date("2024-05-01")); got != 0 {
		t.Errorf("before-axis date = %v, want 0", got)
	}
	if got := p.DateToPixel(axis, date("2024-08-01")); got != axis.TotalWidth {
		t.Errorf("after-axis date = %v, want %v", got, axis.TotalWidth)
	}
	if got := p.DateToPixel(axis, axis.Start); got != 0 {
		t.Errorf("axis start = %v, want 0", got)
	}
	if got := p.DateToPixel(axis, axis.End); got != axis.TotalWidth {
		t.Errorf("axis end = %v, want %v", got, axis.TotalWidth)
	}
}

func TestPixelRoundTrip(t *testing.T) {
	axis := dayAxis(t)
	p := New(time.Sunday)

	for _, s := range []string{"2024-06-02", "2024-06-15", "2024-06-28"} {
		d := date(s)
		got := p.PixelToDate(axis, p.DateToPixel(axis, d))
		if diff := got.Sub(d); diff < -time.Second || diff > time.Second {
			t.Errorf("round trip of %s drifted by %v", s, diff)
		}
	}
}

func TestPixelToDateDoesNotClamp(t *testing.T) {
	axis := dayAxis(t)
	p := New(time.Sunday)

	if got := p.PixelToDate(axis, -80); !got.Before(axis.Start) {
		t.Errorf("negative position should extrapolate before axis, got %v", got)
	}
	if got := p.PixelToDate(axis, axis.TotalWidth+80); !got.After(axis.End) {
		t.Errorf("overflow position should extrapolate past axis, got %v", got)
	}
}

func TestBarGeometry(t *testing.T) {
	axis := dayAxis(t)
	p := New(time.Sunday)
	perDay := axis.TotalWidth / 28 // exact mapping spans 28 days

	t.Run("in range", func(t *testing.T) {
		bar := p.Bar(axis, date("2024-06-08"), date("2024-06-12"))
		if math.Abs(bar.Left-7*perDay) > 1e-9 {
			t.Errorf("left = %v, want %v", bar.Left, 7*perDay)
		}
		if math.Abs(bar.Width-4*perDay) > 1e-9 {
			t.Errorf("width = %v, want %v", bar.Width, 4*perDay)
		}
	})

	t.Run("minimum width", func(t *testing.T) {
		bar := p.Bar(axis, date("2024-06-08"), date("2024-06-09"))
		if bar.Width != MinBarWidth {
			t.Errorf("width = %v, want floor %v", bar.Width, MinBarWidth)
		}
	})

	t.Run("entirely before axis", func(t *testing.T) {
		bar := p.Bar(axis, date("2024-04-01"), date("2024-04-05"))
		if bar.Left != 0 {
			t.Errorf("left = %v, want 0", bar.Left)
		}
	})

	t.Run("entirely after axis", func(t *testing.T) {
		bar := p.Bar(axis, date("2024-08-01"), date("2024-08-05"))
		if bar.Left != axis.TotalWidth {
			t.Errorf("left = %v, want %v", bar.Left, axis.TotalWidth)
		}
		if bar.Width != 0 {
			t.Errorf("width = %v, want 0 after re-clip", bar.Width)
		}
	})

	t.Run("reclip near axis end", func(t *testing.T) {
		// One day before the axis end: the floored width would overflow, so
		// the bar is cut to less than the floor.
		bar := p.Bar(axis, date("2024-06-28"), date("2024-06-29"))
		want := axis.TotalWidth - bar.Left
		if bar.Width != want {
			t.Errorf("width = %v, want reclipped %v", bar.Width, want)
		}
		if bar.Width >= MinBarWidth {
			t.Errorf("width = %v, expected below floor after reclip", bar.Width)
		}
	})
}

func TestClickPrefill(t *testing.T) {
	axis := dayAxis(t)
	p := New(time.Sunday)

	// Click exactly on 2024-06-08.
	pos := p.DateToPixel(axis, date("2024-06-08"))
	prefill := p.ClickPrefill(axis, pos)

	if diff := prefill.StartDate.Sub(date("2024-06-08")); diff < -time.Second || diff > time.Second {
		t.Errorf("start = %v, want 2024-06-08", prefill.StartDate)
	}
	if got := prefill.EndDate.Sub(prefill.StartDate); got != 7*24*time.Hour {
		t.Errorf("default duration = %v, want 168h", got)
	}
}
