package domain

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from BookingStatus
		to   BookingStatus
		want bool
	}{
		{"processing to succeeded", BookingProcessing, BookingSucceeded, true},
		{"processing to canceled", BookingProcessing, BookingCanceled, true},
		{"succeeded to canceled", BookingSucceeded, BookingCanceled, true},
		{"succeeded to processing", BookingSucceeded, BookingProcessing, false},
		{"succeeded to succeeded", BookingSucceeded, BookingSucceeded, false},
		{"canceled to processing", BookingCanceled, BookingProcessing, false},
		{"canceled to succeeded", BookingCanceled, BookingSucceeded, false},
		{"canceled to canceled", BookingCanceled, BookingCanceled, false},
		{"unknown status", BookingStatus("draft"), BookingSucceeded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestBookingOverlaps(t *testing.T) {
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	booking := &Booking{
		StartTime: base,
		EndTime:   base.Add(2 * time.Hour), // [10:00, 12:00)
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{"identical window", base, base.Add(2 * time.Hour), true},
		{"contained window", base.Add(30 * time.Minute), base.Add(time.Hour), true},
		{"overlaps tail", base.Add(time.Hour), base.Add(3 * time.Hour), true},
		{"overlaps head", base.Add(-time.Hour), base.Add(time.Hour), true},
		{"surrounds", base.Add(-time.Hour), base.Add(3 * time.Hour), true},
		{"abuts end", base.Add(2 * time.Hour), base.Add(3 * time.Hour), false},
		{"abuts start", base.Add(-time.Hour), base, false},
		{"disjoint after", base.Add(3 * time.Hour), base.Add(4 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := booking.Overlaps(tt.start, tt.end); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestBookingActive(t *testing.T) {
	tests := []struct {
		status BookingStatus
		want   bool
	}{
		{BookingProcessing, true},
		{BookingSucceeded, true},
		{BookingCanceled, false},
	}
	for _, tt := range tests {
		b := &Booking{Status: tt.status}
		if got := b.Active(); got != tt.want {
			t.Errorf("Active() with status %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}
