// Package timing follows the tempo and slider velocity of a chart as
// playback moves forward.
package timing

import (
	"errors"

	"osuchart/dotosu"
)

var ErrNoTimingPoints = errors.New("no timing points")

// Track walks timing points in order. The current red line (uninherited
// point) sets the beat length; the green line (inherited point) after it, if
// any, scales slider velocity. A new red line clears the green line.
type Track struct {
	points []dotosu.TimingPoint
	next   int

	red   dotosu.TimingPoint
	green *dotosu.TimingPoint
}

// NewTrack seeds the red line from the first point with a positive beat
// length, or the very first point when none has one. Nothing is consumed
// until Advance is called.
func NewTrack(points []dotosu.TimingPoint) (*Track, error) {
	if len(points) == 0 {
		return nil, ErrNoTimingPoints
	}
	t := &Track{points: points, red: points[0]}
	for _, p := range points {
		if p.BeatLength > 0 {
			t.red = p
			break
		}
	}
	return t, nil
}

// Advance consumes every point at or before position. Positions must not go
// backwards; use At for random access.
func (t *Track) Advance(position int) {
	for t.next < len(t.points) && t.points[t.next].Offset <= position {
		p := t.points[t.next]
		t.next++
		if p.BeatLength > 0 {
			t.red = p
			t.green = nil
		} else {
			t.green = &p
		}
	}
}

// At returns a new track advanced to position.
func (t *Track) At(position int) *Track {
	fresh, _ := NewTrack(t.points)
	fresh.Advance(position)
	return fresh
}

// BeatLength is the current red line's milliseconds per beat.
func (t *Track) BeatLength() float64 { return t.red.BeatLength }

// BPM is the current tempo in beats per minute.
func (t *Track) BPM() float64 { return 60000 / t.BeatLength() }

// VelocityMultiplier is 1 without a green line, else -beatLength/100 of the green line.
func (t *Track) VelocityMultiplier() float64 {
	if t.green == nil {
		return 1
	}
	return -t.green.BeatLength / 100
}

// Kiai reports whether the most recent point has kiai time on.
func (t *Track) Kiai() bool {
	if t.green != nil {
		return t.green.Kiai
	}
	return t.red.Kiai
}

// SliderDuration is the time one pass over a slider of pixelLength takes.
func (t *Track) SliderDuration(pixelLength, sliderMultiplier float64) float64 {
	return pixelLength / (100 * sliderMultiplier * t.VelocityMultiplier()) * t.BeatLength()
}
