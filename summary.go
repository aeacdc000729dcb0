package main

import (
	"fmt"
	"math"
	"time"

	"osuchart/curves"
	"osuchart/dotosu"
	"osuchart/store"
	"osuchart/timing"
)

// Summary is what gets indexed and written out for one difficulty.
type Summary struct {
	Entry         string `json:"entry"`
	Checksum      string `json:"checksum"`
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	Creator       string `json:"creator"`
	Version       string `json:"version"`
	Mode          string `json:"mode"`
	FormatVersion int    `json:"formatVersion"`

	Circles  int `json:"circles"`
	Sliders  int `json:"sliders"`
	Spinners int `json:"spinners"`
	Holds    int `json:"holds"`

	MinBPM   float64 `json:"minBpm"`
	MaxBPM   float64 `json:"maxBpm"`
	LengthMs int     `json:"lengthMs"`
	MaxCombo int     `json:"maxCombo"`
	Combos   int     `json:"combos"`

	Preempt    float64           `json:"preemptMs"`
	HitWindows dotosu.HitWindows `json:"hitWindows"`

	// Cursor distance in osu!pixels when following every object and slider
	// path in order.
	Travel float64 `json:"travel"`
}

// Summarize walks d's hit objects alongside its timing points.
func Summarize(d *dotosu.Difficulty) (Summary, error) {
	s := Summary{
		Entry:         d.Name,
		Checksum:      d.Checksum,
		Title:         d.Metadata.Title,
		Artist:        d.Metadata.Artist,
		Creator:       d.Metadata.Creator,
		Version:       d.Metadata.Version,
		Mode:          d.General.Mode.String(),
		FormatVersion: d.Version,
		Preempt:       d.Difficulty.Preempt(),
		HitWindows:    d.Difficulty.HitWindows(),
	}
	s.MinBPM, s.MaxBPM = bpmRange(d.TimingPoints)

	if len(d.HitObjects) == 0 {
		return s, nil
	}

	var track *timing.Track
	if len(d.TimingPoints) > 0 {
		track, _ = timing.NewTrack(d.TimingPoints)
	}

	start := d.HitObjects[0].Common().Time
	end := start
	position := start
	var cursor *curves.Vec

	move := func(to curves.Vec) {
		if cursor != nil {
			s.Travel += cursor.Dist(to)
		}
		cursor = &to
	}

	for _, object := range d.HitObjects {
		b := object.Common()
		objectEnd := b.Time
		move(b.Pos.Vec())

		switch object := object.(type) {
		case dotosu.Circle:
			s.Circles++
			s.MaxCombo++
		case dotosu.Slider:
			if track == nil {
				return Summary{}, fmt.Errorf("slider at %d: %w", b.Time, timing.ErrNoTimingPoints)
			}
			if b.Time < position {
				track = track.At(b.Time)
			} else {
				track.Advance(b.Time)
			}
			position = b.Time

			s.Sliders++
			s.MaxCombo += 1 + object.Repeat

			duration := track.SliderDuration(object.PixelLength, d.Difficulty.SliderMultiplier)
			total := math.Round(duration * float64(object.Repeat))
			if math.IsNaN(total) || total < 0 || total > float64(math.MaxInt32) {
				return Summary{}, fmt.Errorf("slider at %d has no usable duration", b.Time)
			}
			objectEnd = b.Time + int(total)

			s.Travel += object.PixelLength * float64(object.Repeat)
			if object.Repeat%2 == 1 {
				tail := curves.PositionAt(object.Path(), object.PixelLength)
				cursor = &tail
			}
		case dotosu.Spinner:
			s.Spinners++
			s.MaxCombo++
			objectEnd = object.EndTime
		case dotosu.HoldNote:
			s.Holds++
			s.MaxCombo++
			objectEnd = object.EndTime
		}

		start = min(start, b.Time)
		end = max(end, objectEnd)
	}
	s.LengthMs = end - start

	combos := dotosu.AssignCombos(d.HitObjects, len(d.Colours.Combo))
	s.Combos = combos[len(combos)-1].Combo + 1
	return s, nil
}

// bpmRange covers the uninherited points only. Both are 0 without any.
func bpmRange(points []dotosu.TimingPoint) (lo, hi float64) {
	for _, p := range points {
		if !p.Uninherited || p.BeatLength <= 0 {
			continue
		}
		bpm := 60000 / p.BeatLength
		if lo == 0 || bpm < lo {
			lo = bpm
		}
		hi = max(hi, bpm)
	}
	return lo, hi
}

// Record converts s into an index row.
func (s Summary) Record(parsedAt time.Time) store.Record {
	return store.Record{
		Checksum:      s.Checksum,
		Name:          s.Entry,
		Title:         s.Title,
		Artist:        s.Artist,
		Creator:       s.Creator,
		Version:       s.Version,
		Mode:          s.Mode,
		FormatVersion: s.FormatVersion,
		Circles:       s.Circles,
		Sliders:       s.Sliders,
		Spinners:      s.Spinners,
		Holds:         s.Holds,
		MinBPM:        s.MinBPM,
		MaxBPM:        s.MaxBPM,
		LengthMs:      s.LengthMs,
		MaxCombo:      s.MaxCombo,
		ParsedAt:      parsedAt,
	}
}
