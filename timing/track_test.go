package timing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"osuchart/dotosu"
)

func tp(offset int, beatLength float64) dotosu.TimingPoint {
	return dotosu.TimingPoint{Offset: offset, BeatLength: beatLength, Uninherited: beatLength > 0}
}

func TestTrackRedAndGreenLines(t *testing.T) {
	track, err := NewTrack([]dotosu.TimingPoint{tp(0, 500), tp(1000, -50)})
	require.NoError(t, err)

	track.Advance(1500)
	assert.Equal(t, 500.0, track.BeatLength())
	assert.Equal(t, 0.5, track.VelocityMultiplier())
	assert.Equal(t, 120.0, track.BPM())
}

func TestTrackNewRedLineClearsGreen(t *testing.T) {
	track, err := NewTrack([]dotosu.TimingPoint{tp(0, 500), tp(1000, -200), tp(2000, 250), tp(3000, -25)})
	require.NoError(t, err)

	tests := []struct {
		position int
		beat     float64
		velocity float64
	}{
		{0, 500, 1},
		{999, 500, 1},
		{1000, 500, 2},
		{1999, 500, 2},
		{2000, 250, 1},
		{3000, 250, 0.25},
		{100000, 250, 0.25},
	}
	for _, tt := range tests {
		track.Advance(tt.position)
		assert.Equal(t, tt.beat, track.BeatLength(), "at %d", tt.position)
		assert.Equal(t, tt.velocity, track.VelocityMultiplier(), "at %d", tt.position)
	}
}

func TestTrackSeeding(t *testing.T) {
	// Before any point is consumed the first positive point is current.
	track, err := NewTrack([]dotosu.TimingPoint{tp(0, -100), tp(500, 400)})
	require.NoError(t, err)
	assert.Equal(t, 400.0, track.BeatLength())
	assert.Equal(t, 1.0, track.VelocityMultiplier())

	// Without any positive point the first point is used as-is.
	track, err = NewTrack([]dotosu.TimingPoint{tp(0, -100)})
	require.NoError(t, err)
	assert.Equal(t, -100.0, track.BeatLength())

	_, err = NewTrack(nil)
	assert.ErrorIs(t, err, ErrNoTimingPoints)
}

func TestTrackAt(t *testing.T) {
	track, err := NewTrack([]dotosu.TimingPoint{tp(0, 500), tp(1000, -50), tp(2000, 300)})
	require.NoError(t, err)
	track.Advance(5000)

	back := track.At(1500)
	assert.Equal(t, 500.0, back.BeatLength())
	assert.Equal(t, 0.5, back.VelocityMultiplier())
	assert.Equal(t, 300.0, track.BeatLength())
}

func TestSliderDuration(t *testing.T) {
	track, err := NewTrack([]dotosu.TimingPoint{tp(0, 500), tp(1000, -50)})
	require.NoError(t, err)

	// One beat of slider at SV 1.4 is 140 osu!pixels.
	assert.InDelta(t, 500, track.SliderDuration(140, 1.4), 1e-9)

	track.Advance(1000)
	assert.InDelta(t, 1000, track.SliderDuration(140, 1.4), 1e-9)
}

func TestKiai(t *testing.T) {
	points := []dotosu.TimingPoint{tp(0, 500), tp(1000, -100), tp(2000, 500)}
	points[1].Kiai = true
	track, err := NewTrack(points)
	require.NoError(t, err)

	track.Advance(500)
	assert.False(t, track.Kiai())
	track.Advance(1000)
	assert.True(t, track.Kiai())
	track.Advance(2000)
	assert.False(t, track.Kiai())
}
