package dotosu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"osuchart/curves"
)

func TestHitObjectTypeTable(t *testing.T) {
	tails := map[ObjectKind]string{
		KindCircle:  "",
		KindSlider:  ",L|300:200,1,100",
		KindSpinner: ",3000",
		KindHold:    ",3000:0:0:0:0:",
	}
	for v := 0; v <= 256; v++ {
		want, valid := map[int]ObjectKind{1: KindCircle, 2: KindSlider, 8: KindSpinner, 128: KindHold}[v&139]

		kind, ok := KindOf(v)
		assert.Equal(t, valid, ok, "type %d", v)
		if valid {
			assert.Equal(t, want, kind, "type %d", v)
		}

		line := fmt.Sprintf("256,192,1000,%d,0%s", v, tails[want])
		ho, err := parseHitObject(line)
		if !valid {
			var se *SyntaxError
			require.True(t, errors.As(err, &se), "type %d: %v", v, err)
			assert.Equal(t, "invalid hit object type", se.Reason)
			continue
		}
		require.NoError(t, err, "type %d", v)
		assert.Equal(t, want, ho.Kind(), "type %d", v)
		assert.Equal(t, v, ho.Common().Type)
	}
}

func TestTypeBitProjections(t *testing.T) {
	for v := 0; v <= 256; v++ {
		assert.Equal(t, v&4 != 0, NewCombo(v), "type %d", v)
		assert.Equal(t, (v>>4)&7, ColourSkip(v), "type %d", v)
	}
	assert.True(t, NewCombo(5))
	assert.False(t, NewCombo(2))
	assert.Equal(t, 7, ColourSkip(0x70|2))
	assert.Equal(t, 2, ColourSkip(32|4|1))

	ho, err := parseHitObject("1,2,3,53,0")
	require.NoError(t, err)
	b := ho.Common()
	assert.True(t, b.NewCombo())
	assert.Equal(t, 3, b.ColourSkip())
	assert.Equal(t, 3, b.StartTime())
}

func TestParseHitObjectVariants(t *testing.T) {
	tests := []struct {
		name string
		line string
		want HitObject
	}{
		{
			name: "circle without extras",
			line: "64,80,1000,1,2",
			want: Circle{Base{Pos: Point{64, 80}, Time: 1000, Type: 1, HitSound: 2}},
		},
		{
			name: "circle with malformed extras",
			line: "64,80,1000,1,0,a:b",
			want: Circle{Base{Pos: Point{64, 80}, Time: 1000, Type: 1}},
		},
		{
			name: "circle with short extras",
			line: "64,80,1000,1,0,1:2",
			want: Circle{Base{Pos: Point{64, 80}, Time: 1000, Type: 1}},
		},
		{
			name: "circle extras without filename",
			line: "64,80,1000,1,0,1:2:3:4",
			want: Circle{Base{Pos: Point{64, 80}, Time: 1000, Type: 1, Extras: Extras{1, 2, 3, 4, ""}}},
		},
		{
			name: "slider minimal",
			line: "10,20,500,2,0,B|30:40|50:20,1,70",
			want: Slider{
				Base:        Base{Pos: Point{10, 20}, Time: 500, Type: 2},
				Curve:       curves.Bezier,
				Controls:    []Point{{30, 40}, {50, 20}},
				Repeat:      1,
				PixelLength: 70,
			},
		},
		{
			name: "slider with malformed edges",
			line: "10,20,500,2,0,C|30:40,3,70.5,1|x,1:2|3,0:0:0:0:",
			want: Slider{
				Base:        Base{Pos: Point{10, 20}, Time: 500, Type: 2},
				Curve:       curves.Catmull,
				Controls:    []Point{{30, 40}},
				Repeat:      3,
				PixelLength: 70.5,
			},
		},
		{
			name: "spinner",
			line: "256,192,730,12,8,3983",
			want: Spinner{Base: Base{Pos: Point{256, 192}, Time: 730, Type: 12, HitSound: 8}, EndTime: 3983},
		},
		{
			name: "hold without extras",
			line: "64,192,100,128,0,900",
			want: HoldNote{Base: Base{Pos: Point{64, 192}, Time: 100, Type: 128}, EndTime: 900},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHitObject(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseHitObjectErrors(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		parseErr bool
		reason   string
	}{
		{"too few fields", "1,2,3", true, ""},
		{"no hitsound", "1,2,3,1", true, ""},
		{"bad x", "a,2,3,1,0", false, "unable to parse number"},
		{"slider without curve", "1,2,3,2,0", true, ""},
		{"slider bad curve kind", "1,2,3,2,0,X|1:1,1,100", false, "invalid slider type"},
		{"slider bad point", "1,2,3,2,0,B|1:y,1,100", false, "unable to parse number"},
		{"slider point without colon", "1,2,3,2,0,B|11,1,100", false, `malformed control point "11"`},
		{"slider zero repeat", "1,2,3,2,0,L|5:5,0,100", false, "slider repeat count 0 is less than 1"},
		{"slider without length", "1,2,3,2,0,L|5:5,1", true, ""},
		{"slider bad length", "1,2,3,2,0,L|5:5,1,long", false, "unable to parse number"},
		{"spinner without end", "1,2,3,8,0", true, ""},
		{"spinner bad end", "1,2,3,8,0,soon", false, "unable to parse number"},
		{"hold without end", "1,2,3,128,0", true, ""},
		{"hold bad end", "1,2,3,128,0,x:0:0:0:0:", false, "unable to parse number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHitObject(tt.line)
			require.Error(t, err)
			assert.Nil(t, got)
			if tt.parseErr {
				assert.ErrorIs(t, err, ErrParse)
				return
			}
			var se *SyntaxError
			require.True(t, errors.As(err, &se), "got %v", err)
			assert.Equal(t, tt.reason, se.Reason)
		})
	}
}

func TestSliderPath(t *testing.T) {
	ho, err := parseHitObject("0,0,0,2,0,L|100:0,1,100")
	require.NoError(t, err)
	s := ho.(Slider)
	path := s.Path()
	require.Len(t, path, 21)
	assert.Equal(t, curves.V(0, 0), path[0])
	assert.Equal(t, curves.V(100, 0), path[20])
	assert.InDelta(t, 100, curves.Length(path), 1e-9)
}
