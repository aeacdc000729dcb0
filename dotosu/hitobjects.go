package dotosu

import (
	"strings"

	"osuchart/curves"
)

// ---------- HitObject enums & typed variants ----------

type ObjectKind uint8

const (
	KindCircle ObjectKind = iota
	KindSlider
	KindSpinner
	KindHold
)

func (k ObjectKind) String() string {
	switch k {
	case KindCircle:
		return "circle"
	case KindSlider:
		return "slider"
	case KindSpinner:
		return "spinner"
	case KindHold:
		return "hold"
	}
	return "unknown"
}

const (
	typeCircle   = 1
	typeSlider   = 2
	typeNewCombo = 4
	typeSpinner  = 8
	typeHold     = 128
	typeMask     = typeCircle | typeSlider | typeSpinner | typeHold // 139
)

// NewCombo reports whether a type code starts a new combo.
func NewCombo(v int) bool { return v&typeNewCombo != 0 }

// ColourSkip returns how many combo colours a type code skips.
func ColourSkip(v int) int { return (v >> 4) & 7 }

// KindOf returns the variant a type code selects. Exactly one of the circle,
// slider, spinner and hold bits must be set.
func KindOf(v int) (ObjectKind, bool) {
	switch v & typeMask {
	case typeCircle:
		return KindCircle, true
	case typeSlider:
		return KindSlider, true
	case typeSpinner:
		return KindSpinner, true
	case typeHold:
		return KindHold, true
	}
	return 0, false
}

type Point struct{ X, Y int }

func (p Point) Vec() curves.Vec { return curves.Vec{X: float64(p.X), Y: float64(p.Y)} }

// Extras is the optional sampleSet:additionSet:index:volume:filename tail.
type Extras struct {
	SampleSet   int
	AdditionSet int
	CustomIndex int
	Volume      int
	Filename    string
}

type EdgeAddition struct {
	SampleSet   int
	AdditionSet int
}

// HitObject is one of Circle, Slider, Spinner or HoldNote.
type HitObject interface {
	Kind() ObjectKind
	Common() Base
	hitObject()
}

// Base holds the fields every hit object line starts with.
type Base struct {
	Pos      Point
	Time     int
	Type     int // raw type code
	HitSound int
	Extras   Extras
}

func (b Base) Common() Base    { return b }
func (b Base) NewCombo() bool  { return NewCombo(b.Type) }
func (b Base) ColourSkip() int { return ColourSkip(b.Type) }
func (b Base) StartTime() int  { return b.Time }
func (Base) hitObject()        {}

type Circle struct{ Base }

func (Circle) Kind() ObjectKind { return KindCircle }

type Slider struct {
	Base
	Curve         curves.Kind
	Controls      []Point // excluding the head
	Repeat        int
	PixelLength   float64
	EdgeHitSounds []int
	EdgeAdditions []EdgeAddition
}

func (Slider) Kind() ObjectKind { return KindSlider }

// Path returns the slider's polyline, head first.
func (s Slider) Path() []curves.Vec {
	controls := make([]curves.Vec, len(s.Controls))
	for i, p := range s.Controls {
		controls[i] = p.Vec()
	}
	return curves.Path(s.Pos.Vec(), s.Curve, controls)
}

type Spinner struct {
	Base
	EndTime int
}

func (Spinner) Kind() ObjectKind { return KindSpinner }

type HoldNote struct {
	Base
	EndTime int
}

func (HoldNote) Kind() ObjectKind { return KindHold }

// ---------- decoding ----------

// fields is a positional record. Reading past its end is ErrParse.
type fields []string

func (f fields) required(i int) (string, error) {
	if i >= len(f) {
		return "", ErrParse
	}
	return f[i], nil
}

func (f fields) optional(i int) (string, bool) {
	if i >= len(f) || strings.TrimSpace(f[i]) == "" {
		return "", false
	}
	return f[i], true
}

func (f fields) intAt(i int) (int, error) {
	s, err := f.required(i)
	if err != nil {
		return 0, err
	}
	return parseInt(s)
}

func (f fields) floatAt(i int) (float64, error) {
	s, err := f.required(i)
	if err != nil {
		return 0, err
	}
	return parseFloat(s)
}

// extras decodes an optional extras field, falling back to the zero value.
func (f fields) extras(i int) Extras {
	s, ok := f.optional(i)
	if !ok {
		return Extras{}
	}
	e, err := parseExtras(s)
	if err != nil {
		return Extras{}
	}
	return e
}

func parseHitObject(line string) (HitObject, error) {
	f := fields(strings.Split(line, ","))

	var (
		b   Base
		err error
	)
	if b.Pos.X, err = f.intAt(0); err != nil {
		return nil, err
	}
	if b.Pos.Y, err = f.intAt(1); err != nil {
		return nil, err
	}
	if b.Time, err = f.intAt(2); err != nil {
		return nil, err
	}
	if b.Type, err = f.intAt(3); err != nil {
		return nil, err
	}
	if b.HitSound, err = f.intAt(4); err != nil {
		return nil, err
	}

	kind, ok := KindOf(b.Type)
	if !ok {
		return nil, syntaxErr("invalid hit object type")
	}
	switch kind {
	case KindCircle:
		b.Extras = f.extras(5)
		return Circle{Base: b}, nil
	case KindSlider:
		return parseSlider(b, f)
	case KindSpinner:
		end, err := f.intAt(5)
		if err != nil {
			return nil, err
		}
		b.Extras = f.extras(6)
		return Spinner{Base: b, EndTime: end}, nil
	default:
		s, err := f.required(5)
		if err != nil {
			return nil, err
		}
		endField, rest, hasExtras := strings.Cut(s, ":")
		end, err := parseInt(endField)
		if err != nil {
			return nil, err
		}
		if hasExtras {
			if e, err := parseExtras(rest); err == nil {
				b.Extras = e
			}
		}
		return HoldNote{Base: b, EndTime: end}, nil
	}
}

func parseSlider(b Base, f fields) (HitObject, error) {
	s := Slider{Base: b}

	def, err := f.required(5)
	if err != nil {
		return nil, err
	}
	if s.Curve, s.Controls, err = parseCurve(def); err != nil {
		return nil, err
	}
	if s.Repeat, err = f.intAt(6); err != nil {
		return nil, err
	}
	if s.Repeat < 1 {
		return nil, syntaxErrf("slider repeat count %d is less than 1", s.Repeat)
	}
	if s.PixelLength, err = f.floatAt(7); err != nil {
		return nil, err
	}

	if v, ok := f.optional(8); ok {
		if hs, err := parseList(v, "|", parseInt); err == nil {
			s.EdgeHitSounds = hs
		}
	}
	if v, ok := f.optional(9); ok {
		if adds, err := parseList(v, "|", parseEdgeAddition); err == nil {
			s.EdgeAdditions = adds
		}
	}
	s.Extras = f.extras(10)
	return s, nil
}

// parseCurve decodes "K|x:y|x:y...".
func parseCurve(def string) (curves.Kind, []Point, error) {
	toks := strings.Split(strings.TrimSpace(def), "|")
	var kind curves.Kind
	switch toks[0] {
	case "L":
		kind = curves.Linear
	case "B":
		kind = curves.Bezier
	case "P":
		kind = curves.Perfect
	case "C":
		kind = curves.Catmull
	default:
		return 0, nil, syntaxErr("invalid slider type")
	}
	controls := make([]Point, 0, len(toks)-1)
	for _, t := range toks[1:] {
		xs, ys, ok := strings.Cut(t, ":")
		if !ok {
			return 0, nil, syntaxErrf("malformed control point %q", t)
		}
		x, err := parseInt(xs)
		if err != nil {
			return 0, nil, err
		}
		y, err := parseInt(ys)
		if err != nil {
			return 0, nil, err
		}
		controls = append(controls, Point{X: x, Y: y})
	}
	return kind, controls, nil
}

func parseEdgeAddition(s string) (EdgeAddition, error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return EdgeAddition{}, syntaxErr("malformed edge addition")
	}
	ss, err := parseInt(a)
	if err != nil {
		return EdgeAddition{}, err
	}
	as, err := parseInt(b)
	if err != nil {
		return EdgeAddition{}, err
	}
	return EdgeAddition{SampleSet: ss, AdditionSet: as}, nil
}

// parseExtras decodes sampleSet:additionSet:index:volume[:filename].
func parseExtras(s string) (Extras, error) {
	f := fields(strings.SplitN(s, ":", 5))
	var (
		e   Extras
		err error
	)
	if e.SampleSet, err = f.intAt(0); err != nil {
		return Extras{}, err
	}
	if e.AdditionSet, err = f.intAt(1); err != nil {
		return Extras{}, err
	}
	if e.CustomIndex, err = f.intAt(2); err != nil {
		return Extras{}, err
	}
	if e.Volume, err = f.intAt(3); err != nil {
		return Extras{}, err
	}
	if name, ok := f.optional(4); ok {
		e.Filename = name
	}
	return e, nil
}
