package dotosu

import (
	"cmp"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const versionPrefix = "osu file format v"

// Parser decodes .osu documents. It owns its compiled patterns and is safe
// for concurrent use once built.
type Parser struct {
	log     zerolog.Logger
	workers int

	header  *regexp.Regexp
	kv      *regexp.Regexp
	version *regexp.Regexp
	combo   *regexp.Regexp
}

// NewParser builds a parser that logs to logger and decodes bundles with at
// most workers difficulties in flight (1 when workers < 1).
func NewParser(logger zerolog.Logger, workers int) *Parser {
	if workers < 1 {
		workers = 1
	}
	return &Parser{
		log:     logger,
		workers: workers,
		header:  regexp.MustCompile(`^\[([^\[\]]*)\]\s*$`),
		kv:      regexp.MustCompile(`^([^\s:]+)\s*:\s*(.*)$`),
		version: regexp.MustCompile(`^osu file format v(\d+)$`),
		combo:   regexp.MustCompile(`^Combo(\d+)$`),
	}
}

// Decode parses one .osu document. Audio is left empty; DecodeBundle fills it.
func (p *Parser) Decode(raw []byte) (*Difficulty, error) {
	text, err := decodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding text: %w", err)
	}
	sum := md5.Sum(raw)

	d := newDifficulty()
	d.Checksum = hex.EncodeToString(sum[:])

	sc := NewScanner(text)
	if d.Version, err = p.parseVersion(sc); err != nil {
		return nil, err
	}
	for {
		line, ok := sc.Current()
		if !ok {
			break
		}
		m := p.header.FindStringSubmatch(line)
		if m == nil {
			return nil, atLine(syntaxErr("malformed section header"), sc.Line())
		}
		num := sc.Line()
		sc.Next()
		if err := p.parseSection(sc, m[1], num, d); err != nil {
			return nil, fmt.Errorf("[%s]: %w", m[1], err)
		}
	}
	return d, nil
}

func (p *Parser) parseVersion(sc *Scanner) (int, error) {
	line, ok := sc.Current()
	if !ok || !p.version.MatchString(line) {
		return 0, atLine(syntaxErr("unable to parse version string"), sc.Line())
	}
	v, err := strconv.Atoi(line[len(versionPrefix):])
	if err != nil {
		return 0, atLine(syntaxErr("unable to parse version string"), sc.Line())
	}
	sc.Next()
	return v, nil
}

func (p *Parser) parseSection(sc *Scanner, name string, headerLine int, d *Difficulty) error {
	switch name {
	case "General":
		d.General = defaultGeneral()
		_, err := decodeSection(p, sc, name, &d.General, generalFields)
		return err
	case "Editor":
		d.Editor = defaultEditor()
		_, err := decodeSection(p, sc, name, &d.Editor, editorFields)
		return err
	case "Metadata":
		d.Metadata = MetadataSection{}
		_, err := decodeSection(p, sc, name, &d.Metadata, metadataFields)
		return err
	case "Difficulty":
		d.Difficulty = defaultDifficulty()
		seen, err := decodeSection(p, sc, name, &d.Difficulty, difficultyFields)
		if err != nil {
			return err
		}
		if !seen["ApproachRate"] {
			d.Difficulty.ApproachRate = d.Difficulty.OverallDifficulty
		}
		return nil
	case "Events":
		d.Events = p.rawLines(sc)
		return nil
	case "TimingPoints":
		d.TimingPoints = d.TimingPoints[:0]
		for _, l := range p.positional(sc) {
			tp, err := parseTimingPoint(l.text)
			if err != nil {
				return atLine(err, l.num)
			}
			d.TimingPoints = append(d.TimingPoints, tp)
		}
		return nil
	case "HitObjects":
		d.HitObjects = d.HitObjects[:0]
		for _, l := range p.positional(sc) {
			ho, err := parseHitObject(l.text)
			if err != nil {
				return atLine(err, l.num)
			}
			d.HitObjects = append(d.HitObjects, ho)
		}
		return nil
	case "Colours":
		c, err := p.parseColours(sc)
		if err != nil {
			return err
		}
		d.Colours = c
		return nil
	}
	return atLine(syntaxErrf("unknown section header %s", name), headerLine)
}

// keyValue splits a key/value line. An empty value becomes noValue.
func (p *Parser) keyValue(line string) (key, value string, ok bool) {
	m := p.kv.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	value = strings.TrimSpace(m[2])
	if value == "" {
		value = noValue
	}
	return m[1], value, true
}

// decodeSection reads key/value lines into dst until a line is not a pair.
// Unknown keys are skipped. It returns the set of keys it decoded.
func decodeSection[T any](p *Parser, sc *Scanner, name string, dst *T, table []field[T]) (map[string]bool, error) {
	seen := make(map[string]bool)
	for line, ok := sc.Current(); ok; line, ok = sc.Next() {
		key, value, isKV := p.keyValue(line)
		if !isKV {
			break
		}
		f := lookupField(table, key)
		if f == nil {
			p.log.Debug().Str("section", name).Str("key", key).Int("line", sc.Line()).Msg("ignoring unknown key")
			continue
		}
		if err := f.decode(value, dst); err != nil {
			return nil, fmt.Errorf("%s: %w", key, atLine(err, sc.Line()))
		}
		seen[key] = true
	}
	return seen, nil
}

// positional collects every line up to the next header.
func (p *Parser) positional(sc *Scanner) []line {
	var out []line
	for text, ok := sc.Current(); ok && !p.header.MatchString(text); text, ok = sc.Next() {
		out = append(out, line{text: text, num: sc.Line()})
	}
	return out
}

func (p *Parser) rawLines(sc *Scanner) []string {
	var out []string
	for _, l := range p.positional(sc) {
		out = append(out, l.text)
	}
	return out
}

// ---------- [Colours] ----------

func (p *Parser) parseColours(sc *Scanner) (ColoursSection, error) {
	type numbered struct {
		n int
		c Colour
	}
	var (
		sec   ColoursSection
		combo []numbered
	)
	for line, ok := sc.Current(); ok; line, ok = sc.Next() {
		key, value, isKV := p.keyValue(line)
		if !isKV {
			break
		}
		c, err := parseColour(value)
		if err != nil {
			return ColoursSection{}, fmt.Errorf("%s: %w", key, atLine(err, sc.Line()))
		}
		if m := p.combo.FindStringSubmatch(key); m != nil {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return ColoursSection{}, atLine(syntaxErr("unable to parse number"), sc.Line())
			}
			combo = append(combo, numbered{n: n, c: c})
			continue
		}
		switch key {
		case "SliderBody":
			sec.SliderBody = &c
		case "SliderTrackOverride":
			sec.SliderTrackOverride = &c
		case "SliderBorder":
			sec.SliderBorder = &c
		default:
			return ColoursSection{}, atLine(syntaxErrf("unknown key value %s", key), sc.Line())
		}
	}
	slices.SortStableFunc(combo, func(a, b numbered) int { return cmp.Compare(a.n, b.n) })
	for _, nc := range combo {
		sec.Combo = append(sec.Combo, nc.c)
	}
	return sec, nil
}

func parseColour(s string) (Colour, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 3 {
		return Colour{}, syntaxErr("colour needs three components")
	}
	var rgb [3]int
	for i := range rgb {
		v, err := parseInt(parts[i])
		if err != nil {
			return Colour{}, err
		}
		rgb[i] = v
	}
	return Colour{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// ---------- [TimingPoints] ----------

func parseTimingPoint(s string) (TimingPoint, error) {
	parts := strings.Split(s, ",")
	tp := TimingPoint{Meter: 4, SampleSet: "0", Volume: 100}

	required := func(i int, name string) (string, error) {
		if i >= len(parts) || strings.TrimSpace(parts[i]) == "" {
			return "", syntaxErrf("unable to read field %s into TimingPoint", name)
		}
		return parts[i], nil
	}
	optional := func(i int) (string, bool) {
		if i >= len(parts) || strings.TrimSpace(parts[i]) == "" {
			return "", false
		}
		return parts[i], true
	}

	v, err := required(0, "offset")
	if err != nil {
		return TimingPoint{}, err
	}
	if tp.Offset, err = parseInt(v); err != nil {
		return TimingPoint{}, err
	}
	if v, err = required(1, "beatLength"); err != nil {
		return TimingPoint{}, err
	}
	if tp.BeatLength, err = parseFloat(v); err != nil {
		return TimingPoint{}, err
	}
	tp.Uninherited = tp.BeatLength > 0

	if v, ok := optional(2); ok {
		if tp.Meter, err = parseInt(v); err != nil {
			return TimingPoint{}, err
		}
	}
	if v, ok := optional(3); ok {
		tp.SampleSet = strings.TrimSpace(v)
	}
	if v, ok := optional(4); ok {
		if tp.SampleIndex, err = parseInt(v); err != nil {
			return TimingPoint{}, err
		}
	}
	if v, ok := optional(5); ok {
		if tp.Volume, err = parseInt(v); err != nil {
			return TimingPoint{}, err
		}
	}
	if v, ok := optional(6); ok {
		if tp.Uninherited, err = parseBool(v); err != nil {
			return TimingPoint{}, err
		}
	}
	if v, ok := optional(7); ok {
		effects, err := parseInt(v)
		if err != nil {
			return TimingPoint{}, err
		}
		tp.Kiai = effects&1 != 0
		tp.OmitFirstBarLine = effects&8 != 0
	}
	return tp, nil
}
