package dotosu

import (
	"strconv"
	"strings"
)

// noValue is what a key with nothing after its colon decodes to.
const noValue = "none"

// field binds one key of a key/value section to a member of the section
// record. Tables are ordered; encoding walks them in that order.
type field[T any] struct {
	key    string
	sep    string // list separator, empty for scalars
	decode func(v string, dst *T) error
	encode func(src *T) string
}

// ---------- scalar rules ----------

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, syntaxErr("unable to parse number")
	}
	return v, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, syntaxErr("unable to parse number")
	}
	return v, nil
}

// parseBool accepts integers only: zero is false, anything else true.
func parseBool(s string) (bool, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return false, syntaxErr("could not parse bool")
	}
	return v != 0, nil
}

func parseMode(s string) (GameMode, error) {
	switch strings.TrimSpace(s) {
	case "0":
		return ModeStandard, nil
	case "1":
		return ModeTaiko, nil
	case "2":
		return ModeCatch, nil
	case "3":
		return ModeMania, nil
	}
	return 0, syntaxErr("unable to parse gamemode")
}

func parseString(s string) (string, error) { return s, nil }

// parseList splits on sep and decodes every token, empty ones included. The
// empty-value sentinel is a token like any other.
func parseList[E any](s, sep string, one func(string) (E, error)) ([]E, error) {
	var out []E
	for _, tok := range strings.Split(s, sep) {
		v, err := one(strings.TrimSpace(tok))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func formatBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// ---------- field constructors ----------

func scalar[T, V any](key string, at func(*T) *V, parse func(string) (V, error), format func(V) string) field[T] {
	return field[T]{
		key: key,
		decode: func(v string, dst *T) error {
			x, err := parse(v)
			if err != nil {
				return err
			}
			*at(dst) = x
			return nil
		},
		encode: func(src *T) string { return format(*at(src)) },
	}
}

func list[T, E any](key, sep string, at func(*T) *[]E, parse func(string) (E, error), format func(E) string) field[T] {
	return field[T]{
		key: key,
		sep: sep,
		decode: func(v string, dst *T) error {
			xs, err := parseList(v, sep, parse)
			if err != nil {
				return err
			}
			*at(dst) = xs
			return nil
		},
		encode: func(src *T) string {
			parts := make([]string, 0, len(*at(src)))
			for _, x := range *at(src) {
				parts = append(parts, format(x))
			}
			return strings.Join(parts, sep)
		},
	}
}

func intField[T any](key string, at func(*T) *int) field[T] {
	return scalar(key, at, parseInt, strconv.Itoa)
}

func floatField[T any](key string, at func(*T) *float64) field[T] {
	return scalar(key, at, parseFloat, formatFloat)
}

func boolField[T any](key string, at func(*T) *bool) field[T] {
	return scalar(key, at, parseBool, formatBool)
}

func stringField[T any](key string, at func(*T) *string) field[T] {
	return scalar(key, at, parseString, func(s string) string { return s })
}

func modeField[T any](key string, at func(*T) *GameMode) field[T] {
	return scalar(key, at, parseMode, func(m GameMode) string { return strconv.Itoa(int(m)) })
}

// ---------- section tables ----------

var generalFields = []field[GeneralSection]{
	stringField("AudioFilename", func(s *GeneralSection) *string { return &s.AudioFilename }),
	intField("AudioLeadIn", func(s *GeneralSection) *int { return &s.AudioLeadIn }),
	intField("PreviewTime", func(s *GeneralSection) *int { return &s.PreviewTime }),
	boolField("Countdown", func(s *GeneralSection) *bool { return &s.Countdown }),
	stringField("SampleSet", func(s *GeneralSection) *string { return &s.SampleSet }),
	intField("SampleVolume", func(s *GeneralSection) *int { return &s.SampleVolume }),
	floatField("StackLeniency", func(s *GeneralSection) *float64 { return &s.StackLeniency }),
	modeField("Mode", func(s *GeneralSection) *GameMode { return &s.Mode }),
	boolField("LetterboxInBreaks", func(s *GeneralSection) *bool { return &s.LetterboxInBreaks }),
	boolField("WidescreenStoryboard", func(s *GeneralSection) *bool { return &s.WidescreenStoryboard }),
	boolField("StoryFireInFront", func(s *GeneralSection) *bool { return &s.StoryFireInFront }),
	boolField("SpecialStyle", func(s *GeneralSection) *bool { return &s.SpecialStyle }),
	boolField("EpilepsyWarning", func(s *GeneralSection) *bool { return &s.EpilepsyWarning }),
	boolField("UseSkinSprites", func(s *GeneralSection) *bool { return &s.UseSkinSprites }),
	boolField("SamplesMatchPlaybackRate", func(s *GeneralSection) *bool { return &s.SamplesMatchPlaybackRate }),
}

var editorFields = []field[EditorSection]{
	list("Bookmarks", ",", func(s *EditorSection) *[]int { return &s.Bookmarks }, parseInt, strconv.Itoa),
	floatField("DistanceSpacing", func(s *EditorSection) *float64 { return &s.DistanceSpacing }),
	intField("BeatDivisor", func(s *EditorSection) *int { return &s.BeatDivisor }),
	intField("GridSize", func(s *EditorSection) *int { return &s.GridSize }),
	floatField("TimelineZoom", func(s *EditorSection) *float64 { return &s.TimelineZoom }),
}

var metadataFields = []field[MetadataSection]{
	stringField("Title", func(s *MetadataSection) *string { return &s.Title }),
	stringField("TitleUnicode", func(s *MetadataSection) *string { return &s.TitleUnicode }),
	stringField("Artist", func(s *MetadataSection) *string { return &s.Artist }),
	stringField("ArtistUnicode", func(s *MetadataSection) *string { return &s.ArtistUnicode }),
	stringField("Creator", func(s *MetadataSection) *string { return &s.Creator }),
	stringField("Version", func(s *MetadataSection) *string { return &s.Version }),
	stringField("Source", func(s *MetadataSection) *string { return &s.Source }),
	list("Tags", " ", func(s *MetadataSection) *[]string { return &s.Tags }, parseString, func(s string) string { return s }),
	intField("BeatmapID", func(s *MetadataSection) *int { return &s.BeatmapID }),
	intField("BeatmapSetID", func(s *MetadataSection) *int { return &s.BeatmapSetID }),
}

var difficultyFields = []field[DifficultySection]{
	floatField("HPDrainRate", func(s *DifficultySection) *float64 { return &s.HPDrainRate }),
	floatField("CircleSize", func(s *DifficultySection) *float64 { return &s.CircleSize }),
	floatField("OverallDifficulty", func(s *DifficultySection) *float64 { return &s.OverallDifficulty }),
	floatField("ApproachRate", func(s *DifficultySection) *float64 { return &s.ApproachRate }),
	floatField("SliderMultiplier", func(s *DifficultySection) *float64 { return &s.SliderMultiplier }),
	floatField("SliderTickRate", func(s *DifficultySection) *float64 { return &s.SliderTickRate }),
}

func lookupField[T any](table []field[T], key string) *field[T] {
	for i := range table {
		if table[i].key == key {
			return &table[i]
		}
	}
	return nil
}
