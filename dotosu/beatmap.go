package dotosu

import "fmt"

// ---------- Chart model ----------

// Chart is every difficulty decoded from one bundle.
type Chart struct {
	Difficulties []*Difficulty
}

// Difficulty is one decoded .osu file.
type Difficulty struct {
	Name     string // bundle entry the difficulty was decoded from
	Checksum string // hex MD5 of the source bytes
	Version  int

	General    GeneralSection
	Editor     EditorSection
	Metadata   MetadataSection
	Difficulty DifficultySection
	Colours    ColoursSection

	Events       []string // raw [Events] lines, not interpreted
	TimingPoints []TimingPoint
	HitObjects   []HitObject

	Audio []byte
}

type GameMode int

const (
	ModeStandard GameMode = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

func (m GameMode) String() string {
	switch m {
	case ModeStandard:
		return "osu"
	case ModeTaiko:
		return "taiko"
	case ModeCatch:
		return "catch"
	case ModeMania:
		return "mania"
	}
	return fmt.Sprintf("GameMode(%d)", int(m))
}

type GeneralSection struct {
	AudioFilename            string
	AudioLeadIn              int
	PreviewTime              int
	Countdown                bool
	SampleSet                string
	SampleVolume             int
	StackLeniency            float64
	Mode                     GameMode
	LetterboxInBreaks        bool
	WidescreenStoryboard     bool
	StoryFireInFront         bool
	SpecialStyle             bool
	EpilepsyWarning          bool
	UseSkinSprites           bool
	SamplesMatchPlaybackRate bool
}

type EditorSection struct {
	Bookmarks       []int
	DistanceSpacing float64
	BeatDivisor     int
	GridSize        int
	TimelineZoom    float64
}

type MetadataSection struct {
	Title         string
	TitleUnicode  string
	Artist        string
	ArtistUnicode string
	Creator       string
	Version       string
	Source        string
	Tags          []string
	BeatmapID     int
	BeatmapSetID  int
}

type DifficultySection struct {
	HPDrainRate       float64
	CircleSize        float64
	OverallDifficulty float64
	ApproachRate      float64
	SliderMultiplier  float64
	SliderTickRate    float64
}

type Colour struct{ R, G, B int }

func (c Colour) String() string { return fmt.Sprintf("%d,%d,%d", c.R, c.G, c.B) }

// ColoursSection holds the combo palette in Combo<n> order plus the optional
// slider overrides, nil when the file does not set them.
type ColoursSection struct {
	Combo               []Colour
	SliderBody          *Colour
	SliderTrackOverride *Colour
	SliderBorder        *Colour
}

// TimingPoint is one line of [TimingPoints]. A positive BeatLength is an
// absolute tempo, anything else scales slider velocity by -100/BeatLength percent.
type TimingPoint struct {
	Offset           int
	BeatLength       float64
	Meter            int
	SampleSet        string
	SampleIndex      int
	Volume           int
	Uninherited      bool
	Kiai             bool
	OmitFirstBarLine bool
}

// ---------- defaults ----------

func defaultGeneral() GeneralSection {
	return GeneralSection{
		SampleSet:     "Normal",
		SampleVolume:  100,
		StackLeniency: 0.7,
		Mode:          ModeStandard,
	}
}

func defaultEditor() EditorSection {
	return EditorSection{
		DistanceSpacing: 1.22,
		BeatDivisor:     4,
		GridSize:        4,
		TimelineZoom:    1.0,
	}
}

func defaultDifficulty() DifficultySection {
	return DifficultySection{
		HPDrainRate:       5,
		CircleSize:        5,
		OverallDifficulty: 5,
		ApproachRate:      5,
		SliderMultiplier:  1.4,
		SliderTickRate:    1,
	}
}

func newDifficulty() *Difficulty {
	return &Difficulty{
		General:    defaultGeneral(),
		Editor:     defaultEditor(),
		Difficulty: defaultDifficulty(),
	}
}
