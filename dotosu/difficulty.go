package dotosu

// Preempt is how long before its time, in ms, an object starts to appear.
func (d DifficultySection) Preempt() float64 {
	ar := d.ApproachRate
	if ar < 5 {
		return 1200 + 600*(5-ar)/5
	}
	return 1200 - 750*(ar-5)/5
}

// FadeIn is how long, in ms, an object takes to become fully opaque.
func (d DifficultySection) FadeIn() float64 {
	ar := d.ApproachRate
	if ar < 5 {
		return 800 + 400*(5-ar)/5
	}
	return 800 - 500*(ar-5)/5
}

// CircleRadius is the hit circle radius in osu!pixels.
func (d DifficultySection) CircleRadius() float64 {
	return 54.4 - 4.48*d.CircleSize
}

// HitWindows are the ± timing windows, in ms, for a 300, 100 and 50.
type HitWindows struct {
	Great, Ok, Meh float64
}

// HitWindows derives the timing windows from OverallDifficulty.
func (d DifficultySection) HitWindows() HitWindows {
	od := d.OverallDifficulty
	return HitWindows{
		Great: 80 - 6*od,
		Ok:    140 - 8*od,
		Meh:   200 - 10*od,
	}
}
