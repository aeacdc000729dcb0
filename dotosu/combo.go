package dotosu

// ComboInfo is where an object sits in the combo sequence.
type ComboInfo struct {
	Combo  int // 0-based combo ordinal
	Number int // 1-based position inside the combo
	Colour int // index into the combo palette
}

// AssignCombos numbers objects into combos. The first object and every
// new-combo object open a combo; opening one moves the palette by one plus the
// object's colour skip, except for the first object which moves by its skip
// alone. With an empty palette Colour stays 0.
func AssignCombos(objects []HitObject, paletteSize int) []ComboInfo {
	out := make([]ComboInfo, len(objects))
	combo, number, colour := -1, 0, 0
	for i, o := range objects {
		b := o.Common()
		switch {
		case i == 0:
			combo, number = 0, 0
			colour += b.ColourSkip()
		case b.NewCombo():
			combo++
			number = 0
			colour += 1 + b.ColourSkip()
		}
		number++

		c := 0
		if paletteSize > 0 {
			c = colour % paletteSize
		}
		out[i] = ComboInfo{Combo: combo, Number: number, Colour: c}
	}
	return out
}
