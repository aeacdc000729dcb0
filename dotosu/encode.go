package dotosu

import (
	"fmt"
	"io"
)

// EncodeSections writes the General, Editor, Metadata and Difficulty sections
// of d as key/value lines, in the same order the decoder's tables list them.
// Empty values are left out since they would read back as the "none" sentinel.
func EncodeSections(w io.Writer, d *Difficulty) error {
	if err := encodeSection(w, "General", &d.General, generalFields); err != nil {
		return err
	}
	if err := encodeSection(w, "Editor", &d.Editor, editorFields); err != nil {
		return err
	}
	if err := encodeSection(w, "Metadata", &d.Metadata, metadataFields); err != nil {
		return err
	}
	return encodeSection(w, "Difficulty", &d.Difficulty, difficultyFields)
}

func encodeSection[T any](w io.Writer, name string, src *T, table []field[T]) error {
	if _, err := fmt.Fprintf(w, "[%s]\n", name); err != nil {
		return err
	}
	for _, f := range table {
		v := f.encode(src)
		if v == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", f.key, v); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
