package dotosu

import (
	"context"
	"fmt"
	"iter"
	"maps"
	"path"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Files is a chart bundle: every entry's name and contents.
type Files interface {
	Entries() iter.Seq2[string, []byte]
}

// Result is the outcome of decoding one .osu entry. Exactly one of
// Difficulty and Err is set.
type Result struct {
	Name       string
	Difficulty *Difficulty
	Err        error
}

// DecodeBundle decodes every .osu entry of files in parallel and resolves
// each difficulty's audio against the same bundle. A failing entry does not
// stop the others; its error is in its Result. Results are ordered by entry
// name. The returned error is only set when ctx is done.
func (p *Parser) DecodeBundle(ctx context.Context, files Files) ([]Result, error) {
	assets := make(map[string][]byte)
	var charts []string
	for name, data := range files.Entries() {
		assets[name] = data
		if strings.EqualFold(path.Ext(name), ".osu") {
			charts = append(charts, name)
		}
	}
	slices.Sort(charts)

	results := make([]Result, len(charts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, name := range charts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := p.decodeEntry(name, assets)
			results[i] = Result{Name: name, Difficulty: d, Err: err}
			if err != nil {
				p.log.Warn().Str("entry", name).Err(err).Msg("difficulty failed")
			} else {
				p.log.Debug().Str("entry", name).Int("objects", len(d.HitObjects)).Msg("difficulty decoded")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// NewChart collects the successfully decoded difficulties of results.
func NewChart(results []Result) *Chart {
	c := &Chart{}
	for _, r := range results {
		if r.Err == nil && r.Difficulty != nil {
			c.Difficulties = append(c.Difficulties, r.Difficulty)
		}
	}
	return c
}

func (p *Parser) decodeEntry(name string, assets map[string][]byte) (d *Difficulty, err error) {
	defer func() {
		if r := recover(); r != nil {
			d, err = nil, &DifficultyError{Name: name, Err: panicError(r)}
		}
	}()

	d, err = p.Decode(assets[name])
	if err != nil {
		return nil, &DifficultyError{Name: name, Err: err}
	}
	audio, err := lookupAsset(assets, d.General.AudioFilename)
	if err != nil {
		return nil, &DifficultyError{Name: name, Err: err}
	}
	d.Name = name
	d.Audio = audio
	return d, nil
}

// lookupAsset finds name in assets, first exactly, then ignoring case and
// path separator style.
func lookupAsset(assets map[string][]byte, name string) ([]byte, error) {
	if data, ok := assets[name]; ok {
		return data, nil
	}
	want := normaliseName(name)
	for _, k := range slices.Sorted(maps.Keys(assets)) {
		if normaliseName(k) == want {
			return assets[k], nil
		}
	}
	return nil, &BundleError{Name: name, Msg: "audio file not found in bundle"}
}

func normaliseName(name string) string {
	name = strings.Trim(name, "\"")
	return strings.ToLower(strings.ReplaceAll(name, "\\", "/"))
}

func panicError(r any) error {
	buf := make([]byte, 100000)
	n := runtime.Stack(buf, false)
	return fmt.Errorf("panic: %v\n\n%s", r, buf[:n])
}
