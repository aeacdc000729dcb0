package dotosu

import (
	"context"
	"errors"
	"iter"
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapFiles map[string][]byte

func (m mapFiles) Entries() iter.Seq2[string, []byte] { return maps.All(m) }

func chartWithAudio(audio, version string) []byte {
	return []byte("osu file format v14\n[General]\nAudioFilename: " + audio + "\n[Metadata]\nVersion:" + version + "\n[HitObjects]\n256,192,1000,1,0\n")
}

func TestDecodeBundle(t *testing.T) {
	files := mapFiles{
		"Artist - Title (mapper) [Hard].osu":   chartWithAudio("audio.mp3", "Hard"),
		"Artist - Title (mapper) [Easy].OSU":   chartWithAudio("AUDIO.MP3", "Easy"),
		"Artist - Title (mapper) [Broken].osu": []byte("osu file format v14\n[HitObjects]\n1,2,3,0,0\n"),
		"Artist - Title (mapper) [Silent].osu": chartWithAudio("missing.ogg", "Silent"),
		"sb\\audio.mp3":                        []byte("ID3-not-really"),
		"audio.mp3":                            []byte("ID3"),
		"bg.jpg":                               []byte("jpeg"),
	}

	results, err := newTestParser().DecodeBundle(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, results, 4)

	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Name
	}
	assert.Equal(t, []string{
		"Artist - Title (mapper) [Broken].osu",
		"Artist - Title (mapper) [Easy].OSU",
		"Artist - Title (mapper) [Hard].osu",
		"Artist - Title (mapper) [Silent].osu",
	}, names)

	broken := results[0]
	assert.Nil(t, broken.Difficulty)
	var de *DifficultyError
	require.True(t, errors.As(broken.Err, &de))
	assert.Equal(t, broken.Name, de.Name)
	var se *SyntaxError
	assert.True(t, errors.As(broken.Err, &se))

	easy := results[1]
	require.NoError(t, easy.Err)
	assert.Equal(t, "Easy", easy.Difficulty.Metadata.Version)
	assert.Equal(t, []byte("ID3"), easy.Difficulty.Audio)
	assert.Equal(t, easy.Name, easy.Difficulty.Name)

	hard := results[2]
	require.NoError(t, hard.Err)
	assert.Equal(t, []byte("ID3"), hard.Difficulty.Audio)

	silent := results[3]
	assert.Nil(t, silent.Difficulty)
	var be *BundleError
	require.True(t, errors.As(silent.Err, &be))
	assert.Equal(t, "missing.ogg", be.Name)

	chart := NewChart(results)
	require.Len(t, chart.Difficulties, 2)
	assert.Equal(t, "Easy", chart.Difficulties[0].Metadata.Version)
}

func TestDecodeBundleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestParser().DecodeBundle(ctx, mapFiles{"a.osu": chartWithAudio("a.mp3", "x"), "a.mp3": nil})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeBundleWithoutCharts(t *testing.T) {
	results, err := newTestParser().DecodeBundle(context.Background(), mapFiles{"audio.mp3": nil})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLookupAsset(t *testing.T) {
	assets := map[string][]byte{
		"Audio.mp3":       []byte("a"),
		"sounds/hit.wav":  []byte("b"),
		"exact\\name.ogg": []byte("c"),
	}
	tests := []struct {
		name string
		want string
	}{
		{"Audio.mp3", "a"},
		{"audio.MP3", "a"},
		{"sounds\\HIT.wav", "b"},
		{"exact\\name.ogg", "c"},
		{`"Audio.mp3"`, "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lookupAsset(assets, tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}

	_, err := lookupAsset(assets, "")
	var be *BundleError
	assert.True(t, errors.As(err, &be))
}

func TestPanicError(t *testing.T) {
	err := panicError("boom")
	assert.Contains(t, err.Error(), "panic: boom")
	assert.Contains(t, err.Error(), "goroutine")
}
