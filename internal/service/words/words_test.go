package words

import (
	"os"
	"path/filepath"
	"testing"

	"shadow-signal-be/internal/service/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	src := Default()

	assert.Equal(t, 20, src.Len())

	rng := game.NewRand(3)
	for range 100 {
		entry, err := src.Pick(rng)
		require.NoError(t, err)
		assert.NotEmpty(t, entry.Word)
		assert.NotEmpty(t, entry.Similar)
	}
}

func TestParse_DropsEmptyEntries(t *testing.T) {
	src, err := Parse([]byte(`{
		"domains": [
			{"name": "empty", "words": [{"word": "  "}]},
			{"name": "tools", "words": [{"word": " Hammer ", "similar": ["Mallet"]}, {"word": ""}]}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, 1, src.Len())

	entry, err := src.Pick(game.NewRand(1))
	require.NoError(t, err)
	assert.Equal(t, "Hammer", entry.Word)
	assert.Equal(t, []string{"Mallet"}, entry.Similar)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte(`{"domains": []}`))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Parse([]byte(`not json`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	src, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), src.Len())

	path := filepath.Join(t.TempDir(), "words.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"domains":[{"name":"x","words":[{"word":"Kite"}]}]}`), 0o644))

	src, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, src.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestPick_NilSource(t *testing.T) {
	var src *Source

	_, err := src.Pick(game.NewRand(1))
	assert.ErrorIs(t, err, ErrEmpty)
}
