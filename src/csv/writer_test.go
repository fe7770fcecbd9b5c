package csv

import (
	"bytes"
	"encoding/csv"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BielosX/wombat/pokedex/src/parquet"
)

func TestPokemonWriter(t *testing.T) {
	w := NewPokemonWriter()
	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Write(parquet.Pokemon{Id: 25, Name: "pikachu", Weight: 60, Height: 4, Type: "electric", Slot: 1, Generation: 1, Artwork: "a.png"}))
	require.NoError(t, w.Write(parquet.Pokemon{Id: 83, Name: "farfetch'd, the duck", Type: "normal", Slot: 1}))
	require.NoError(t, w.Finish())
	assert.Equal(t, len(w.Bytes()), w.Size())

	data, err := io.ReadAll(w.BufferReader())
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, []string{"id", "name", "weight", "height", "type", "slot", "generation", "artwork"}, records[0])
	assert.Equal(t, []string{"25", "pikachu", "60", "4", "electric", "1", "1", "a.png"}, records[1])
	assert.Equal(t, "farfetch'd, the duck", records[2][1])
}
