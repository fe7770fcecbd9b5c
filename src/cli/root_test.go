package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BielosX/wombat/pokedex/src/config"
	"github.com/BielosX/wombat/pokedex/src/pokeapi/pokeapitest"
	"github.com/BielosX/wombat/pokedex/src/pokemon"
)

// execute runs the command tree against a fake API holding total records.
func execute(t *testing.T, total int, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	server := pokeapitest.NewServer(t, total)

	a := &app{v: config.New(), httpClient: server.Client()}
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--base-url", server.URL + "/", "--log-level", "error"}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func listedNames(out string) []string {
	var names []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) >= 2 && strings.HasPrefix(fields[0], "#") {
			names = append(names, fields[1])
		}
	}
	return names
}

func TestList_FirstPage(t *testing.T) {
	out, err := execute(t, 30, "list", "--page-size", "5")
	require.NoError(t, err)

	assert.Equal(t, []string{"bulbasaur", "ivysaur", "venusaur", "charmander", "charmeleon"}, listedNames(out))
	assert.Contains(t, out, "NUMBER")
	assert.Contains(t, out, "5 shown")
}

func TestList_AllPagesSearch(t *testing.T) {
	out, err := execute(t, 12, "list", "--page-size", "5", "--pages", "0", "--search", "SAUR")
	require.NoError(t, err)

	assert.Equal(t, []string{"bulbasaur", "ivysaur", "venusaur"}, listedNames(out))
	assert.Contains(t, out, "3 shown")
}

func TestList_SearchByNumber(t *testing.T) {
	out, err := execute(t, 12, "list", "--pages", "0", "--search", "6")
	require.NoError(t, err)
	assert.Equal(t, []string{"charizard"}, listedNames(out))
}

func TestList_SortByNameDesc(t *testing.T) {
	out, err := execute(t, 9, "list", "--sort", "name-desc")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"wartortle", "venusaur", "squirtle", "ivysaur", "charmeleon",
		"charmander", "charizard", "bulbasaur", "blastoise",
	}, listedNames(out))
}

func TestList_TypeFilter(t *testing.T) {
	selected := pokeapitest.TypesOf(1)[0]
	var want []string
	for id := 1; id <= 20; id++ {
		if pokemon.NewTypeSet(selected).Intersects(pokeapitest.TypesOf(id)) {
			want = append(want, pokeapitest.Name(id))
		}
	}

	out, err := execute(t, 20, "list", "--pages", "0", "--type", string(selected))
	require.NoError(t, err)
	assert.Equal(t, want, listedNames(out))
}

func TestList_InvalidFlags(t *testing.T) {
	_, err := execute(t, 5, "list", "--type", "plasma")
	assert.ErrorContains(t, err, `unknown type "plasma"`)

	_, err = execute(t, 5, "list", "--sort", "weight")
	assert.ErrorContains(t, err, "unknown sort key")

	_, err = execute(t, 5, "list", "--page-size", "0")
	assert.ErrorContains(t, err, "list.page_size must be positive")
}

func TestShow(t *testing.T) {
	out, err := execute(t, 10, "show", "6")
	require.NoError(t, err)

	assert.Contains(t, out, "#006 charizard")
	assert.Contains(t, out, "Weight: 6,0 kg")
	assert.Contains(t, out, "Height: 0,6 m")
	assert.Contains(t, out, "Moves:  tackle, growl")
	assert.Contains(t, out, pokeapitest.Bio(6)+" second line")
	assert.Contains(t, out, pokemon.ArtworkURL(6))
}

func TestShow_Shiny(t *testing.T) {
	out, err := execute(t, 10, "show", "--shiny", "3")
	require.NoError(t, err)
	assert.Contains(t, out, pokemon.ShinyArtworkURL(3))
}

func TestShow_NotFound(t *testing.T) {
	_, err := execute(t, 10, "show", "999")
	assert.EqualError(t, err, "no Pokémon with number 999")

	_, err = execute(t, 10, "show", "zero")
	assert.ErrorContains(t, err, "invalid Pokémon number")
}

func TestExport_ToDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("POKEDEX_EXPORT_DIR", dir)

	out, err := execute(t, 8, "export", "--page-size", "5", "--pages", "3", "--format", "csv")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "pokemons", "1_5.csv"))
	assert.FileExists(t, filepath.Join(dir, "pokemons", "6_8.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "pokemons", "1_5.parquet"))
	assert.Contains(t, out, "5 records -> "+filepath.Join(dir, "pokemons", "1_5.csv"))
	assert.Contains(t, out, "offset 10: nothing to export")

	data, err := os.ReadFile(filepath.Join(dir, "pokemons", "6_8.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "charizard")
}

func TestExport_RequiresBucketForS3(t *testing.T) {
	t.Setenv("BUCKET_NAME", "")
	_, err := execute(t, 5, "export", "--s3")
	assert.EqualError(t, err, "export.bucket is not set")
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := execute(t, 5, "export", "--format", "xml")
	assert.ErrorContains(t, err, `unknown format "xml"`)
}

func TestLambda_UnknownHandler(t *testing.T) {
	t.Setenv("_HANDLER", "")
	_, err := execute(t, 5, "lambda")
	assert.ErrorContains(t, err, `unknown lambda handler ""`)
}

func TestVersion(t *testing.T) {
	SetVersionInfo("1.2.3", "abc123", "2026-01-01")
	t.Cleanup(func() { SetVersionInfo("dev", "none", "unknown") })

	out, err := execute(t, 1, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "pokedex 1.2.3")
	assert.Contains(t, out, "commit: abc123")
}
