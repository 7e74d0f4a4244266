package datasource

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/tennis-tips/internal/models"
)

const sackmannSample = `tourney_date,tourney_name,tourney_level,surface,round,winner_name,loser_name,score
20230115,Australian Open,G,Hard,R32,Alice Smith,Bena Jones,6-4 6-4
20230116,Australian Open,G,Hard,R16,Cara Lopez,Alice Smith,7-5 6-3
notadate,Australian Open,G,Hard,R16,Dana Kim,Eve North,6-0 6-0
20230117,Australian Open,G,Hard,QF,,Eve North,6-2 6-2
`

func writeSackmannFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestSackmannLoad(t *testing.T) {
	dir := t.TempDir()
	writeSackmannFile(t, dir, "sackmann_matches_2023.csv", sackmannSample)

	c := NewSackmannClient(nil, "", "", 2023, 2023, dir, true, nil)
	results, report, err := c.Load()
	require.NoError(t, err)

	require.Len(t, results, 2)
	first := results[0]
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "Alice Smith", first.PlayerA)
	assert.Equal(t, "Bena Jones", first.PlayerB)
	assert.Equal(t, models.WinnerA, first.Winner)
	assert.Equal(t, models.SurfaceHard, first.Surface)
	assert.Equal(t, "Australian Open", first.Tournament)
	assert.Equal(t, "R32", first.Round)

	assert.Equal(t, 1, report.Files)
	assert.Equal(t, 4, report.Rows)
	assert.Equal(t, 2, report.Parsed)
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, 1, report.SkipReasons["bad_date"])
	assert.Equal(t, 1, report.SkipReasons["missing_player"])
}

func TestSackmannLoadRequiresColumns(t *testing.T) {
	dir := t.TempDir()
	writeSackmannFile(t, dir, "sackmann_matches_2023.csv", "a,b,c\n1,2,3\n")

	c := NewSackmannClient(nil, "", "", 2023, 2023, dir, true, nil)
	results, report, err := c.Load()
	// the unreadable file is skipped, not fatal
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, report.Files)
}

func TestSackmannLoadNoFiles(t *testing.T) {
	c := NewSackmannClient(nil, "", "", 2023, 2023, t.TempDir(), true, nil)
	_, _, err := c.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run fetch first")
}

func TestIndexColumnsAndField(t *testing.T) {
	col := indexColumns([]string{"tourney_date", " surface ", "winner_name"})
	assert.Equal(t, 0, col["tourney_date"])
	assert.Equal(t, 1, col["surface"])

	row := []string{"20230115", "Hard"}
	assert.Equal(t, "Hard", field(row, col, "surface"))
	// column past the row and unknown column both read empty
	assert.Equal(t, "", field(row, col, "winner_name"))
	assert.Equal(t, "", field(row, col, "loser_name"))
}
