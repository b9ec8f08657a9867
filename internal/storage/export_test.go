// ABOUTME: Tests for export formats and seed-file decoding.
// ABOUTME: Exports must round-trip back into a store as seed data.
package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/bbg/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportNow = time.Date(2024, 3, 28, 9, 0, 0, 0, time.UTC)

func TestExportJSONRoundTrip(t *testing.T) {
	data := NewExport(DemoData(), exportNow)

	out, err := ExportJSON(data)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"version": "1.0"`)
	assert.Contains(t, string(out), `"captain_id": "c1"`)
	assert.Contains(t, string(out), `"join_date": "2024-01-15"`)

	back, err := DecodeSeed(out)
	require.NoError(t, err)
	assert.Equal(t, DemoData(), back)
}

func TestExportYAMLRoundTrip(t *testing.T) {
	data := NewExport(DemoData(), exportNow)

	out, err := ExportYAML(data)
	require.NoError(t, err)
	assert.Contains(t, string(out), "tool: bbg")

	back, err := DecodeSeed(out)
	require.NoError(t, err)
	assert.Equal(t, DemoData(), back)
}

func TestExportMarkdown(t *testing.T) {
	c := DemoData()
	c.Captains[0].Specialization = "Power | Olympic"
	md := ExportMarkdown(NewExport(c, exportNow), exportNow)

	assert.True(t, strings.HasPrefix(md, "# BBG Export - 2024-03-28"))
	for _, section := range []string{"## Captains", "## Members", "## Equipment", "## Workouts", "## Payments"} {
		assert.Contains(t, md, section)
	}
	assert.Contains(t, md, `Power \| Olympic`)
	assert.Contains(t, md, "| w4 | 2024-03-12 | m2 | e3 | 4x10 | 120.0 kg | 50 min |")
	// p1 ends 2024-04-01, four days after exportNow.
	assert.Contains(t, md, "| p1 | m1 | Monthly | 50.00 | 2024-03-01 | 2024-04-01 | Active |")
}

func TestExportMarkdownSkipsEmptySections(t *testing.T) {
	md := ExportMarkdown(NewExport(&models.Collections{}, exportNow), exportNow)
	assert.NotContains(t, md, "## ")
}

func TestDecodeSeedYAML(t *testing.T) {
	src := `
captains:
  - id: c1
    name: Dana Cruz
    specialization: Yoga
    experience: 4 years
members:
  - id: m1
    name: Eli Park
    email: eli@example.com
    join_date: 2024-06-01
    captain_id: c1
`
	c, err := DecodeSeed([]byte(src))
	require.NoError(t, err)
	require.Len(t, c.Members, 1)
	assert.Equal(t, "2024-06-01", c.Members[0].JoinDate.String())
	assert.Empty(t, c.Workouts)
}

func TestDecodeSeedRejectsUnknownFields(t *testing.T) {
	_, err := DecodeSeed([]byte("captains:\n  - id: c1\n    rank: 3\n"))
	assert.Error(t, err)

	_, err = DecodeSeed([]byte(`{"captains": [{"id": "c1", "rank": 3}]}`))
	assert.Error(t, err)
}

func TestReadSeedFileLoadsIntoStore(t *testing.T) {
	out, err := ExportYAML(NewExport(DemoData(), exportNow))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, out, 0600))

	c, err := ReadSeedFile(path)
	require.NoError(t, err)

	s := setupStore(t)
	require.NoError(t, s.Load(c))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Len(t, snap.Workouts, 4)
}

func TestReadSeedFileMissing(t *testing.T) {
	_, err := ReadSeedFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
