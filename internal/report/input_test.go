package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icsreport/pkg/contracts/domain"
)

func writeAnalysesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analyses.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRequest(t *testing.T) {
	path := writeAnalysesFile(t, `{
		"kind": "referral",
		"total_records": 15342,
		"analyses": [
			{
				"name": "Top Referrers",
				"title": "Top Referrers by Influence",
				"columns": ["Referrer", "Influence Score", "First Referral"],
				"rows": [
					["Alice", 93.4, "2026-01-10"],
					["Bob", null, "2026-04-02"]
				]
			},
			{
				"name": "Failed One",
				"error": "engine timeout",
				"columns": [],
				"rows": []
			}
		]
	}`)

	req, err := LoadRequest(path)
	require.NoError(t, err)

	assert.Equal(t, KindReferral, req.Kind)
	assert.Equal(t, 15342, req.TotalRecords)
	require.Len(t, req.Results, 2)

	first := req.Results[0]
	assert.Equal(t, "Top Referrers by Influence", first.Title)
	require.Len(t, first.Table.Rows, 2)
	assert.Equal(t, domain.Text("Alice"), first.Table.Rows[0][0])
	assert.Equal(t, domain.Number(93.4), first.Table.Rows[0][1])
	assert.Equal(t, domain.Missing(), first.Table.Rows[1][1])

	failed := req.Results[1]
	assert.False(t, failed.OK())
	// Title falls back to the analysis name
	assert.Equal(t, "Failed One", failed.Title)
}

func TestLoadRequestDefaultsToPortfolio(t *testing.T) {
	path := writeAnalysesFile(t, `{"analyses": []}`)
	req, err := LoadRequest(path)
	require.NoError(t, err)
	assert.Equal(t, KindPortfolio, req.Kind)
}

func TestLoadRequestRejectsUnknownKind(t *testing.T) {
	path := writeAnalysesFile(t, `{"kind": "quarterly"}`)
	_, err := LoadRequest(path)
	assert.Error(t, err)
}

func TestLoadRequestRejectsBadJSON(t *testing.T) {
	path := writeAnalysesFile(t, `{"analyses": [`)
	_, err := LoadRequest(path)
	assert.Error(t, err)
}

func TestLoadRequestMissingFile(t *testing.T) {
	_, err := LoadRequest(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
