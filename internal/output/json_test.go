package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"figaro/internal/trim"
)

func TestMarshalResultTableShape(t *testing.T) {
	results := []trim.ParameterSet{
		{ForwardTrim: 230, ReverseTrim: 220, ForwardMaxExpectedError: 3, ReverseMaxExpectedError: 4, ReadRetention: 0.9123, Score: 87.5},
	}
	data, err := MarshalResultTable(results)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, []any{float64(230), float64(220)}, decoded[0]["trimPosition"])
	assert.InDelta(t, 91.23, decoded[0]["readRetentionPercent"], 1e-9)
}

func TestWriteResultTableAndPlots(t *testing.T) {
	dir := t.TempDir()
	results := []trim.ParameterSet{{ForwardTrim: 1, ReverseTrim: 1, ForwardMaxExpectedError: 1, ReverseMaxExpectedError: 1, ReadRetention: 1, Score: 100}}

	require.NoError(t, WriteResultTable(dir, "trimParameters.json", results))
	data, err := os.ReadFile(filepath.Join(dir, "trimParameters.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "trimPosition")

	require.NoError(t, WritePlots(dir, []byte("fwd-png"), []byte("rev-png")))
	fwd, err := os.ReadFile(filepath.Join(dir, "forwardExpectedError.png"))
	require.NoError(t, err)
	assert.Equal(t, "fwd-png", string(fwd))
}
