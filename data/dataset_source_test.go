package data

import (
	"testing"

	"github.com/Trieg/browser-test-harness/framework/btest"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sourceFor(data string) SourceInfo {
	return SourceInfo{FilePath: "test.json", BaseName: "test.json", Data: []byte(data)}
}

func normalized(t *testing.T, s SourceInfo) []btest.DatasetEntry {
	dataset, err := s.ToDataset()
	require.NoError(t, err)
	named, err := dataset.Normalize()
	require.NoError(t, err)
	return named.Entries()
}

func TestTopLevelArrayBecomesListedDataset(t *testing.T) {
	entries := normalized(t, sourceFor(`["a", [2, 3]]`))
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, []ldvalue.Value{ldvalue.String("a")}, entries[0].Args)
	assert.Equal(t, "[2,3]", entries[1].Name)
	assert.Equal(t, []ldvalue.Value{ldvalue.Int(2), ldvalue.Int(3)}, entries[1].Args)
}

func TestTopLevelObjectBecomesKeyedDatasetWithSortedLabels(t *testing.T) {
	entries := normalized(t, sourceFor(`{"b": [3, 4], "a": 1}`))
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, []ldvalue.Value{ldvalue.Int(1)}, entries[0].Args)
	assert.Equal(t, "b", entries[1].Name)
	assert.Equal(t, []ldvalue.Value{ldvalue.Int(3), ldvalue.Int(4)}, entries[1].Args)
}

func TestTopLevelScalarIsRejected(t *testing.T) {
	_, err := sourceFor(`3`).ToDataset()
	assert.Error(t, err)
}

func TestEmbeddedDataFilesProduceValidDatasets(t *testing.T) {
	sources, err := LoadAllDataFiles("")
	require.NoError(t, err)
	require.NotEmpty(t, sources)
	for _, source := range sources {
		t.Run(source.BaseName, func(t *testing.T) {
			dataset, err := source.ToDataset()
			require.NoError(t, err)
			named, err := dataset.Normalize()
			require.NoError(t, err)
			assert.NotZero(t, named.Count())
		})
	}
}
