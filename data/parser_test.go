package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parserTestStruct struct {
	Name  string   `json:"name"`
	Sizes []int    `json:"sizes"`
	Tags  []string `json:"tags"`
}

func TestParseJSON(t *testing.T) {
	input := `{"name": "x", "sizes": [1, 2], "tags": ["a"]}`
	var out parserTestStruct
	require.NoError(t, ParseJSONOrYAML([]byte(input), &out))
	assert.Equal(t, parserTestStruct{Name: "x", Sizes: []int{1, 2}, Tags: []string{"a"}}, out)
}

func TestParseYAML(t *testing.T) {
	input := `---
name: x
sizes:
  - 1
  - 2
tags: [ a ]
`
	var out parserTestStruct
	require.NoError(t, ParseJSONOrYAML([]byte(input), &out))
	assert.Equal(t, parserTestStruct{Name: "x", Sizes: []int{1, 2}, Tags: []string{"a"}}, out)
}

func TestParseMalformedData(t *testing.T) {
	input := `{"name": [whoops`
	var out parserTestStruct
	assert.Error(t, ParseJSONOrYAML([]byte(input), &out))
}
