package btest

import (
	"testing"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedGroup struct {
	name   string
	action func(*T)
}

// groupRecorder captures registrations without executing them, standing in for the
// runner's collection phase.
type groupRecorder struct {
	groups []recordedGroup
}

func (r *groupRecorder) Run(name string, action func(*T)) {
	r.groups = append(r.groups, recordedGroup{name: name, action: action})
}

func (r *groupRecorder) names() []string {
	ret := make([]string, 0, len(r.groups))
	for _, g := range r.groups {
		ret = append(ret, g.name)
	}
	return ret
}

// runRecordedGroups executes every recorded group body inside a real test scope and
// returns the argument lists each body received.
func runRecordedGroups(t *testing.T, r *groupRecorder, body *capturingTestBody) [][]ldvalue.Value {
	results := Run(TestConfiguration{}, func(ldt *T) {
		for _, g := range r.groups {
			ldt.Run(g.name, g.action)
		}
	})
	require.True(t, results.OK())
	return body.calls
}

type capturingTestBody struct {
	calls [][]ldvalue.Value
}

func (c *capturingTestBody) body(t *T, args ...ldvalue.Value) {
	c.calls = append(c.calls, args)
}

func TestWithDataRegistersOneGroupPerKeyedEntry(t *testing.T) {
	var rec groupRecorder
	var captured capturingTestBody

	WithData(&rec, Keyed(
		Entry("low", ldvalue.Int(1)),
		Entry("high", ldvalue.Int(2), ldvalue.Int(3)),
	), captured.body)

	// all groups are visible immediately after the call, with no asynchronous delay
	require.Equal(t, []string{"with low", "with high"}, rec.names())
	assert.Len(t, captured.calls, 0) // registration must not execute any bodies

	calls := runRecordedGroups(t, &rec, &captured)
	require.Len(t, calls, 2)
	assert.Equal(t, []ldvalue.Value{ldvalue.Int(1)}, calls[0])
	assert.Equal(t, []ldvalue.Value{ldvalue.Int(2), ldvalue.Int(3)}, calls[1])
}

func TestWithDataRegistersGroupsForListedDataset(t *testing.T) {
	var rec groupRecorder
	var captured capturingTestBody

	WithData(&rec, Listed(ldvalue.String("a"), ldvalue.String("b"), ldvalue.String("a")),
		captured.body)

	// duplicate stringified labels collapse to one group
	require.Equal(t, []string{"with a", "with b"}, rec.names())

	calls := runRecordedGroups(t, &rec, &captured)
	require.Len(t, calls, 2)
	assert.Equal(t, []ldvalue.Value{ldvalue.String("a")}, calls[0])
	assert.Equal(t, []ldvalue.Value{ldvalue.String("b")}, calls[1])
}

func TestWithDataPreservesDatasetOrder(t *testing.T) {
	var rec groupRecorder
	var captured capturingTestBody

	WithData(&rec, Listed(
		ldvalue.Int(320),
		ldvalue.Int(1024),
		ldvalue.Int(50),
	), captured.body)

	assert.Equal(t, []string{"with 320", "with 1024", "with 50"}, rec.names())
}

func TestWithDataRaisesInvalidDatasetErrorAndRegistersNothing(t *testing.T) {
	for _, p := range []struct {
		name    string
		dataset Dataset
	}{
		{"zero-value dataset", Dataset{}},
		{"empty sequence", Listed()},
	} {
		t.Run(p.name, func(t *testing.T) {
			var rec groupRecorder
			var captured capturingTestBody

			assert.PanicsWithError(t, mustNormalizeError(p.dataset), func() {
				WithData(&rec, p.dataset, captured.body)
			})
			assert.Len(t, rec.groups, 0)
			assert.Len(t, captured.calls, 0)
		})
	}
}

func mustNormalizeError(d Dataset) string {
	_, err := d.Normalize()
	return err.Error()
}

func TestWithDataFailsEnclosingScopeOnInvalidDataset(t *testing.T) {
	var captured capturingTestBody

	results := Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("misconfigured", func(ldt1 *T) {
			WithData(ldt1, Listed(), captured.body)
		})
	})

	assert.False(t, results.OK())
	require.Len(t, results.Failures, 1)
	assert.Equal(t, TestID{"misconfigured"}, results.Failures[0].TestID)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Equal(t, "dataset sequence must not be empty", results.Failures[0].Errors[0].Error())
	assert.Len(t, captured.calls, 0)
}

func TestWithDataRunsAsSubtestsOfCurrentScope(t *testing.T) {
	var captured capturingTestBody

	results := Run(TestConfiguration{}, func(ldt *T) {
		ldt.Run("window sizes", func(ldt1 *T) {
			WithData(ldt1, Keyed(
				Entry("small", ldvalue.Int(320), ldvalue.Int(480)),
				Entry("large", ldvalue.Int(1920), ldvalue.Int(1080)),
			), captured.body)
		})
	})

	require.True(t, results.OK())
	require.Len(t, results.Tests, 4)
	assert.Equal(t, TestID{"window sizes", "with small"}, results.Tests[0].TestID)
	assert.Equal(t, TestID{"window sizes", "with large"}, results.Tests[1].TestID)

	require.Len(t, captured.calls, 2)
	assert.Equal(t, []ldvalue.Value{ldvalue.Int(320), ldvalue.Int(480)}, captured.calls[0])
	assert.Equal(t, []ldvalue.Value{ldvalue.Int(1920), ldvalue.Int(1080)}, captured.calls[1])
}
