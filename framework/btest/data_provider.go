package btest

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// TestBody is a caller-supplied test implementation for WithData. It is invoked once per
// dataset entry, receiving that entry's arguments spread positionally.
type TestBody func(t *T, args ...ldvalue.Value)

// GroupRecorder is the group-declaration capability that WithData registers into. *T
// satisfies it, so tests normally just pass their current scope; unit tests can
// substitute a recorder that captures registrations without executing them.
type GroupRecorder interface {
	Run(name string, action func(*T))
}

// GroupLabelPrefix is prepended to each dataset entry's label to form its group name.
const GroupLabelPrefix = "with "

// WithData registers one labeled test group per entry of the dataset, each of which
// invokes testBody with that entry's arguments. Groups are registered synchronously, in
// one pass, in the dataset's entry order — never deferred to a later hook, since the
// framework expects all group registrations to complete during the definition phase.
//
// An invalid dataset (zero value, or an empty sequence) raises an InvalidDatasetError
// by panicking before anything has been registered. Inside a test scope the panic is
// caught by the framework and fails that scope immediately; there are no
// partial-failure semantics.
func WithData(g GroupRecorder, dataset Dataset, testBody TestBody) {
	named, err := dataset.Normalize()
	if err != nil {
		panic(err)
	}
	// Each iteration registers a closure over its own entry. (The shadowing below keeps
	// the entries from aliasing on toolchains older than Go 1.22.)
	for _, entry := range named.Entries() {
		entry := entry
		g.Run(GroupLabelPrefix+entry.Name, func(t *T) {
			testBody(t, entry.Args...)
		})
	}
}
