package btest

import (
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Dataset is the input to WithData: either a plain sequence of values (Listed) or a set
// of labeled argument lists (Keyed). The zero value is neither of those and is rejected
// by Normalize and WithData.
type Dataset struct {
	kind    datasetKind
	entries []DatasetEntry  // only for datasetKeyed
	values  []ldvalue.Value // only for datasetListed
}

type datasetKind int

const (
	datasetUndefined datasetKind = iota
	datasetKeyed
	datasetListed
)

// DatasetEntry is one labeled entry of a Keyed or normalized dataset. Args is always a
// sequence, even when the entry was built from a single value, so call sites can
// uniformly spread it as positional arguments.
type DatasetEntry struct {
	Name string
	Args []ldvalue.Value
}

// Entry constructs a DatasetEntry with an explicit argument list.
func Entry(name string, args ...ldvalue.Value) DatasetEntry {
	return DatasetEntry{Name: name, Args: args}
}

// EntryValue constructs a DatasetEntry from a single value, applying the standard
// spreading rule: an array value is used as the argument list, and any other value
// becomes a one-element argument list.
func EntryValue(name string, value ldvalue.Value) DatasetEntry {
	return DatasetEntry{Name: name, Args: spreadArgs(value)}
}

// Keyed constructs a Dataset of labeled entries. An empty Keyed dataset is valid and
// simply produces no test groups.
func Keyed(entries ...DatasetEntry) Dataset {
	return Dataset{kind: datasetKeyed, entries: entries}
}

// Listed constructs a Dataset from a plain sequence of values. Each value's group label
// is derived from its string representation; see Normalize for the collision rule.
// A Listed dataset must be non-empty.
func Listed(values ...ldvalue.Value) Dataset {
	return Dataset{kind: datasetListed, values: values}
}

// NamedDataset is the canonical normalized form of a Dataset: an ordered list of
// labeled argument sequences. Downstream logic only ever sees this form.
type NamedDataset struct {
	entries []DatasetEntry
}

// Entries returns the entries in registration order.
func (n NamedDataset) Entries() []DatasetEntry {
	return append([]DatasetEntry(nil), n.entries...)
}

// Count returns the number of entries.
func (n NamedDataset) Count() int {
	return len(n.entries)
}

// InvalidDatasetError is returned by Normalize, and raised by WithData, when a dataset
// is missing or empty.
type InvalidDatasetError struct {
	Message string
}

func (e InvalidDatasetError) Error() string { return e.Message }

// Normalize resolves a Dataset to its canonical NamedDataset form.
//
// A Keyed dataset is used as-is. A Listed dataset has each value's label derived from
// its string representation: the value itself for strings, the JSON representation for
// anything else. Duplicate labels collapse to a single entry, keeping the first
// occurrence's position and the last occurrence's arguments.
func (d Dataset) Normalize() (NamedDataset, error) {
	switch d.kind {
	case datasetKeyed:
		return NamedDataset{entries: collapseDuplicateLabels(d.entries)}, nil
	case datasetListed:
		if len(d.values) == 0 {
			return NamedDataset{}, InvalidDatasetError{Message: "dataset sequence must not be empty"}
		}
		entries := make([]DatasetEntry, 0, len(d.values))
		for _, v := range d.values {
			entries = append(entries, EntryValue(labelForValue(v), v))
		}
		return NamedDataset{entries: collapseDuplicateLabels(entries)}, nil
	default:
		return NamedDataset{}, InvalidDatasetError{Message: "dataset must be either a sequence of values or a set of labeled entries"}
	}
}

func collapseDuplicateLabels(entries []DatasetEntry) []DatasetEntry {
	ret := make([]DatasetEntry, 0, len(entries))
	indexByName := make(map[string]int, len(entries))
	for _, e := range entries {
		if i, seen := indexByName[e.Name]; seen {
			ret[i] = e
			continue
		}
		indexByName[e.Name] = len(ret)
		ret = append(ret, e)
	}
	return ret
}

// labelForValue derives a group label from a value's default string conversion.
func labelForValue(v ldvalue.Value) string {
	if v.Type() == ldvalue.StringType {
		return v.StringValue()
	}
	return v.JSONString()
}

func spreadArgs(v ldvalue.Value) []ldvalue.Value {
	if v.Type() == ldvalue.ArrayType {
		args := make([]ldvalue.Value, 0, v.Count())
		for i := 0; i < v.Count(); i++ {
			args = append(args, v.GetByIndex(i))
		}
		return args
	}
	return []ldvalue.Value{v}
}
