package data

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Trieg/browser-test-harness/framework/btest"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// ToDataset converts the file contents into a btest.Dataset. A top-level JSON/YAML array
// becomes a Listed dataset; a top-level object becomes a Keyed dataset, with each entry's
// value subject to the standard spreading rule (an array value is the argument list, any
// other value is a single argument).
//
// Object keys are sorted so that a file always produces the same test group order;
// parsed JSON objects do not preserve their textual key order.
func (s SourceInfo) ToDataset() (btest.Dataset, error) {
	var raw json.RawMessage
	if err := ParseJSONOrYAML(s.Data, &raw); err != nil {
		return btest.Dataset{}, fmt.Errorf("error parsing %q: %w", s.BaseName, err)
	}
	value := ldvalue.Parse(raw)
	switch value.Type() {
	case ldvalue.ArrayType:
		values := make([]ldvalue.Value, 0, value.Count())
		for i := 0; i < value.Count(); i++ {
			values = append(values, value.GetByIndex(i))
		}
		return btest.Listed(values...), nil
	case ldvalue.ObjectType:
		keys := value.Keys(nil)
		sort.Strings(keys)
		entries := make([]btest.DatasetEntry, 0, len(keys))
		for _, k := range keys {
			entries = append(entries, btest.EntryValue(k, value.GetByKey(k)))
		}
		return btest.Keyed(entries...), nil
	default:
		return btest.Dataset{}, fmt.Errorf(
			"dataset file %q must contain a top-level array or object", s.BaseName)
	}
}
