package dex

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// Meta describes one build of the dataset.
type Meta struct {
	BuildTimestamp time.Time `json:"buildTimestamp"`
	RecordCount    int       `json:"recordCount,omitempty"`
}

// Dataset is the load-time artifact: one record per identity plus build
// metadata. It is written once by the builder and read-only afterwards.
type Dataset struct {
	Records map[string]*Record
	Meta    Meta
}

// NewDataset returns an empty dataset ready for ingestion.
func NewDataset() *Dataset {
	return &Dataset{Records: make(map[string]*Record)}
}

// Get looks a record up by identity.
func (d *Dataset) Get(identity string) (*Record, bool) {
	r, ok := d.Records[identity]
	return r, ok
}

// GetOrCreate returns the record for an identity, creating a minimal one
// with the given display name when absent.
func (d *Dataset) GetOrCreate(identity, displayName string) *Record {
	if r, ok := d.Records[identity]; ok {
		return r
	}
	r := &Record{
		Identity:    identity,
		DisplayName: displayName,
		Source:      SourceUnknown,
	}
	d.Records[identity] = r
	return r
}

// All returns every record ordered by dex number, then identity, so callers
// get a deterministic iteration order over the map.
func (d *Dataset) All() []*Record {
	out := make([]*Record, 0, len(d.Records))
	for _, r := range d.Records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DexNumber != out[j].DexNumber {
			return out[i].DexNumber < out[j].DexNumber
		}
		return out[i].Identity < out[j].Identity
	})
	return out
}

// The on-disk document is a single object mapping identity to record, with
// one reserved "_meta" key for build metadata.
const metaKey = "_meta"

// MarshalJSON implements json.Marshaler.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(d.Records)+1)
	for id, r := range d.Records {
		doc[id] = r
	}
	doc[metaKey] = d.Meta
	return json.Marshal(doc)
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	d.Records = make(map[string]*Record, len(doc))
	for key, raw := range doc {
		if key == metaKey {
			if err := json.Unmarshal(raw, &d.Meta); err != nil {
				return fmt.Errorf("bad dataset meta: %w", err)
			}
			continue
		}
		var r Record
		if err := json.Unmarshal(raw, &r); err != nil {
			return fmt.Errorf("bad record %q: %w", key, err)
		}
		d.Records[key] = &r
	}
	return nil
}

// Save writes the dataset document to path.
func (d *Dataset) Save(path string) error {
	d.Meta.BuildTimestamp = time.Now().UTC()
	d.Meta.RecordCount = len(d.Records)
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a dataset document from path.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	return &d, nil
}
