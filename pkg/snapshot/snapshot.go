// Package snapshot defines the persisted form of a dashboard layout.
//
// A snapshot is a versioned JSON (or BSON) document:
//
//	{
//	  "version": 1,
//	  "cols": 6,
//	  "policy": "push",
//	  "items": [{"id": "w1", "type": "cash-flow", "x": 0, "y": 0, "w": 2, "h": 2}]
//	}
//
// The unversioned form kept in browser local storage, a bare array of items,
// is read as version 0 and migrated to the current version.
package snapshot

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
)

// CurrentVersion is the version written by [Marshal].
const CurrentVersion = 1

// =============================================================================
// Document - Persisted Layout
// =============================================================================

// Document is a serialized layout.
type Document struct {
	Version   int       `json:"version" bson:"version"`
	Cols      int       `json:"cols" bson:"cols"`
	Policy    string    `json:"policy,omitempty" bson:"policy,omitempty"`
	Items     []Record  `json:"items" bson:"items"`
	UpdatedAt time.Time `json:"updated_at,omitzero" bson:"updated_at,omitempty"`
}

// Record is one placed widget. The field names match the browser
// dashboard's local-storage entries.
type Record struct {
	ID   string `json:"id" bson:"id"`
	Type string `json:"type" bson:"type"`
	X    int    `json:"x" bson:"x"`
	Y    int    `json:"y" bson:"y"`
	W    int    `json:"w" bson:"w"`
	H    int    `json:"h" bson:"h"`
}

// FromItems builds a current-version document from engine items.
func FromItems(cols int, policy string, items []grid.Item) Document {
	recs := make([]Record, len(items))
	for i, it := range items {
		recs[i] = Record{ID: it.ID, Type: it.Kind, X: it.X, Y: it.Y, W: it.W, H: it.H}
	}
	return Document{Version: CurrentVersion, Cols: cols, Policy: policy, Items: recs}
}

// GridItems converts the records back to engine items.
func (d Document) GridItems() []grid.Item {
	items := make([]grid.Item, len(d.Items))
	for i, r := range d.Items {
		items[i] = grid.Item{ID: r.ID, Kind: r.Type, X: r.X, Y: r.Y, W: r.W, H: r.H}
	}
	return items
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal serializes d to pretty-printed JSON. A zero version is written as
// [CurrentVersion] and a nil item list as an empty array.
func Marshal(d Document) ([]byte, error) {
	if d.Version == 0 {
		d.Version = CurrentVersion
	}
	if d.Items == nil {
		d.Items = []Record{}
	}
	return json.MarshalIndent(d, "", "  ")
}

// Unmarshal parses a document, migrating older versions to
// [CurrentVersion]. Documents from a newer version are rejected.
func Unmarshal(data []byte) (Document, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return Document{}, errors.New(errors.ErrCodeInvalidSnapshot, "empty snapshot")
	}

	if data[0] == '[' {
		var recs []Record
		if err := json.Unmarshal(data, &recs); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode version 0 snapshot")
		}
		return migrateV0(recs), nil
	}

	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "decode snapshot")
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	if d.Items == nil {
		d.Items = []Record{}
	}
	return d, nil
}

// Validate checks the document's version and structural fields. Placement
// rules (overlaps, kind limits) are checked by the engine on restore.
func (d Document) Validate() error {
	switch {
	case d.Version < 1:
		return errors.New(errors.ErrCodeInvalidSnapshot, "missing or invalid snapshot version %d", d.Version)
	case d.Version > CurrentVersion:
		return errors.New(errors.ErrCodeUnsupported,
			"snapshot version %d is newer than supported version %d", d.Version, CurrentVersion)
	case d.Cols < 0:
		return errors.New(errors.ErrCodeInvalidSnapshot, "negative column count %d", d.Cols)
	}
	if d.Policy != "" {
		if _, err := grid.ParsePolicy(d.Policy); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidSnapshot, err, "snapshot policy")
		}
	}
	for i, r := range d.Items {
		if r.ID == "" {
			return errors.New(errors.ErrCodeInvalidSnapshot, "item %d has no id", i)
		}
		if r.Type == "" {
			return errors.New(errors.ErrCodeInvalidSnapshot, "item %s has no type", r.ID)
		}
	}
	return nil
}

// migrateV0 upgrades a bare item array. Version 0 does not record the
// column count, so Cols is left zero for the caller to fill in.
func migrateV0(recs []Record) Document {
	if recs == nil {
		recs = []Record{}
	}
	return Document{Version: CurrentVersion, Items: recs}
}

// =============================================================================
// Files
// =============================================================================

// WriteFile writes d to a JSON file.
func WriteFile(d Document, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	data, err := Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a document from a JSON file.
func ReadFile(path string) (Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Document{}, errors.Wrap(errors.ErrCodeNotFound, err, "read %s", path)
	}
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeStorage, err, "read %s", path)
	}
	return Unmarshal(data)
}
