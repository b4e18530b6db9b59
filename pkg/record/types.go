// Package record defines the raw list records served by the fetch endpoint.
package record

import (
	"encoding/json"
	"fmt"
)

// Record is a single fetched item. Name is nil when the payload carried null
// or omitted the field.
type Record struct {
	ID      int     `json:"id"`
	GroupID int     `json:"listId"`
	Name    *string `json:"name"`
}

// New builds a record with a present name.
func New(id, groupID int, name string) Record {
	return Record{ID: id, GroupID: groupID, Name: &name}
}

// HasName reports whether the record carries a non-empty name.
func (r Record) HasName() bool {
	return r.Name != nil && *r.Name != ""
}

// DisplayName returns the name, or "N/A" when it is absent.
func (r Record) DisplayName() string {
	if r.Name == nil {
		return "N/A"
	}
	return *r.Name
}

func (r Record) String() string {
	return fmt.Sprintf("ID: %d ListID: %d Name: %s", r.ID, r.GroupID, r.DisplayName())
}

// UnmarshalList decodes a JSON array of records. A JSON null decodes to an
// empty list.
func UnmarshalList(data []byte) ([]Record, error) {
	if len(data) == 0 {
		return []Record{}, nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("record: decode list: %w", err)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// MarshalList serialises records in their wire format.
func MarshalList(records []Record) ([]byte, error) {
	return json.MarshalIndent(records, "", "  ")
}
