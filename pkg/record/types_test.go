package record

import "testing"

func TestUnmarshalListHandlesNullNames(t *testing.T) {
	data := []byte(`[
		{"id": 684, "listId": 1, "name": "Item 684"},
		{"id": 276, "listId": 1, "name": null},
		{"id": 808, "listId": 4},
		{"id": 680, "listId": 3, "name": ""}
	]`)
	records, err := UnmarshalList(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if !records[0].HasName() || records[0].DisplayName() != "Item 684" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if records[1].Name != nil || records[1].HasName() {
		t.Fatalf("expected null name to decode as nil")
	}
	if records[2].Name != nil {
		t.Fatalf("expected missing name to decode as nil")
	}
	if records[3].Name == nil || records[3].HasName() {
		t.Fatalf("expected empty name to be present but unnamed")
	}
	if records[1].DisplayName() != "N/A" {
		t.Fatalf("unexpected display name %q", records[1].DisplayName())
	}
}

func TestUnmarshalListEmptyInputs(t *testing.T) {
	for _, in := range []string{"", "null", "[]"} {
		records, err := UnmarshalList([]byte(in))
		if err != nil {
			t.Fatalf("%q: unexpected error %v", in, err)
		}
		if records == nil || len(records) != 0 {
			t.Fatalf("%q: expected empty non-nil list, got %#v", in, records)
		}
	}
}

func TestUnmarshalListRejectsMalformedPayload(t *testing.T) {
	if _, err := UnmarshalList([]byte(`{"id": 1}`)); err == nil {
		t.Fatal("expected an error for a non-array payload")
	}
}
