package document

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/dgallion1/torgen/internal/schema"
)

func buildSampleDocument(t *testing.T, s *schema.Schema) *Document {
	t.Helper()
	d := CreateEmpty(s)
	gen := pathTo(t, d, "general")
	if err := d.SetField(gen, "name", schema.Text("Система учёта")); err != nil {
		t.Fatal(err)
	}
	if err := d.SetField(gen, "doc_type", schema.Choice("Техническое задание")); err != nil {
		t.Fatal(err)
	}
	if err := d.SetField(gen, "deadline", schema.Date(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC))); err != nil {
		t.Fatal(err)
	}
	if err := d.SetPresent(pathTo(t, d, "nonfunctional"), true); err != nil {
		t.Fatal(err)
	}
	if _, err := d.AddChild(pathTo(t, d, "requirements"), "appendix"); err != nil {
		t.Fatal(err)
	}
	if err := d.AddReference(pathTo(t, d, "purpose"), "functional"); err != nil {
		t.Fatal(err)
	}
	return d
}

func TestSnapshot_RoundTrip(t *testing.T) {
	s := testSchema(t)
	d := buildSampleDocument(t, s)

	snap1 := d.Snapshot()
	restored, err := Restore(s, snap1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap2 := restored.Snapshot()

	if !reflect.DeepEqual(snap1, snap2) {
		t.Errorf("snapshot round-trip mismatch:\nfirst:  %+v\nsecond: %+v", snap1, snap2)
	}
}

func TestSnapshot_JSONRoundTrip(t *testing.T) {
	s := testSchema(t)
	d := buildSampleDocument(t, s)

	data, err := json.Marshal(d.Snapshot())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	restored, err := Restore(s, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(d.Snapshot(), restored.Snapshot()) {
		t.Error("JSON round-trip changed the snapshot")
	}
}

func TestRestore_RejectsBadSnapshots(t *testing.T) {
	s := testSchema(t)
	d := CreateEmpty(s)

	unknownSection := d.Snapshot()
	unknownSection.Sections[0].SectionID = "mystery"
	if _, err := Restore(s, unknownSection); err == nil {
		t.Error("expected error for unknown section id")
	}

	unknownField := d.Snapshot()
	unknownField.Sections[0].Content = map[string]schema.Value{"bogus": schema.Text("x")}
	if _, err := Restore(s, unknownField); err == nil {
		t.Error("expected error for unknown field")
	}

	badChild := d.Snapshot()
	badChild.Sections[0].Children = []NodeSnapshot{{SectionID: "purpose", Present: true}}
	if _, err := Restore(s, badChild); err == nil {
		t.Error("expected error for disallowed child")
	}

	wrongVersion := d.Snapshot()
	wrongVersion.SchemaVersion = "GOST 19.201-78"
	if _, err := Restore(s, wrongVersion); err == nil {
		t.Error("expected error for schema version mismatch")
	}
}

func TestRestore_ToleratesAbsentMandatory(t *testing.T) {
	// A snapshot with an absent mandatory section restores fine; the
	// validator is the one to report it.
	s := testSchema(t)
	d := CreateEmpty(s)
	snap := d.Snapshot()
	snap.Sections[1].Present = false // purpose

	restored, err := Restore(s, snap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.Sections[1].Present {
		t.Error("expected restored purpose to stay absent")
	}
}
