package session

import (
	"sync"
	"testing"
	"time"

	"github.com/dgallion1/torgen/internal/document"
	"github.com/dgallion1/torgen/internal/schema"
)

func testDocument(t *testing.T) *document.Document {
	t.Helper()
	s, err := schema.Load()
	if err != nil {
		t.Fatalf("load schema: %v", err)
	}
	return document.CreateEmpty(s)
}

func TestRegistry_OpenGetClose(t *testing.T) {
	r := NewRegistry(time.Hour)

	sess := r.Open(testDocument(t), "proj-1")
	if sess.ID == "" {
		t.Fatal("expected generated session id")
	}
	if sess.Project() != "proj-1" {
		t.Errorf("project id = %q", sess.Project())
	}
	if got := r.Get(sess.ID); got != sess {
		t.Error("Get did not return the opened session")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}

	r.Close(sess.ID)
	if r.Get(sess.ID) != nil {
		t.Error("expected session to be gone after Close")
	}
}

func TestSession_DoBumpsIdleClock(t *testing.T) {
	r := NewRegistry(time.Hour)
	sess := r.Open(testDocument(t), "")

	before := sess.idleSince()
	time.Sleep(5 * time.Millisecond)
	err := sess.Do(func(d *document.Document) error {
		return d.SetField(document.Path{1}, "text", schema.Text("цель"))
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.idleSince().After(before) {
		t.Error("Do must bump the idle clock")
	}

	after := sess.idleSince()
	if err := sess.View(func(*document.Document) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sess.idleSince().Equal(after) {
		t.Error("View must not bump the idle clock")
	}
}

func TestSession_SetProject(t *testing.T) {
	r := NewRegistry(time.Hour)
	sess := r.Open(testDocument(t), "")

	if sess.Project() != "" {
		t.Errorf("project id = %q, want empty", sess.Project())
	}
	sess.SetProject("proj-7")
	if sess.Project() != "proj-7" {
		t.Errorf("project id = %q, want proj-7", sess.Project())
	}
}

func TestRegistry_CleanupEvictsIdleSessions(t *testing.T) {
	r := NewRegistry(10 * time.Millisecond)
	idle := r.Open(testDocument(t), "")
	fresh := r.Open(testDocument(t), "")

	idle.updatedAt = time.Now().Add(-time.Minute)
	r.Cleanup()

	if r.Get(idle.ID) != nil {
		t.Error("expected idle session to be evicted")
	}
	if r.Get(fresh.ID) == nil {
		t.Error("expected fresh session to survive")
	}
}

// Cleanup runs on a ticker while handlers edit; the race detector must see
// properly guarded state, and an actively edited session must never be
// evicted.
func TestRegistry_CleanupConcurrentWithEdits(t *testing.T) {
	r := NewRegistry(time.Hour)
	sess := r.Open(testDocument(t), "")

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			sess.Do(func(d *document.Document) error {
				return d.SetField(document.Path{1}, "text", schema.Text("цель"))
			})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			r.Cleanup()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			sess.SetProject("proj")
			_ = sess.Project()
		}
	}()
	wg.Wait()

	if r.Get(sess.ID) == nil {
		t.Error("actively edited session must not be evicted")
	}
}
