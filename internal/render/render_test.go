package render

import (
	"bytes"
	"errors"
	"strings"
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
	d := document.CreateEmpty(s)
	document.Prefill(d)
	return d
}

func pathTo(t *testing.T, d *document.Document, id string) document.Path {
	t.Helper()
	var found document.Path
	d.Walk(func(p document.Path, n *document.Node) {
		if found == nil && n.SectionID == id {
			found = p
		}
	})
	if found == nil {
		t.Fatalf("no node with section id %q", id)
	}
	return found
}

func TestRender_RefusesInvalidDocument(t *testing.T) {
	d := testDocument(t)
	if err := d.AddReference(pathTo(t, d, "purpose"), "sources"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := Render(d, TextBackend{})
	if !errors.Is(err, ErrUnrenderable) {
		t.Fatalf("expected ErrUnrenderable, got %v", err)
	}
}

func TestRender_Text(t *testing.T) {
	d := testDocument(t)
	gen := pathTo(t, d, "general")
	if err := d.SetField(gen, "name", schema.Text("Система учёта заявок")); err != nil {
		t.Fatal(err)
	}
	if err := d.SetField(pathTo(t, d, "functional"), "items",
		schema.Text("Регистрация заявок\nПоиск по заявкам")); err != nil {
		t.Fatal(err)
	}
	if err := d.AddReference(pathTo(t, d, "acceptance"), "functional"); err != nil {
		t.Fatal(err)
	}

	out, err := Render(d, TextBackend{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(out)

	for _, want := range []string{
		"ТЕХНИЧЕСКОЕ ЗАДАНИЕ",
		"Система учёта заявок",
		"1. ОБЩИЕ СВЕДЕНИЯ",
		"4.1. Функциональные требования",
		"- Регистрация заявок",
		"- Поиск по заявкам",
		"(см. раздел 4.1)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}

	// Empty required single-line fields render as a placeholder.
	if !strings.Contains(text, "Не указано") {
		t.Error("expected placeholder for empty required field")
	}
}

func TestStream_SkipsAbsentAndOptionalEmpty(t *testing.T) {
	d := testDocument(t)

	out, err := Render(d, TextBackend{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(out)
	if strings.Contains(text, "Нефункциональные требования") {
		t.Error("absent optional section must not be rendered")
	}
	// "overview" on requirements is optional and empty; the prefilled
	// mandatory multiline fields have defaults, so no multiline placeholder
	// shows up in a prefilled document.
	if strings.Contains(text, "Не указаны") {
		t.Errorf("unexpected multiline placeholder:\n%s", text)
	}
}

func TestStream_AppendixHeadingOverridesTitle(t *testing.T) {
	d := testDocument(t)
	p, err := d.AddChild(pathTo(t, d, "requirements"), "appendix")
	if err != nil {
		t.Fatal(err)
	}
	if err := d.SetField(p, "heading", schema.Text("Глоссарий")); err != nil {
		t.Fatal(err)
	}

	out, err := Render(d, TextBackend{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "Глоссарий") {
		t.Errorf("expected appendix heading in output:\n%s", out)
	}
}

func TestRender_Markdown(t *testing.T) {
	d := testDocument(t)
	if err := d.SetField(pathTo(t, d, "functional"), "items",
		schema.Text("Первое требование")); err != nil {
		t.Fatal(err)
	}

	out, err := Render(d, MarkdownBackend{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	md := string(out)
	if !strings.Contains(md, "## 1. Общие сведения") {
		t.Errorf("expected depth-1 heading, got:\n%s", md)
	}
	if !strings.Contains(md, "### 4.1. Функциональные требования") {
		t.Errorf("expected depth-2 heading, got:\n%s", md)
	}
	if !strings.Contains(md, "- Первое требование") {
		t.Errorf("expected bullet item, got:\n%s", md)
	}
}

func TestRender_HTML(t *testing.T) {
	d := testDocument(t)

	out, err := Render(d, HTMLBackend{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<html") || !strings.Contains(html, "charset=") {
		t.Error("expected a full HTML document")
	}
	if !strings.Contains(html, "Общие сведения</h2>") {
		t.Errorf("expected converted markdown headings, got:\n%s", html)
	}
}

func TestRender_HTMLEscapesTitle(t *testing.T) {
	d := testDocument(t)
	if err := d.SetField(pathTo(t, d, "general"), "name",
		schema.Text(`ТЗ <script>alert("x")</script>`)); err != nil {
		t.Fatal(err)
	}

	out, err := Render(d, HTMLBackend{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := string(out)
	if strings.Contains(html, "<script>") {
		t.Errorf("title markup must be escaped:\n%s", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("expected escaped title, got:\n%s", html)
	}
}

func TestRender_DOCXProducesArchive(t *testing.T) {
	d := testDocument(t)

	out, err := Render(d, DOCXBackend{Now: func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A DOCX file is a ZIP container.
	if !bytes.HasPrefix(out, []byte("PK")) {
		t.Errorf("expected ZIP magic, got % x", out[:min(4, len(out))])
	}
}

func TestTitle(t *testing.T) {
	d := testDocument(t)
	if got := Title(d); got != "Техническое задание" {
		t.Errorf("default title = %q", got)
	}
	if err := d.SetField(pathTo(t, d, "general"), "name", schema.Text("АС Склад")); err != nil {
		t.Fatal(err)
	}
	if got := Title(d); got != "АС Склад" {
		t.Errorf("title = %q, want АС Склад", got)
	}
}

func TestOutputFilename(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	tests := []struct {
		title  string
		format string
		want   string
	}{
		{"АС Склад", "docx", "АС Склад_20260315_103000.docx"},
		{"a/b\\c:d", "text", "abcd_20260315_103000.txt"},
		{"///", "md", "document_20260315_103000.md"},
	}
	for _, tc := range tests {
		if got := OutputFilename(tc.title, tc.format, now); got != tc.want {
			t.Errorf("OutputFilename(%q, %q) = %q, want %q", tc.title, tc.format, got, tc.want)
		}
	}
}

func TestForFormat(t *testing.T) {
	for _, name := range []string{"text", "txt", "markdown", "md", "html", "docx", "DOCX"} {
		if _, err := ForFormat(name); err != nil {
			t.Errorf("ForFormat(%q): %v", name, err)
		}
	}
	if _, err := ForFormat("odt"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestLines(t *testing.T) {
	got := Lines(" a \n\n b\n")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Lines() = %v", got)
	}
}
