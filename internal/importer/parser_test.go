package importer

import (
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	for _, name := range []string{"a.txt", "b.md", "c.markdown", "d.csv", "e.html", "f.htm", "g.pdf", "h.DOCX"} {
		if _, err := ForFile(name, Options{}); err != nil {
			t.Errorf("ForFile(%q): %v", name, err)
		}
		if !IsSupportedExtension(name) {
			t.Errorf("IsSupportedExtension(%q) = false", name)
		}
	}
	if _, err := ForFile("notes.odt", Options{}); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestMarkdownParser(t *testing.T) {
	src := `# Общие сведения

Договор №5 от 01.02.2026.

# Требования к системе

## Функциональные требования

Регистрация заявок.
Поиск по заявкам.
`
	outline, err := (&MarkdownParser{}).Parse(strings.NewReader(src), "tor.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outline.Title != "tor" {
		t.Errorf("title = %q, want tor", outline.Title)
	}
	if len(outline.Sections) != 2 {
		t.Fatalf("expected 2 top-level sections, got %d", len(outline.Sections))
	}
	gen := outline.Sections[0]
	if gen.Title != "Общие сведения" || !strings.Contains(gen.Text, "Договор №5") {
		t.Errorf("general section = %+v", gen)
	}
	req := outline.Sections[1]
	if len(req.Children) != 1 {
		t.Fatalf("expected 1 child under requirements, got %d", len(req.Children))
	}
	fn := req.Children[0]
	if fn.Title != "Функциональные требования" || !strings.Contains(fn.Text, "Поиск по заявкам") {
		t.Errorf("functional section = %+v", fn)
	}
}

func TestTextParser_NumberedHeadings(t *testing.T) {
	src := `1 Общие сведения
Договор №5.

4 Требования к системе

4.1 Функциональные требования
Регистрация заявок.
`
	outline, err := (&TextParser{}).Parse(strings.NewReader(src), "tor.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outline.Sections) != 2 {
		t.Fatalf("expected 2 top-level sections, got %d: %+v", len(outline.Sections), outline.Sections)
	}
	if outline.Sections[0].Text != "Договор №5." {
		t.Errorf("general text = %q", outline.Sections[0].Text)
	}
	req := outline.Sections[1]
	if len(req.Children) != 1 || req.Children[0].Title != "Функциональные требования" {
		t.Fatalf("requirements children = %+v", req.Children)
	}
	if req.Children[0].Text != "Регистрация заявок." {
		t.Errorf("functional text = %q", req.Children[0].Text)
	}
}

func TestTextParser_LongNumberedLineIsBody(t *testing.T) {
	long := "1 " + strings.Repeat("а", 100)
	outline, err := (&TextParser{}).Parse(strings.NewReader(long+"\n"), "tor.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range outline.Sections {
		if strings.HasPrefix(s.Title, strings.Repeat("а", 10)) {
			t.Errorf("long numbered line became a heading: %+v", s)
		}
	}
}

func TestCSVParser(t *testing.T) {
	src := "Требование,Приоритет\nРегистрация заявок,высокий\nПоиск по заявкам,средний\n"
	outline, err := (&CSVParser{}).Parse(strings.NewReader(src), "reqs.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outline.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(outline.Sections))
	}
	sec := outline.Sections[0]
	if sec.Title != "Функциональные требования" {
		t.Errorf("title = %q", sec.Title)
	}
	lines := strings.Split(sec.Text, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 requirement items, got %d: %q", len(lines), sec.Text)
	}
	if !strings.Contains(lines[0], "Регистрация заявок") || !strings.Contains(lines[0], "высокий") {
		t.Errorf("item = %q", lines[0])
	}
}

func TestCSVParser_HeaderAfterEmptyRow(t *testing.T) {
	src := ",,\nТребование,Приоритет\nРегистрация заявок,высокий\n"
	outline, err := (&CSVParser{}).Parse(strings.NewReader(src), "reqs.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outline.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(outline.Sections))
	}
	text := outline.Sections[0].Text
	if strings.Contains(text, "Приоритет") {
		t.Errorf("header row must be skipped even after an empty row: %q", text)
	}
	if !strings.Contains(text, "Регистрация заявок") {
		t.Errorf("missing requirement item: %q", text)
	}
}

func TestCSVImport_EndToEnd(t *testing.T) {
	s := testSchema(t)
	src := "Регистрация заявок\nПоиск по заявкам\n"
	d, err := Import(s, strings.NewReader(src), "reqs.csv", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := nodeByID(t, d, "functional")
	if !fn.Present {
		t.Fatal("expected functional section to be present")
	}
	if !strings.Contains(fn.Content["items"].Text, "Поиск по заявкам") {
		t.Errorf("items = %q", fn.Content["items"].Text)
	}
}

func TestHTMLParser(t *testing.T) {
	src := `<html><head><title>АС Склад</title></head><body>
<h1>Общие сведения</h1>
<p>Договор №5.</p>
<h1>Требования к системе</h1>
<h2>Функциональные требования</h2>
<p>Регистрация заявок.</p>
</body></html>`
	outline, err := (&HTMLParser{}).Parse(strings.NewReader(src), "tor.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outline.Title != "АС Склад" {
		t.Errorf("title = %q, want АС Склад", outline.Title)
	}
	if len(outline.Sections) != 2 {
		t.Fatalf("expected 2 top-level sections, got %d", len(outline.Sections))
	}
	if !strings.Contains(outline.Sections[0].Text, "Договор №5") {
		t.Errorf("general text = %q", outline.Sections[0].Text)
	}
	req := outline.Sections[1]
	if len(req.Children) != 1 || !strings.Contains(req.Children[0].Text, "Регистрация заявок") {
		t.Errorf("requirements children = %+v", req.Children)
	}
}
