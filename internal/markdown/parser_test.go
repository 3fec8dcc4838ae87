package markdown

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/pkg/testsupport"
)

func TestParseFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")

	fm, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if fm.Title != "Filosofia orientală" {
		t.Fatalf("FrontMatter Title mismatch, got %q", fm.Title)
	}
	if fm.Titles["ru"] != "Восточная философия" {
		t.Fatalf("expected title_ru to be lifted, got %#v", fm.Titles)
	}
	if fm.Descriptions["en"] != "Notes on eastern philosophy" {
		t.Fatalf("expected description_en to be lifted, got %#v", fm.Descriptions)
	}
	if _, ok := fm.Custom["title_ru"]; ok {
		t.Fatalf("expected localized keys to leave Custom")
	}
	if fm.Custom["custom_flag"] != true {
		t.Fatalf("FrontMatter Custom flag missing: %#v", fm.Custom)
	}
	if fm.Category != "Blog" || len(fm.Tags) != 2 || fm.Tags[1] != "Zen" {
		t.Fatalf("unexpected category/tags %q %#v", fm.Category, fm.Tags)
	}
	if fm.Draft == nil || *fm.Draft {
		t.Fatalf("expected draft false, got %v", fm.Draft)
	}
	if !fm.Date.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", fm.Date)
	}
	if !strings.Contains(string(body), "# Filosofia orientală") {
		t.Fatalf("Markdown body not returned correctly: %q", string(body))
	}
}

func TestParseFrontMatterWithoutDraftKey(t *testing.T) {
	fm, body, err := ParseFrontMatter([]byte("---\ntitle: x\n---\nbody"))
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if fm.Draft != nil {
		t.Fatalf("expected missing draft key to stay nil")
	}
	if strings.TrimSpace(string(body)) != "body" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestBuildDocument(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")
	modified := time.Now().UTC()

	doc, err := BuildDocument("testdata/basic.md", "testdata/basic", "ro", data, modified)
	if err != nil {
		t.Fatalf("BuildDocument: %v", err)
	}
	if doc.Key != "testdata/basic" || doc.Locale != "ro" {
		t.Fatalf("unexpected key/locale %q %q", doc.Key, doc.Locale)
	}
	if !doc.LastModified.Equal(modified) {
		t.Fatalf("expected LastModified to be set")
	}
	if len(doc.BodyHTML) != 0 {
		t.Fatalf("expected BodyHTML to be empty until rendered")
	}
}

func TestGoldmarkParserEscapesHTMLByDefault(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Title\n\n<script>alert(1)</script>\n\n- [x] done\n\nhttps://example.com"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, `<h1 id="title">Title</h1>`) {
		t.Fatalf("expected heading with auto id, got %s", out)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected raw HTML to be omitted, got %s", out)
	}
	if !strings.Contains(out, `type="checkbox"`) {
		t.Fatalf("expected task list rendering, got %s", out)
	}
	if !strings.Contains(out, `<a href="https://example.com">`) {
		t.Fatalf("expected linkified URL, got %s", out)
	}

	unsafe, err := parser.ParseWithOptions([]byte("<b>bold</b>"), interfaces.ParseOptions{AllowHTML: true})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}
	if !strings.Contains(string(unsafe), "<b>bold</b>") {
		t.Fatalf("expected raw HTML when allowed, got %s", unsafe)
	}
}

func TestGoldmarkParserHardWraps(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{HardWraps: true})
	html, err := parser.Parse([]byte("line one\nline two"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(string(html), "<br>") {
		t.Fatalf("expected hard wrap, got %s", html)
	}
}

func TestCollectExtensions(t *testing.T) {
	if got := collectExtensions(nil); len(got) != 3 {
		t.Fatalf("expected default extensions, got %d", len(got))
	}
	if got := collectExtensions([]string{"Table", "tables", "unknown", " "}); len(got) != 2 {
		t.Fatalf("expected table twice by alias and nothing else, got %d", len(got))
	}
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := testsupport.LoadFixture(name)
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}
