package blogindex

import (
	"errors"
	"os"
	"testing"

	"github.com/giralt/sitecms/internal/apperr"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "sitecms-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testRow(path, slug, date string, tags []string, published bool) PostRow {
	return PostRow{
		Path:      path,
		Slug:      slug,
		Title:     "Title " + slug,
		Date:      date,
		Tags:      tags,
		Published: published,
		Checksum:  "cs-" + path,
	}
}

func TestUpsertAndPathBySlug(t *testing.T) {
	db := testDB(t)

	row := testRow("2026/pier-guide.mdx", "pier-guide", "2026-01-10", []string{"marine"}, true)
	if err := db.UpsertPost(row, "body text"); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	path, err := db.PathBySlug("pier-guide")
	if err != nil {
		t.Fatalf("path by slug: %v", err)
	}
	if path != "2026/pier-guide.mdx" {
		t.Errorf("path = %q", path)
	}

	if _, err := db.PathBySlug("nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing slug err = %v, want ErrNotFound", err)
	}
}

func TestUpsertReplacesByPath(t *testing.T) {
	db := testDB(t)

	if err := db.UpsertPost(testRow("a.md", "a", "2026-01-01", nil, true), "v1"); err != nil {
		t.Fatal(err)
	}
	updated := testRow("a.md", "a", "2026-01-02", []string{"roads"}, true)
	updated.Title = "New Title"
	if err := db.UpsertPost(updated, "v2"); err != nil {
		t.Fatal(err)
	}

	rows, err := db.ListPosts("", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want upsert not insert", len(rows))
	}
	if rows[0].Title != "New Title" || rows[0].Date != "2026-01-02" {
		t.Errorf("row = %+v", rows[0])
	}
}

func TestUpsertSlugMovedBetweenPaths(t *testing.T) {
	db := testDB(t)

	if err := db.UpsertPost(testRow("old/a.md", "a", "2026-01-01", nil, true), "x"); err != nil {
		t.Fatal(err)
	}
	// Same slug reappears under a new path (file moved).
	if err := db.UpsertPost(testRow("new/a.md", "a", "2026-01-01", nil, true), "x"); err != nil {
		t.Fatalf("upsert moved slug: %v", err)
	}

	path, err := db.PathBySlug("a")
	if err != nil {
		t.Fatal(err)
	}
	if path != "new/a.md" {
		t.Errorf("path = %q, want new/a.md", path)
	}
}

func TestDeletePost(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertPost(testRow("a.md", "a", "2026-01-01", nil, true), "x"); err != nil {
		t.Fatal(err)
	}
	if err := db.DeletePost("a.md"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := db.PathBySlug("a"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound after delete", err)
	}
}

func TestListPostsOrderAndDraftFilter(t *testing.T) {
	db := testDB(t)
	for _, r := range []PostRow{
		testRow("a.md", "a", "2026-01-01", nil, true),
		testRow("b.md", "b", "2026-03-01", nil, true),
		testRow("c.md", "c", "2026-02-01", nil, false),
	} {
		if err := db.UpsertPost(r, "body"); err != nil {
			t.Fatal(err)
		}
	}

	rows, err := db.ListPosts("", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("published rows = %d, want drafts excluded", len(rows))
	}
	if rows[0].Slug != "b" || rows[1].Slug != "a" {
		t.Errorf("order = %q, %q, want date descending", rows[0].Slug, rows[1].Slug)
	}

	all, err := db.ListPosts("", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("all rows = %d, want drafts included", len(all))
	}
}

func TestListPostsTagFilter(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertPost(testRow("a.md", "a", "2026-01-01", []string{"marine", "design"}, true), "x"); err != nil {
		t.Fatal(err)
	}
	if err := db.UpsertPost(testRow("b.md", "b", "2026-01-02", []string{"roads"}, true), "x"); err != nil {
		t.Fatal(err)
	}

	rows, err := db.ListPosts("marine", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Slug != "a" {
		t.Errorf("rows = %+v", rows)
	}
	if rows[0].Tags[0] != "marine" {
		t.Errorf("tags not round-tripped: %+v", rows[0].Tags)
	}
}

func TestTagsDistinctPublishedOnly(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertPost(testRow("a.md", "a", "2026-01-01", []string{"marine", "design"}, true), "x"); err != nil {
		t.Fatal(err)
	}
	if err := db.UpsertPost(testRow("b.md", "b", "2026-01-02", []string{"marine"}, true), "x"); err != nil {
		t.Fatal(err)
	}
	if err := db.UpsertPost(testRow("c.md", "c", "2026-01-03", []string{"draft-only"}, false), "x"); err != nil {
		t.Fatal(err)
	}

	tags, err := db.Tags()
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]bool)
	for _, tag := range tags {
		if seen[tag] {
			t.Errorf("duplicate tag %q", tag)
		}
		seen[tag] = true
	}
	if !seen["marine"] || !seen["design"] {
		t.Errorf("tags = %v", tags)
	}
	if seen["draft-only"] {
		t.Error("draft tags must not be listed")
	}
}

func TestAllChecksums(t *testing.T) {
	db := testDB(t)
	if err := db.UpsertPost(testRow("a.md", "a", "2026-01-01", nil, true), "x"); err != nil {
		t.Fatal(err)
	}
	cs, err := db.AllChecksums()
	if err != nil {
		t.Fatal(err)
	}
	if cs["a.md"] != "cs-a.md" {
		t.Errorf("checksums = %v", cs)
	}
}

func TestSearch(t *testing.T) {
	db := testDB(t)
	row := testRow("a.md", "dredging-guide", "2026-01-01", []string{"marine"}, true)
	row.Title = "Harbour Dredging Guide"
	if err := db.UpsertPost(row, "Dredging schedules depend on tidal windows."); err != nil {
		t.Fatal(err)
	}
	draft := testRow("b.md", "draft", "2026-01-02", nil, false)
	if err := db.UpsertPost(draft, "dredging appears here too"); err != nil {
		t.Fatal(err)
	}

	results, err := db.Search("dredging", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("results = %+v, want published hit only", results)
	}
	if results[0].Slug != "dredging-guide" {
		t.Errorf("slug = %q", results[0].Slug)
	}
	if results[0].Snippet == "" {
		t.Error("empty snippet")
	}
}
