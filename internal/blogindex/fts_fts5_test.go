//go:build sqlite_fts5

package blogindex

import "testing"

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM posts_fts`).Scan(&count); err != nil {
		t.Fatalf("posts_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithSnippet(t *testing.T) {
	db := testDB(t)
	row := testRow("fts.md", "fts-post", "2026-01-01", []string{"search"}, true)
	if err := db.UpsertPost(row, "Breakwaters absorb powerful wave energy."); err != nil {
		t.Fatalf("UpsertPost: %v", err)
	}

	results, err := db.Search("powerful", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Slug != "fts-post" {
		t.Errorf("slug = %q", results[0].Slug)
	}
	// FTS5 snippet should contain bold markers.
	if results[0].Snippet == "" {
		t.Error("expected non-empty snippet")
	}
}

func TestFTS5_SearchExcludesDrafts(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertPost(testRow("pub.md", "pub", "2026-01-01", nil, true), "seawall inspection checklist")
	_ = db.UpsertPost(testRow("wip.md", "wip", "2026-01-02", nil, false), "seawall draft notes")

	results, err := db.Search("seawall", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Slug != "pub" {
		t.Errorf("results = %+v, want published hit only", results)
	}
}

func TestFTS5_DeleteRemovesFromFTS(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertPost(testRow("gone.md", "gone", "2026-01-01", nil, true), "vanishing content")
	_ = db.DeletePost("gone.md")

	results, _ := db.Search("vanishing", 10)
	for _, r := range results {
		if r.Slug == "gone" {
			t.Error("deleted post still in FTS index")
		}
	}
}

func TestFTS5_UpsertReplacesContent(t *testing.T) {
	db := testDB(t)
	old := testRow("evo.md", "evo", "2026-01-01", nil, true)
	old.Title = "Old"
	_ = db.UpsertPost(old, "original text")
	updated := testRow("evo.md", "evo", "2026-01-01", nil, true)
	updated.Title = "New"
	_ = db.UpsertPost(updated, "replacement text")

	results, _ := db.Search("original", 10)
	if len(results) != 0 {
		t.Error("old FTS content should be gone")
	}
	results, _ = db.Search("replacement", 10)
	if len(results) != 1 || results[0].Title != "New" {
		t.Errorf("FTS not updated: %+v", results)
	}
}
