package mcpserver

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	blogpkg "github.com/giralt/sitecms/internal/blog"
	"github.com/giralt/sitecms/internal/galleryservice"
	"github.com/giralt/sitecms/internal/models"
	"github.com/giralt/sitecms/internal/storage"
	"github.com/giralt/sitecms/internal/testutil"
)

func testServer(t *testing.T) (*Server, storage.Provider) {
	t.Helper()

	store, _ := testutil.TestGalleryStore(t)
	if err := store.Save(&models.GalleryDocument{
		Categories: []models.Category{{ID: "marine", Label: "Marine & Coastal"}},
	}); err != nil {
		t.Fatal(err)
	}
	gallery := galleryservice.New(store, &testutil.FakeCommitter{})

	_, content := testutil.TestContentDir(t)
	db := testutil.TestDB(t)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	if err := content.Write("pier-guide.md", []byte("---\ntitle: Pier Guide\ndate: 2026-02-01\ntags: [marine]\n---\n\nPier construction basics.\n")); err != nil {
		t.Fatal(err)
	}
	if err := blogpkg.Sync(db, content, logger); err != nil {
		t.Fatal(err)
	}

	srv := New(gallery, blogpkg.NewService(content, db))
	return srv, content
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct call-tool test helper, so the handler functions
	// are exercised directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_posts":
		result, err = srv.searchPosts(ctx, req)
	case "read_post":
		result, err = srv.readPost(ctx, req)
	case "list_posts":
		result, err = srv.listPosts(ctx, req)
	case "list_gallery_images":
		result, err = srv.listGalleryImages(ctx, req)
	case "list_categories":
		result, err = srv.listCategories(ctx, req)
	case "add_gallery_image":
		result, err = srv.addGalleryImage(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestReadPost(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "read_post", map[string]interface{}{"slug": "pier-guide"})
	text := resultText(r)
	if !strings.Contains(text, "Pier Guide") {
		t.Errorf("read result = %q", text)
	}
}

func TestReadPostMissing(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "read_post", map[string]interface{}{"slug": "nope"})
	if !r.IsError {
		t.Error("expected error for missing post")
	}
}

func TestListPosts(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "list_posts", map[string]interface{}{})
	if !strings.Contains(resultText(r), "pier-guide") {
		t.Errorf("list result = %q", resultText(r))
	}

	r = callTool(t, srv, "list_posts", map[string]interface{}{"tag": "roads"})
	if strings.Contains(resultText(r), "pier-guide") {
		t.Error("tag filter not applied")
	}
}

func TestSearchPosts(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "search_posts", map[string]interface{}{"query": "construction"})
	if !strings.Contains(resultText(r), "pier-guide") {
		t.Errorf("search result = %q", resultText(r))
	}
}

func TestListCategories(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "list_categories", map[string]interface{}{})
	if !strings.Contains(resultText(r), "marine") {
		t.Errorf("categories = %q", resultText(r))
	}
}

func TestAddGalleryImage(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "add_gallery_image", map[string]interface{}{
		"category": "marine",
		"title":    "Breakwater",
		"image":    "/images/uploads/breakwater.jpg",
	})
	if r.IsError {
		t.Fatalf("add failed: %q", resultText(r))
	}
	if !strings.Contains(resultText(r), "created: marine-breakwater") {
		t.Errorf("add result = %q", resultText(r))
	}

	list := callTool(t, srv, "list_gallery_images", map[string]interface{}{"category": "marine"})
	if !strings.Contains(resultText(list), "Breakwater") {
		t.Errorf("list result = %q", resultText(list))
	}
}

func TestAddGalleryImageUnknownCategory(t *testing.T) {
	srv, _ := testServer(t)
	r := callTool(t, srv, "add_gallery_image", map[string]interface{}{
		"category": "bridges",
		"title":    "Span",
		"image":    "/s.jpg",
	})
	if !r.IsError {
		t.Error("expected error for unknown category")
	}
}
