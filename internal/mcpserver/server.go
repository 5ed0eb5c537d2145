// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the site's blog and gallery content as tools for LLM integration
// via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/giralt/sitecms/internal/blog"
	"github.com/giralt/sitecms/internal/galleryservice"
)

// Server wraps the MCP server with the site content tools.
type Server struct {
	mcp     *server.MCPServer
	gallery *galleryservice.Service
	blog    *blog.Service
}

// New creates a new MCP server with all tools registered.
func New(gallery *galleryservice.Service, blogSvc *blog.Service) *Server {
	s := &Server{gallery: gallery, blog: blogSvc}

	s.mcp = server.NewMCPServer(
		"SiteCMS",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_posts",
		mcp.WithDescription("Full-text search through blog post content and titles."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchPosts)

	s.mcp.AddTool(mcp.NewTool("read_post",
		mcp.WithDescription("Read the full content of a blog post by slug."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Post slug (filename without extension)")),
	), s.readPost)

	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List published blog posts, optionally filtered by tag."),
		mcp.WithString("tag", mcp.Description("Optional tag to filter by (empty for all)")),
	), s.listPosts)

	s.mcp.AddTool(mcp.NewTool("list_gallery_images",
		mcp.WithDescription("List project gallery images, optionally filtered by category."),
		mcp.WithString("category", mcp.Description("Optional category id to filter by (empty for all)")),
	), s.listGalleryImages)

	s.mcp.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List the gallery categories."),
	), s.listCategories)

	s.mcp.AddTool(mcp.NewTool("add_gallery_image",
		mcp.WithDescription("Add an image to the project gallery. The category must already exist "+
			"and the image path must reference an already uploaded asset."),
		mcp.WithString("category", mcp.Required(), mcp.Description("Existing category id")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Display title for the image")),
		mcp.WithString("image", mcp.Required(), mcp.Description("Public path of the image asset (e.g. /images/uploads/pier.jpg)")),
	), s.addGalleryImage)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.blog.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	post, err := s.blog.Post(ctx, slug)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
	}
	out, _ := json.MarshalIndent(post, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag := ""
	if t, err := req.RequireString("tag"); err == nil {
		tag = t
	}

	metas, err := s.blog.Posts(ctx, tag)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var lines []string
	for _, m := range metas {
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s", m.Slug, m.Date, m.Title))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) listGalleryImages(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := ""
	if c, err := req.RequireString("category"); err == nil {
		category = c
	}

	images := s.gallery.Images()
	if category != "" {
		images = s.gallery.ImagesByCategory(category)
	}
	out, _ := json.MarshalIndent(images, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(s.gallery.Categories(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) addGalleryImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category, err := req.RequireString("category")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	image, err := req.RequireString("image")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	img, committed, err := s.gallery.AddImage(ctx, category, title, image)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s (committed=%v)", img.ID, committed)), nil
}
