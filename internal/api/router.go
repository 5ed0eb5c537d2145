package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/giralt/sitecms/internal/auth"
	"github.com/giralt/sitecms/internal/blog"
	"github.com/giralt/sitecms/internal/galleryservice"
	"github.com/giralt/sitecms/internal/sse"
	"github.com/giralt/sitecms/internal/storage"
)

// Deps bundles the collaborators the router wires into handlers.
type Deps struct {
	Gallery  *galleryservice.Service
	Blog     *blog.Service
	Sessions *auth.Manager
	// AuthEnabled enforces admin sessions on the /admin subtree.
	AuthEnabled bool
	// SecureCookies marks session cookies Secure.
	SecureCookies bool
	// Mailer may be nil when SMTP is not configured.
	Mailer Mailer
	// Uploads is rooted at the public assets directory; nil disables uploads.
	Uploads storage.Provider
	// Broker may be nil; when set, admin mutations and the events endpoint
	// use it.
	Broker *sse.Broker
}

// NewRouter creates a chi router with all API routes mounted.
func NewRouter(deps Deps) chi.Router {
	gh := NewGalleryHandler(deps.Gallery, deps.Broker)
	bh := NewBlogHandler(deps.Blog)
	ah := NewAuthHandler(deps.Sessions, deps.SecureCookies)
	ch := NewContactHandler(deps.Mailer)

	r := chi.NewRouter()

	// Public site endpoints.
	r.Get("/gallery", gh.GetGallery)
	r.Get("/gallery/images", gh.ListImages)
	r.Get("/gallery/categories", gh.ListCategories)

	r.Get("/blog/posts", bh.ListPosts)
	r.Get("/blog/posts/{slug}", bh.GetPost)
	r.Get("/blog/posts/{slug}/related", bh.RelatedPosts)
	r.Get("/blog/tags", bh.ListTags)
	r.Get("/blog/search", bh.Search)

	r.Post("/contact", ch.Submit)

	// Session endpoints.
	r.Post("/admin/login", ah.Login)
	r.Post("/admin/logout", ah.Logout)

	// Admin-gated content management.
	r.Route("/admin", func(r chi.Router) {
		r.Use(SessionMiddleware(deps.AuthEnabled, deps.Sessions))

		r.Get("/images", gh.ListImages)
		r.Post("/images", gh.CreateImage)
		r.Get("/images/{id}", gh.GetImage)
		r.Put("/images/{id}", gh.UpdateImage)
		r.Delete("/images/{id}", gh.DeleteImage)

		r.Get("/categories", gh.ListCategories)
		r.Post("/categories", gh.CreateCategory)
		r.Put("/categories/{id}", gh.UpdateCategory)
		r.Delete("/categories/{id}", gh.DeleteCategory)

		if deps.Uploads != nil {
			uh := NewUploadHandler(deps.Uploads)
			r.Post("/uploads", uh.Upload)
		}

		if deps.Broker != nil {
			r.Get("/events", deps.Broker.ServeHTTP)
		}
	})

	return r
}
