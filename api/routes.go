package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes sets up all routes with authentication
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/accounts", handlers.accountHandler.createAccount())
		r.Get("/accounts/{accountID}", handlers.accountHandler.getAccount())
		r.Get("/accounts/by-username/{username}", handlers.accountHandler.getAccountByUsername())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// Blog Handler endpoints
		r.Post("/blogs", handlers.blogHandler.createBlog())
		r.Get("/blogs/mine", handlers.blogHandler.getOwnBlog())

		// Post Handler endpoints
		r.Post("/add-post-to-blog/{blogID}", handlers.postHandler.addPostToBlog())
		r.Post("/delete-post-from-blog/{postID}", handlers.postHandler.deletePostFromBlog())

		// Subscription Handler endpoints
		r.Post("/subscribe/{blogID}", handlers.subscriptionHandler.subscribe())
		r.Post("/unsubscribe/{blogID}", handlers.subscriptionHandler.unsubscribe())

		// Feed Handler endpoints
		r.Get("/news-feed", handlers.feedHandler.newsFeed())

		// Read Mark Handler endpoints
		r.Post("/mark-post-as-read", handlers.readMarkHandler.markPostsAsRead())
	})
}
