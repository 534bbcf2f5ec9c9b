package api

import (
	"github.com/nekidaem/microblog/database"
	"github.com/nekidaem/microblog/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database) *routeHandlers {
	subscriptionService := services.NewSubscriptionService(db.SubscriptionRepo(), db.BlogRepo())
	feedService := services.NewFeedService(db.SubscriptionRepo(), db.PostRepo())
	readStateService := services.NewReadStateService(db.ReadMarkRepo(), db.PostRepo())
	postService := services.NewPostService(db.PostRepo(), db.BlogRepo())

	return &routeHandlers{
		accountHandler:      newAccountHandler(db.AccountRepo()),
		blogHandler:         newBlogHandler(db.BlogRepo()),
		postHandler:         newPostHandler(postService),
		subscriptionHandler: newSubscriptionHandler(subscriptionService),
		feedHandler:         newFeedHandler(feedService),
		readMarkHandler:     newReadMarkHandler(readStateService),
	}
}
