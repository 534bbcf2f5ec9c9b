package database

import (
	"fmt"
	"math/rand"

	"github.com/nekidaem/microblog/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var seedTitles = []string{
	"Morning thoughts", "A small discovery", "Notes from the road",
	"On keeping things simple", "Weekend project", "What I read this week",
}

var seedContents = []string{
	"Short update, nothing fancy.",
	"Turns out the simplest option was the right one.",
	"Writing this down before I forget.",
	"",
}

// Seed populates the database with sample accounts, blogs, posts and
// subscriptions inside a single transaction. Intended for local development
// via the SEED_DATA startup mode.
func Seed(db *gorm.DB, accounts, postsPerBlog int) error {
	log.Info().Int("accounts", accounts).Int("postsPerBlog", postsPerBlog).Msg("Seeding database")

	return db.Transaction(func(tx *gorm.DB) error {
		blogs := make([]models.Blog, 0, accounts)
		for i := 0; i < accounts; i++ {
			account := models.Account{Username: fmt.Sprintf("user_%02d_%04d", i, rand.Intn(10000))}
			if err := tx.Create(&account).Error; err != nil {
				return err
			}
			blog := models.Blog{AccountID: account.ID}
			if err := tx.Create(&blog).Error; err != nil {
				return err
			}
			blogs = append(blogs, blog)

			for j := 0; j < postsPerBlog; j++ {
				post := models.Post{
					BlogID:  blog.ID,
					Title:   seedTitles[rand.Intn(len(seedTitles))],
					Content: seedContents[rand.Intn(len(seedContents))],
				}
				if err := tx.Create(&post).Error; err != nil {
					return err
				}
			}
		}

		// Subscribe every account to a couple of other blogs
		for i, blog := range blogs {
			for k := 1; k <= 2 && k < len(blogs); k++ {
				target := blogs[(i+k)%len(blogs)]
				sub := models.Subscription{AccountID: blog.AccountID, BlogID: target.ID}
				if err := tx.Create(&sub).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}
