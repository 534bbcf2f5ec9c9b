package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/nekidaem/microblog/api"
	"github.com/nekidaem/microblog/config"
	"github.com/nekidaem/microblog/database"
	"github.com/nekidaem/microblog/fanout"
	"github.com/nekidaem/microblog/models"
	"github.com/nekidaem/microblog/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if lvl, err := zerolog.ParseLevel(config.GetString(c, "LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.GetString(c, "DB_HOST", "localhost"),
		config.GetString(c, "DB_USER", "postgres"),
		config.GetString(c, "DB_PASSWORD", ""),
		config.GetString(c, "DB_NAME", "microblog"),
		config.GetString(c, "DB_PORT", "5432"),
		config.GetString(c, "DB_SSLMODE", "disable"),
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// Route reads through a replica when one is configured. Task claiming and
	// all writes stay on the primary.
	if replicaDSN := config.GetString(c, "READ_REPLICA_DSN", ""); replicaDSN != "" {
		err = db.Use(dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(replicaDSN)},
		}))
		if err != nil {
			log.Fatal().Err(err).Msg("Error registering read replica")
		}
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		log.Fatal().Err(err).Msg("Error testing database connection")
	}

	err = db.AutoMigrate(
		&models.Account{},
		&models.Blog{},
		&models.Post{},
		&models.Subscription{},
		&models.ReadMark{},
		&models.FeedTask{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Error migrating schema")
	}

	// If seeding demo data, run the seeder and exit
	if config.GetBool(c, "SEED_DATA", false) {
		fmt.Println("Seeding demo data...")
		if err := database.Seed(db,
			config.GetInt(c, "SEED_ACCOUNTS", 10),
			config.GetInt(c, "SEED_POSTS_PER_BLOG", 5),
		); err != nil {
			log.Fatal().Err(err).Msg("Error seeding demo data")
		}
		return
	}

	currentDB := database.New(db)

	worker := fanout.New(
		currentDB.FanoutStore(),
		fanout.PolicyFromName(config.GetString(c, "FANOUT_POLICY", "eager")),
		fanout.Config{
			Workers:      config.GetInt(c, "FANOUT_WORKERS", 4),
			PollInterval: config.GetSeconds(c, "FANOUT_POLL_SECONDS", time.Second),
			Visibility:   config.GetSeconds(c, "FANOUT_VISIBILITY_SECONDS", 5*time.Minute),
		},
	)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	defer cancelWorker()

	if err := worker.Start(workerCtx); err != nil {
		log.Fatal().Err(err).Msg("Error starting fan-out worker")
	}

	// Optional daily digest loop, disabled unless an interval is set
	if interval := config.GetSeconds(c, "NEWSLETTER_INTERVAL_SECONDS", 0); interval > 0 {
		newsletter := services.NewNewsletterService(
			currentDB.AccountRepo(),
			currentDB.SubscriptionRepo(),
			currentDB.PostRepo(),
			interval,
		)
		go newsletter.Run(workerCtx)
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
	worker.Stop()
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
