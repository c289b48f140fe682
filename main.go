package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"memoria/config"
	"memoria/cron"
	"memoria/database"
	profileRepoPkg "memoria/database/repository/profile"
	reminderRepoPkg "memoria/database/repository/reminder"
	userRepoPkg "memoria/database/repository/user"
	"memoria/handlers"
	"memoria/middleware"
	"memoria/routes"
	"memoria/services/notification"
	"memoria/services/profile"
	"memoria/services/reminder"
	"memoria/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	// Backend selection: a reachable Mongo deployment wins, otherwise fall
	// back to the embedded local store so the app keeps working offline.
	var (
		userRepo     userRepoPkg.UserRepository
		profileRepo  profileRepoPkg.ProfileRepository
		reminderRepo reminderRepoPkg.ReminderRepository
		localOnly    bool
	)
	if err := database.InitDB(); err == nil {
		userRepo = userRepoPkg.NewMongoUserRepo(database.MongoClient, config.AppConfig.DatabaseName)
		profileRepo = profileRepoPkg.NewMongoProfileRepo(database.MongoClient, config.AppConfig.DatabaseName)
		reminderRepo = reminderRepoPkg.NewMongoReminderRepo(database.MongoClient, config.AppConfig.DatabaseName)
		logger.Info("Using remote database backend", zap.String("db", config.AppConfig.DatabaseName))
	} else {
		logger.Warn("Remote database unavailable, using local store", zap.Error(err))
		if lerr := database.InitLocalDB(config.AppConfig.LocalStorePath); lerr != nil {
			logger.Sugar().Fatalf("main: failed to open local store: %v", lerr)
		}
		userRepo = userRepoPkg.NewLocalUserRepo(database.LocalDB)
		profileRepo = profileRepoPkg.NewLocalProfileRepo(database.LocalDB)
		reminderRepo = reminderRepoPkg.NewLocalReminderRepo(database.LocalDB)
		localOnly = true
	}
	defer database.CloseDB()

	cacheEnabled := utils.InitAuthCache()
	utils.FirebaseInit()
	utils.StartHealthMonitor(utils.GetAuthCacheClient(), database.MongoClient)

	// services.
	profileService := &profile.DefaultProfileService{
		UserRepo:    userRepo,
		ProfileRepo: profileRepo,
	}
	if localOnly && config.AppConfig.DemoMode {
		if err := profileService.SeedDemoAccounts(); err != nil {
			logger.Warn("Demo account seeding failed", zap.Error(err))
		}
	}

	notificationService, err := notification.NewDefaultNotificationService(userRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to build notification service: %v", err)
	}

	var dispatcher reminder.Dispatcher
	if cacheEnabled {
		// Redis is up, so pushes go through the asynq queue.
		queueDispatcher := cron.NewQueueDispatcher(notificationService)
		defer queueDispatcher.Close()
		cron.InitReminderWorker(notificationService)
		dispatcher = queueDispatcher
	} else {
		dispatcher = &inlineDispatcher{notif: notificationService}
	}

	reminderService := &reminder.DefaultReminderService{
		Repo:       reminderRepo,
		Dispatcher: dispatcher,
	}

	sweeper := reminder.NewSweeper(
		reminderService,
		time.Duration(config.AppConfig.SweepIntervalSeconds)*time.Second,
		time.Duration(config.AppConfig.DueWindowSeconds)*time.Second,
	)
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if err := sweeper.Start(sweepCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to start reminder sweeper: %v", err)
	}
	defer sweeper.Stop()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &handlers.HandlerBundle{
		Auth:     &handlers.AuthHandler{ProfileService: profileService},
		Profile:  &handlers.ProfileHandler{ProfileService: profileService},
		Reminder: &handlers.ReminderHandler{ReminderService: reminderService},
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
