// File: shiftwise/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shiftwise/config"
	"shiftwise/cron"
	"shiftwise/database"
	availabilityRepoPkg "shiftwise/database/repository/availability"
	companyRepoPkg "shiftwise/database/repository/company"
	registrationRepoPkg "shiftwise/database/repository/registration"
	shiftRepoPkg "shiftwise/database/repository/shift"
	workerRepoPkg "shiftwise/database/repository/worker"
	"shiftwise/handlers"
	"shiftwise/middleware"
	"shiftwise/routes"
	"shiftwise/services/availability"
	"shiftwise/services/company"
	"shiftwise/services/notification"
	"shiftwise/services/shift"
	"shiftwise/services/worker"
	"shiftwise/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	utils.FirebaseInit()

	window, err := config.CalendarWindow()
	if err != nil {
		logger.Sugar().Fatalf("main: invalid calendar geometry: %v", err)
	}

	// Avatar storage is optional: without credentials the upload
	// endpoint reports itself unconfigured and everything else runs.
	storageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Warnf("main: avatar storage disabled: %v", err)
		storageService = nil
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	workersRepo := workerRepoPkg.NewMongoWorkerRepo()
	companiesRepo := companyRepoPkg.NewMongoCompanyRepo()
	registrationsRepo := registrationRepoPkg.NewMongoRegistrationRepo()
	shiftsRepo := shiftRepoPkg.NewMongoShiftRepo()
	availabilityRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()

	// services.
	notificationService, err := notification.NewDefaultNotificationService(workersRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	workerService := &worker.DefaultWorkerService{
		Repo:          workersRepo,
		Companies:     companiesRepo,
		Registrations: registrationsRepo,
		Storage:       storageService,
	}

	companyService := &company.DefaultCompanyService{
		Repo:    companiesRepo,
		Workers: workerService,
	}

	shiftService := &shift.DefaultShiftService{
		Repo:         shiftsRepo,
		Workers:      workersRepo,
		Availability: availabilityRepo,
		Window:       window,
		Notif:        notificationService,
		AsynqClient:  asynqClient,
	}

	availabilityService := &availability.DefaultAvailabilityService{
		Repo:    availabilityRepo,
		Workers: workersRepo,
	}

	workerHandler := handlers.NewWorkerHandler(workerService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	shiftHandler := handlers.NewShiftHandler(shiftService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		WorkerRepo: workersRepo,

		// Company endpoints.
		CreateCompanyHandler:     companyHandler.CreateCompanyHandler,
		GetCompanyHandler:        companyHandler.GetCompanyHandler,
		UpdateCompanyHandler:     companyHandler.UpdateCompanyHandler,
		RotateJoinCodeHandler:    companyHandler.RotateJoinCodeHandler,
		DeactivateCompanyHandler: companyHandler.DeactivateCompanyHandler,

		// Registration and auth endpoints.
		LookupCompanyHandler:        workerHandler.LookupCompanyHandler,
		RegisterHandler:             workerHandler.RegisterHandler,
		VerifyEmailHandler:          workerHandler.VerifyEmailHandler,
		PendingRegistrationsHandler: workerHandler.PendingRegistrationsHandler,
		ApproveRegistrationHandler:  workerHandler.ApproveRegistrationHandler,
		RejectRegistrationHandler:   workerHandler.RejectRegistrationHandler,
		SignInHandler:               workerHandler.SignInHandler,
		SignOutHandler:              workerHandler.SignOutHandler,

		// Worker endpoints.
		GetProfileHandler:       workerHandler.GetProfileHandler,
		UpdateProfileHandler:    workerHandler.UpdateProfileHandler,
		ChangePasswordHandler:   workerHandler.ChangePasswordHandler,
		UpdateFCMTokenHandler:   workerHandler.UpdateFCMTokenHandler,
		UploadAvatarHandler:     workerHandler.UploadAvatarHandler,
		CompanyRosterHandler:    workerHandler.CompanyRosterHandler,
		DeactivateWorkerHandler: workerHandler.DeactivateWorkerHandler,

		// Shift endpoints.
		CreateShiftHandler:  shiftHandler.CreateShiftHandler,
		UpdateShiftHandler:  shiftHandler.UpdateShiftHandler,
		DeleteShiftHandler:  shiftHandler.DeleteShiftHandler,
		GetShiftHandler:     shiftHandler.GetShiftHandler,
		MyShiftsHandler:     shiftHandler.MyShiftsHandler,
		WorkerShiftsHandler: shiftHandler.WorkerShiftsHandler,

		// Calendar endpoints.
		DayViewHandler:   shiftHandler.DayViewHandler,
		WeekViewHandler:  shiftHandler.WeekViewHandler,
		MonthViewHandler: shiftHandler.MonthViewHandler,

		// Availability endpoints.
		SetAvailabilityHandler:     availabilityHandler.SetAvailabilityHandler,
		ClearAvailabilityHandler:   availabilityHandler.ClearAvailabilityHandler,
		MyAvailabilityWeekHandler:  availabilityHandler.MyAvailabilityWeekHandler,
		CompanyAvailabilityHandler: availabilityHandler.CompanyAvailabilityHandler,

		// Report endpoints.
		WeekHoursHandler: shiftHandler.WeekHoursHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background workers.
	cron.InitReminderWorker(notificationService, shiftsRepo)
	utils.StartHealthMonitor(map[string]*redis.Client{
		"cache": utils.GetCacheClient(),
		"auth":  utils.GetAuthCacheClient(),
	}, database.MongoClient)

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
