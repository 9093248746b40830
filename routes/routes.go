package routes

import (
	"net/http"
	"time"

	"shiftwise/handlers"
	"shiftwise/middleware"
	"shiftwise/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterCompanyRoutes registers tenant management endpoints. Creation
// is public (it bootstraps the owner account); everything else is
// scoped to the caller's own company.
func RegisterCompanyRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/companies")
	{
		api.POST("", hb.CreateCompanyHandler)

		me := api.Group("/me")
		me.Use(middleware.JWTAuthWorkerMiddleware(hb.WorkerRepo))
		me.GET("", hb.GetCompanyHandler)
		me.PATCH("", middleware.RequireManager(), hb.UpdateCompanyHandler)
		me.POST("/rotate-code", middleware.RequireManager(), hb.RotateJoinCodeHandler)
		me.DELETE("", middleware.RequireOwner(), hb.DeactivateCompanyHandler)
	}
}

// RegisterAuthRoutes registers the registration workflow and sign-in.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/lookup-company", hb.LookupCompanyHandler)
		api.POST("/register", hb.RegisterHandler)
		api.GET("/verify-email/:token", hb.VerifyEmailHandler)
		api.POST("/login", hb.SignInHandler)

		authed := api.Group("")
		authed.Use(middleware.JWTAuthWorkerMiddleware(hb.WorkerRepo))
		authed.POST("/logout", hb.SignOutHandler)

		review := authed.Group("")
		review.Use(middleware.RequireManager())
		review.GET("/pending-registrations", hb.PendingRegistrationsHandler)
		review.POST("/approve-registration/:id", hb.ApproveRegistrationHandler)
		review.POST("/reject-registration/:id", hb.RejectRegistrationHandler)
	}
}

// RegisterWorkerRoutes registers profile and staff management endpoints.
func RegisterWorkerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/workers")
	api.Use(middleware.JWTAuthWorkerMiddleware(hb.WorkerRepo))
	{
		api.GET("/profile", hb.GetProfileHandler)
		api.PATCH("/profile", hb.UpdateProfileHandler)
		api.PUT("/password", hb.ChangePasswordHandler)
		api.PUT("/fcm-token", hb.UpdateFCMTokenHandler)
		api.POST("/avatar", hb.UploadAvatarHandler)
		api.GET("", hb.CompanyRosterHandler)
		api.DELETE("/deactivate/:id", middleware.RequireManager(), hb.DeactivateWorkerHandler)
	}
}

// RegisterShiftRoutes registers roster reads and writes. Only managers
// write; every worker can read their own shifts.
func RegisterShiftRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/shifts")
	api.Use(middleware.JWTAuthWorkerMiddleware(hb.WorkerRepo))
	{
		api.GET("/mine", hb.MyShiftsHandler)
		api.GET("/id/:id", hb.GetShiftHandler)

		managed := api.Group("")
		managed.Use(middleware.RequireManager())
		managed.POST("/create", hb.CreateShiftHandler)
		managed.PUT("/update/:id", hb.UpdateShiftHandler)
		managed.DELETE("/delete/:id", hb.DeleteShiftHandler)
		managed.GET("/worker/:id", hb.WorkerShiftsHandler)
	}
}

// RegisterScheduleRoutes registers the rendered calendar views.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedules")
	api.Use(middleware.JWTAuthWorkerMiddleware(hb.WorkerRepo))
	{
		api.GET("/day", hb.DayViewHandler)
		api.GET("/week", hb.WeekViewHandler)
		api.GET("/month", hb.MonthViewHandler)
	}
}

// RegisterAvailabilityRoutes registers availability declarations.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	api.Use(middleware.JWTAuthWorkerMiddleware(hb.WorkerRepo))
	{
		api.PUT("/day", hb.SetAvailabilityHandler)
		api.DELETE("/day/:date", hb.ClearAvailabilityHandler)
		api.GET("/week", hb.MyAvailabilityWeekHandler)
		api.GET("/company", middleware.RequireManager(), hb.CompanyAvailabilityHandler)
	}
}

// RegisterReportRoutes registers management reports.
func RegisterReportRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/reports")
	api.Use(middleware.JWTAuthWorkerMiddleware(hb.WorkerRepo))
	api.Use(middleware.RequireManager())
	{
		api.GET("/hours", hb.WeekHoursHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint backed by the
// periodic dependency monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and global
// middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterCompanyRoutes(r, hb)
	RegisterAuthRoutes(r, hb)
	RegisterWorkerRoutes(r, hb)
	RegisterShiftRoutes(r, hb)
	RegisterScheduleRoutes(r, hb)
	RegisterAvailabilityRoutes(r, hb)
	RegisterReportRoutes(r, hb)
	RegisterHealthRoute(r)
}
