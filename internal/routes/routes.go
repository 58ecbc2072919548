package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pro-master/backend/internal/audit"
	"github.com/pro-master/backend/internal/config"
	"github.com/pro-master/backend/internal/domain/access"
	"github.com/pro-master/backend/internal/handlers"
	infraRepo "github.com/pro-master/backend/internal/infra/repository"
	"github.com/pro-master/backend/internal/infra/storage"
	"github.com/pro-master/backend/internal/infra/tokenstore"
	"github.com/pro-master/backend/internal/middleware"
	ucAppointment "github.com/pro-master/backend/internal/usecase/appointment"
	ucFavorite "github.com/pro-master/backend/internal/usecase/favorite"
	ucReview "github.com/pro-master/backend/internal/usecase/review"
	ucSchedule "github.com/pro-master/backend/internal/usecase/schedule"
	ucProfile "github.com/pro-master/backend/internal/usecase/serviceprofile"
)

// Deps are the process-wide collaborators built in main.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     *zap.Logger
	Storage storage.ImageStorage
	Tokens  tokenstore.Store
	Audit   *audit.Dispatcher
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	db, cfg, log := d.DB, d.Config, d.Log

	// ======================================================
	// INFRA
	// ======================================================
	favoriteRepo := infraRepo.NewFavoriteGormRepository(db)
	reviewRepo := infraRepo.NewReviewGormRepository(db)
	profileRepo := infraRepo.NewServiceProfileGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	profileQuery := infraRepo.NewServiceProfileQuery(db)

	// ======================================================
	// USE CASES
	// ======================================================
	addFavoriteUC := ucFavorite.NewAddFavorite(favoriteRepo, d.Audit)
	removeFavoriteUC := ucFavorite.NewRemoveFavorite(favoriteRepo, d.Audit)
	profilesUC := ucProfile.NewProfiles(profileRepo, d.Storage, d.Audit, log)
	reviewsUC := ucReview.NewReviews(reviewRepo, d.Audit)
	schedulesUC := ucSchedule.NewSchedules(appointmentRepo, d.Audit)
	appointmentsUC := ucAppointment.NewAppointments(appointmentRepo, d.Audit, cfg.Timezone)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, d.Tokens, log)
	userHandler := handlers.NewUserHandler(db, cfg, d.Storage, log)
	clientHandler := handlers.NewClientProfileHandler(db, cfg, d.Storage, log)
	catalogHandler := handlers.NewCatalogHandler(db, cfg, log)
	profileHandler := handlers.NewServiceProfileHandler(db, cfg, profileQuery, profilesUC, addFavoriteUC, removeFavoriteUC, log)
	employeeHandler := handlers.NewEmployeeHandler(db, cfg, d.Storage, d.Audit, log)
	reviewHandler := handlers.NewReviewHandler(reviewsUC, log)
	scheduleHandler := handlers.NewScheduleHandler(schedulesUC, log)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentsUC, log)
	auditLogsHandler := handlers.NewAuditLogsHandler(db, cfg, log)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(middleware.Authenticate(db, cfg, d.Tokens, log))

	// ------------------------------
	// AUTH
	// ------------------------------
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/token/login", authHandler.Login)
	api.POST("/auth/token/logout", middleware.RequireAuth(), authHandler.Logout)

	// ------------------------------
	// USERS
	// ------------------------------
	users := api.Group("/users", middleware.RequireAuth())
	{
		users.GET("", userHandler.List)
		users.GET("/me", userHandler.Me)
		users.PATCH("/me", userHandler.UpdateMe)
		users.DELETE("/me", userHandler.DeleteMe)
		users.GET("/:id", userHandler.Get)
	}

	// ------------------------------
	// CLIENT PROFILES
	// ------------------------------
	clients := api.Group("/clients", middleware.RequireAuth(), middleware.Require(access.AdminOrClient{}))
	{
		clients.GET("", clientHandler.List)
		clients.POST("", clientHandler.Create)
		clients.GET("/:id", clientHandler.Get)
		clients.PUT("/:id", clientHandler.Update)
		clients.PATCH("/:id", clientHandler.Update)
		clients.DELETE("/:id", clientHandler.Delete)
	}

	// ------------------------------
	// CATALOG
	// ------------------------------
	categories := api.Group("/categories", middleware.Require(access.StaffOrReadOnly{}))
	{
		categories.GET("", catalogHandler.ListCategories)
		categories.POST("", catalogHandler.CreateCategory)
		categories.GET("/:id", catalogHandler.GetCategory)
		categories.PATCH("/:id", catalogHandler.UpdateCategory)
		categories.DELETE("/:id", catalogHandler.DeleteCategory)
	}

	services := api.Group("/services", middleware.Require(access.StaffOrReadOnly{}))
	{
		services.GET("", catalogHandler.ListServices)
		services.POST("", catalogHandler.CreateService)
		services.GET("/:id", catalogHandler.GetService)
		services.PATCH("/:id", catalogHandler.UpdateService)
		services.DELETE("/:id", catalogHandler.DeleteService)
	}

	// ------------------------------
	// SERVICE PROFILES
	// ------------------------------
	profiles := api.Group("/service-profiles")
	{
		asMaster := middleware.Require(access.AdminOrMaster{})

		profiles.GET("", profileHandler.List)
		profiles.POST("", asMaster, profileHandler.Create)
		profiles.GET("/:id", profileHandler.Get)
		profiles.PUT("/:id", asMaster, profileHandler.Update)
		profiles.PATCH("/:id", asMaster, profileHandler.Update)
		profiles.DELETE("/:id", asMaster, profileHandler.Delete)

		profiles.POST("/:id/favorite", middleware.RequireAuth(), profileHandler.AddFavorite)
		profiles.DELETE("/:id/favorite", middleware.RequireAuth(), profileHandler.RemoveFavorite)

		profiles.GET("/:id/images", profileHandler.ListImages)
		profiles.GET("/:id/images/:image_id", profileHandler.GetImage)

		employees := profiles.Group("/:id/employees", middleware.RequireAuth())
		{
			employees.GET("", employeeHandler.List)
			employees.POST("", employeeHandler.Create)
			employees.DELETE("/:employee_id", employeeHandler.Delete)
		}

		reviews := profiles.Group("/:id/reviews", middleware.Require(access.AdminOrAuthor{}))
		{
			reviews.GET("", reviewHandler.List)
			reviews.POST("", reviewHandler.Create)
			reviews.GET("/:review_id", reviewHandler.Get)
			reviews.PUT("/:review_id", reviewHandler.Update)
			reviews.PATCH("/:review_id", reviewHandler.Update)
			reviews.DELETE("/:review_id", reviewHandler.Delete)

			reviews.GET("/:review_id/comments", reviewHandler.ListComments)
			reviews.POST("/:review_id/comments", reviewHandler.CreateComment)
			reviews.GET("/:review_id/comments/:comment_id", reviewHandler.GetComment)
			reviews.PUT("/:review_id/comments/:comment_id", reviewHandler.UpdateComment)
			reviews.PATCH("/:review_id/comments/:comment_id", reviewHandler.UpdateComment)
			reviews.DELETE("/:review_id/comments/:comment_id", reviewHandler.DeleteComment)
		}

		schedules := profiles.Group("/:id/schedules")
		{
			asOwner := middleware.Require(access.AdminOrMaster{})
			asClient := middleware.Require(access.AdminOrClient{})

			schedules.GET("", scheduleHandler.List)
			schedules.POST("", asOwner, scheduleHandler.Create)
			schedules.GET("/:schedule_id", scheduleHandler.Get)
			schedules.PUT("/:schedule_id", asOwner, scheduleHandler.Update)
			schedules.PATCH("/:schedule_id", asOwner, scheduleHandler.Update)
			schedules.DELETE("/:schedule_id", asOwner, scheduleHandler.Delete)

			schedules.GET("/:schedule_id/appointments", appointmentHandler.List)
			schedules.POST("/:schedule_id/appointments", asClient, appointmentHandler.Create)
			schedules.GET("/:schedule_id/appointments/:appointment_id", appointmentHandler.Get)
			schedules.DELETE("/:schedule_id/appointments/:appointment_id", asClient, appointmentHandler.Delete)
		}
	}

	// ------------------------------
	// AUDIT
	// ------------------------------
	api.GET("/audit-logs", middleware.RequireAuth(), middleware.Require(staffOnly{}), auditLogsHandler.List)
}

// staffOnly gates reads as well as writes.
type staffOnly struct{}

func (staffOnly) HasPermission(p access.Principal, _ string) bool {
	return p.Authenticated() && p.Staff
}

func (s staffOnly) HasObjectPermission(p access.Principal, method string, _ any) bool {
	return s.HasPermission(p, method)
}
