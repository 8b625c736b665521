package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharath018/food-donation-backend/config"
	"github.com/sharath018/food-donation-backend/internal/auditlog"
	"github.com/sharath018/food-donation-backend/internal/donation"
	"github.com/sharath018/food-donation-backend/internal/gateway"
	"github.com/sharath018/food-donation-backend/internal/notification"
	"github.com/sharath018/food-donation-backend/internal/reports"
	"github.com/sharath018/food-donation-backend/internal/request"
	"github.com/sharath018/food-donation-backend/middleware"
	"github.com/sharath018/food-donation-backend/utils"

	_ "github.com/sharath018/food-donation-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup wires every dependency and registers the full route table.
func Setup(r *gin.Engine, cfg *config.Config) {
	// ===================== Shared infrastructure =====================
	platform := gateway.NewClient(cfg)

	auditSvc := auditlog.NewService(cfg)

	notifChannel := notification.NewFCMChannel()
	notifSvc := notification.NewService(notifChannel)
	notifHandler := notification.NewHandler(notifSvc)

	// ===================== Requests =====================
	store := request.NewStore()
	cache := request.NewCache(utils.RedisClient)
	events := request.NewKafkaEvents(cfg.KafkaEventTopic)
	requestSvc := request.NewService(store, platform, cache, events, auditSvc, notifSvc)
	sessions := request.NewFormSessions(requestSvc)
	requestHandler := request.NewHandler(requestSvc, sessions)

	// ===================== Donations =====================
	donationSvc := donation.NewService(platform)
	donationHandler := donation.NewHandler(donationSvc)

	// ===================== Reports =====================
	reportHandler := reports.NewHandler(requestSvc, reports.NewExporter())

	// ===================== Health + docs =====================
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ===================== API v1 =====================
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())
	api.Use(middleware.AuditMiddleware())

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg))

	requestRoutes := protected.Group("/requests")
	{
		requestRoutes.GET("", requestHandler.ListRequests)
		requestRoutes.POST("", requestHandler.CreateRequest)
		requestRoutes.GET("/export", reportHandler.ExportRequests)
		requestRoutes.GET("/:id", requestHandler.GetRequest)
		requestRoutes.PUT("/:id", requestHandler.UpdateRequest)
		requestRoutes.DELETE("/:id", requestHandler.DeleteRequest)
		requestRoutes.GET("/:id/view", requestHandler.GetRequestView)
		requestRoutes.PATCH("/:id/status", requestHandler.SetRequestStatus)
		requestRoutes.GET("/:id/summary", reportHandler.RequestSummary)
		requestRoutes.GET("/:id/donations", donationHandler.ListByRequest)
	}

	draftRoutes := protected.Group("/drafts")
	{
		draftRoutes.POST("", requestHandler.OpenDraft)
		draftRoutes.GET("/:id", requestHandler.GetDraft)
		draftRoutes.PATCH("/:id", requestHandler.EditDraft)
		draftRoutes.DELETE("/:id", requestHandler.CancelDraft)
		draftRoutes.POST("/:id/date", requestHandler.PickDate)
		draftRoutes.POST("/:id/time", requestHandler.PickTime)
		draftRoutes.POST("/:id/picker/date", requestHandler.OpenDatePicker)
		draftRoutes.POST("/:id/picker/time", requestHandler.OpenTimePicker)
		draftRoutes.POST("/:id/picker/dismiss", requestHandler.DismissPicker)
		draftRoutes.POST("/:id/submit", requestHandler.SubmitDraftSession)
	}

	deviceRoutes := protected.Group("/devices")
	{
		deviceRoutes.POST("", notifHandler.RegisterDevice)
		deviceRoutes.DELETE("/:token", notifHandler.UnregisterDevice)
	}
}
