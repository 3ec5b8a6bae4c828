package router

import (
	"wellwish/config"
	"wellwish/internal/handler"
	"wellwish/internal/middleware"
	"wellwish/internal/repository"
	"wellwish/internal/service"
	"wellwish/internal/ws"
	"wellwish/pkg/cloudinary"
	"wellwish/pkg/mailer"
	"wellwish/pkg/payment"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client, provider payment.Provider, mail mailer.Mailer) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(cfg.Server.RateLimit, cfg.Server.RateLimitWindow)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	caregiverRepo := repository.NewCaregiverListingRepository(db)
	careseekerRepo := repository.NewCareseekerListingRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	hub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	bookingSvc := service.NewBookingService(bookingRepo, caregiverRepo, notifRepo, userRepo, hub)
	appSvc := service.NewApplicationService(notifRepo, careseekerRepo, profileRepo, hub, mail, cfg.Mail.AdminEmail)
	chatSvc := service.NewChatService(messageRepo, notifRepo, userRepo, hub)
	paymentSvc := service.NewPaymentService(provider, paymentRepo, bookingRepo, bookingSvc, appSvc, cfg.Server.BaseURL, cfg.Stripe.Currency)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, userRepo)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	profileHandler := handler.NewProfileHandler(profileRepo)
	caregiverHandler := handler.NewCaregiverListingHandler(caregiverRepo, bookingRepo, cloud)
	careseekerHandler := handler.NewCareseekerListingHandler(careseekerRepo, cloud)
	bookingHandler := handler.NewBookingHandler(bookingSvc, bookingRepo)
	applicationHandler := handler.NewApplicationHandler(appSvc)
	notificationHandler := handler.NewNotificationHandler(notifRepo)
	messageHandler := handler.NewMessageHandler(chatSvc)
	uploadHandler := handler.NewUploadHandler(cloud)
	paymentHandler := handler.NewPaymentHandler(paymentSvc, paymentRepo, cfg.Stripe.WebhookSecret, cfg.Server.BaseURL)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authMw, authHandler.Logout)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
		}
		api.GET("/check-email-verified", authMw, authHandler.CheckEmailVerified)

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", profileHandler.GetMine)
			me.PUT("/profile", profileHandler.UpdateMine)
			me.GET("/caregiver-listings", caregiverHandler.ListMine)
			me.GET("/careseeker-listings", careseekerHandler.ListMine)
			me.GET("/bookings", bookingHandler.ListMine)
		}

		caregivers := api.Group("/caregivers")
		caregivers.Use(authMw)
		{
			caregivers.GET("", caregiverHandler.List)
			caregivers.POST("", caregiverHandler.Create)
			caregivers.GET("/:id", caregiverHandler.Get)
			caregivers.PUT("/:id", caregiverHandler.Update)
			caregivers.DELETE("/:id", caregiverHandler.Delete)
		}

		careseekers := api.Group("/careseekers")
		careseekers.Use(authMw)
		{
			careseekers.GET("", careseekerHandler.List)
			careseekers.POST("", careseekerHandler.Create)
			careseekers.GET("/:id", careseekerHandler.Get)
			careseekers.PUT("/:id", careseekerHandler.Update)
			careseekers.DELETE("/:id", careseekerHandler.Delete)
		}

		bookings := api.Group("/bookings")
		bookings.Use(authMw)
		{
			bookings.POST("", bookingHandler.Create)
			bookings.GET("/:id", bookingHandler.Get)
			// :id below is the booking_request notification id.
			bookings.POST("/requests/:id/accept", bookingHandler.Accept)
			bookings.POST("/requests/:id/reject", bookingHandler.Reject)
		}

		applications := api.Group("/applications")
		applications.Use(authMw)
		{
			applications.POST("", applicationHandler.Submit)
			applications.POST("/:id/reject", applicationHandler.Reject)
		}

		notifications := api.Group("/notifications")
		notifications.Use(authMw)
		{
			notifications.GET("", notificationHandler.List)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
		}

		messages := api.Group("/messages")
		messages.Use(authMw)
		{
			messages.POST("", messageHandler.Send)
			messages.GET("/conversation/:user_id", messageHandler.Conversation)
			messages.DELETE("/:id", messageHandler.Delete)
		}

		api.POST("/uploads/image", authMw, uploadHandler.Image)

		payments := api.Group("/payments")
		{
			payments.POST("/create-checkout-session", authMw, paymentHandler.CreateCheckoutSession)
			payments.POST("/create-payment-intent", authMw, paymentHandler.CreatePaymentIntent)
			payments.GET("/confirm", paymentHandler.Confirm)
		}
		api.POST("/webhooks/stripe", paymentHandler.Webhook)
	}

	r.GET("/ws/feed", ws.UpgradeFeedWS(&cfg.JWT, hub))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
