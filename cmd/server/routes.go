package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"maintenance-genie.backend/internal/interfaces/http/handlers"
	"maintenance-genie.backend/internal/interfaces/http/middleware"
	"maintenance-genie.backend/pkg/jwt"
)

type routeDeps struct {
	userHandler    *handlers.UserHandler
	itemHandler    *handlers.ItemHandler
	paymentHandler *handlers.PaymentHandler
	adminHandler   *handlers.AdminHandler
	authMiddleware gin.HandlerFunc
	uploadDir      string
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", d.uploadDir)

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register-step1", d.userHandler.RegisterStep1)
			users.POST("/verify-otp", d.userHandler.VerifyOtp)
			users.POST("/register-step3", d.authMiddleware, middleware.RequireScope(jwt.ScopeCompleteProfile), d.userHandler.CompleteProfile)
			users.POST("/login", d.userHandler.Login)
			users.POST("/forgot-password", d.userHandler.ForgotPassword)
			users.POST("/reset-password", d.userHandler.ResetPassword)
			users.GET("/me", d.authMiddleware, middleware.RequireUser(), d.userHandler.Me)
			users.POST("/contact", d.authMiddleware, middleware.RequireUser(), d.userHandler.Contact)
		}

		items := api.Group("/items")
		items.Use(d.authMiddleware, middleware.RequireUser())
		{
			items.POST("", d.itemHandler.AddItem)
			items.GET("", d.itemHandler.ListItems)
			items.GET("/:id", d.itemHandler.GetItem)
		}

		payments := api.Group("/payments")
		{
			payments.POST("/webhook", d.paymentHandler.Webhook)
			payments.GET("/services", d.authMiddleware, middleware.RequireUser(), d.paymentHandler.ListServices)
			payments.POST("/intent", d.authMiddleware, middleware.RequireUser(), middleware.IdempotencyMiddleware(), d.paymentHandler.CreateIntent)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/login", d.adminHandler.Login)

			protected := admin.Group("")
			protected.Use(d.authMiddleware, middleware.RequireAdmin())
			{
				protected.GET("/me", d.adminHandler.Me)
				protected.POST("/change-password", d.adminHandler.ChangePassword)
				protected.PUT("/update-image", d.adminHandler.UpdateImage)
				protected.PUT("/update-details", d.adminHandler.UpdateDetails)
				protected.GET("/admins", d.adminHandler.ListAdmins)
				protected.DELETE("/admins/:id", d.adminHandler.DeleteAdmin)
				protected.POST("/invite", d.adminHandler.Invite)
				protected.GET("/users", d.adminHandler.ListUsers)
				protected.GET("/users/count", d.adminHandler.CountUsers)
				protected.PUT("/users/:id/suspend", d.adminHandler.SuspendUser)
				protected.PUT("/users/:id/activate", d.adminHandler.ActivateUser)
				protected.GET("/mails", d.adminHandler.ListMails)
				protected.PUT("/mails/:id/status", d.adminHandler.ToggleMailStatus)
				protected.POST("/services", d.adminHandler.CreateService)
				protected.GET("/services", d.adminHandler.ListServices)
			}
		}
	}
}
