package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"vessel-alert-service/internal/config"
)

func NewRouter(h *Handler, logger *logrus.Logger, cfg config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	r.GET("/healthz", h.Health)

	api := r.Group(cfg.API.BasePath)
	{
		// Alert runs
		api.POST("/alert-runs", h.TriggerAlertRun)

		// Notifications
		api.GET("/notifications/user/:user_id", h.GetNotificationsByUserID)
		api.PUT("/notifications/:id/read", h.MarkNotificationRead)
		api.GET("/ws/notifications/:user_id", h.NotificationsWS)
	}
	return r
}
