package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"vessel-alert-service/internal/models"
	"vessel-alert-service/internal/ws"
)

// NotificationStore is the slice of the store the API reads from.
type NotificationStore interface {
	GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id uuid.UUID) error
}

// RunTrigger starts one alert run and returns its report.
type RunTrigger interface {
	Run(ctx context.Context) (models.RunReport, error)
}

type Handler struct {
	store    NotificationStore
	runner   RunTrigger
	hub      *ws.Hub
	logger   *logrus.Logger
	upgrader websocket.Upgrader
}

func NewHandler(store NotificationStore, runner RunTrigger, hub *ws.Hub, logger *logrus.Logger) *Handler {
	return &Handler{
		store:  store,
		runner: runner,
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// TriggerAlertRun runs the orchestrator synchronously and returns its report.
func (h *Handler) TriggerAlertRun(c *gin.Context) {
	report, err := h.runner.Run(c.Request.Context())
	if err != nil {
		h.logger.Errorf("Manual alert run failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Alert run failed"})
		return
	}

	h.logger.Infof("Manual alert run: scanned=%d triggered=%d dispatched=%d",
		report.Scanned, report.Triggered, report.Dispatched)
	c.JSON(http.StatusOK, report)
}

func (h *Handler) GetNotificationsByUserID(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		h.logger.Errorf("Invalid user_id %s: %v", c.Param("user_id"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return
	}
	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.store.GetNotificationsByUserID(c.Request.Context(), userID, unreadOnly)
	if err != nil {
		h.logger.Errorf("Failed to get notifications for user_id %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.logger.Errorf("Invalid notification id %s: %v", c.Param("id"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}

	if err := h.store.MarkNotificationRead(c.Request.Context(), id); err != nil {
		h.logger.Errorf("Failed to mark notification %s read: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "read"})
}

// NotificationsWS upgrades the connection and registers it with the hub so
// the dispatcher can push new notifications live.
func (h *Handler) NotificationsWS(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("WebSocket upgrade failed for user %s: %v", userID, err)
		return
	}

	h.hub.Register(userID, conn)
	go func() {
		defer func() {
			h.hub.Unregister(userID, conn)
			conn.Close()
		}()
		// Read loop only detects the client going away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
