package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/servicedesk/internal/application/notification/dto"
	"github.com/orris-inc/servicedesk/internal/application/notification/usecases"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

type notificationService interface {
	List(ctx context.Context, q usecases.ListNotificationsQuery) (*usecases.ListNotificationsResult, error)
	UnreadCount(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, userID, id uint) (*dto.NotificationDTO, error)
	MarkAllRead(ctx context.Context, userID uint) (int64, error)
	Delete(ctx context.Context, userID, id uint) error
}

type preferenceService interface {
	Get(ctx context.Context, userID uint) ([]*dto.PreferenceDTO, error)
	Update(ctx context.Context, userID uint, inputs []usecases.PreferenceInput) ([]*dto.PreferenceDTO, error)
}

type PreferenceItem struct {
	EventType string `json:"event_type" binding:"required"`
	InApp     bool   `json:"in_app"`
	Email     bool   `json:"email"`
	Realtime  bool   `json:"realtime"`
}

type UpdatePreferencesRequest struct {
	Preferences []PreferenceItem `json:"preferences" binding:"required,min=1,dive"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

type NotificationHandler struct {
	notifications notificationService
	preferences   preferenceService
	logger        logger.Interface
}

func NewNotificationHandler(notifications notificationService, preferences preferenceService, logger logger.Interface) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, preferences: preferences, logger: logger}
}

// ListNotifications godoc
// @Summary List the caller's notifications, newest first
// @Security Bearer
// @Tags notifications
// @Produce json
// @Param unread query bool false "Only unread"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} utils.APIResponse{data=utils.ListResponse}
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	unread, err := utils.ParseOptionalBoolQuery(c, "unread")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	p := utils.ParsePagination(c)

	result, err := h.notifications.List(c.Request.Context(), usecases.ListNotificationsQuery{
		UserID:     actor.UserID,
		UnreadOnly: unread != nil && *unread,
		Page:       p.Page,
		PageSize:   p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.ListSuccessResponse(c, result.Notifications, result.Total, result.Page, result.PageSize)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	count, err := h.notifications.UnreadCount(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", UnreadCountResponse{Count: count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "notification")
	if !ok {
		return
	}
	result, err := h.notifications.MarkRead(c.Request.Context(), actor.UserID, id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	updated, err := h.notifications.MarkAllRead(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", MarkAllReadResponse{Updated: updated})
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	actor, id, ok := actorAndID(c, "id", "notification")
	if !ok {
		return
	}
	if err := h.notifications.Delete(c.Request.Context(), actor.UserID, id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.NoContentResponse(c)
}

// GetPreferences returns one entry per event type with defaults filled in.
func (h *NotificationHandler) GetPreferences(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	result, err := h.preferences.Get(c.Request.Context(), actor.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdatePreferences godoc
// @Summary Upsert delivery preferences per event type
// @Security Bearer
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body UpdatePreferencesRequest true "Preferences"
// @Success 200 {object} utils.APIResponse{data=[]dto.PreferenceDTO}
// @Failure 400 {object} utils.APIResponse "Unknown event type"
// @Router /notifications/preferences [put]
func (h *NotificationHandler) UpdatePreferences(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	var req UpdatePreferencesRequest
	if !bindJSON(c, &req) {
		return
	}

	inputs := make([]usecases.PreferenceInput, 0, len(req.Preferences))
	for _, p := range req.Preferences {
		inputs = append(inputs, usecases.PreferenceInput{
			EventType: p.EventType,
			InApp:     p.InApp,
			Email:     p.Email,
			Realtime:  p.Realtime,
		})
	}

	result, err := h.preferences.Update(c.Request.Context(), actor.UserID, inputs)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "Preferences updated", result)
}
