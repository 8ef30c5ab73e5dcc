package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"newsletter/pkg/logger"
	"newsletter/services/newsletter/internal/entity"
	"newsletter/services/newsletter/internal/usecase"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionUseCase usecase.SubscriptionUseCase
	logger              *logger.Logger
}

func NewSubscriptionHandler(subscriptionUseCase usecase.SubscriptionUseCase, logger *logger.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUseCase: subscriptionUseCase,
		logger:              logger,
	}
}

type SubscribeRequest struct {
	Email string `json:"email"`
}

type SubscribeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SubscribersResponse struct {
	Count       int                 `json:"count"`
	Subscribers []entity.Subscriber `json:"subscribers"`
}

// Subscribe godoc
// @Summary      Subscribe to the newsletter
// @Description  Validates the email, stores it and sends a welcome email when mail is configured
// @Tags         subscriptions
// @Accept       json
// @Produce      json
// @Param        request body SubscribeRequest true "Subscriber email"
// @Success      200  {object}  SubscribeResponse
// @Failure      400  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/subscribe [post]
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !isEmptyBody(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if _, err := h.subscriptionUseCase.Subscribe(req.Email); err != nil {
		switch {
		case usecase.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, usecase.ErrSaveFailed):
			c.JSON(http.StatusInternalServerError, gin.H{"error": usecase.ErrSaveFailed.Error()})
		default:
			h.logger.Error("Subscription error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, SubscribeResponse{Success: true, Message: "Successfully subscribed"})
}

// isEmptyBody reports whether a bind error came from a missing body or a
// JSON value that is not an object. Both are handled as {}.
func isEmptyBody(err error) bool {
	if errors.Is(err, io.EOF) {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr) && typeErr.Field == ""
}

// ListSubscribers godoc
// @Summary      List subscribers
// @Description  Returns every stored subscriber in insertion order
// @Tags         subscriptions
// @Produce      json
// @Success      200  {object}  SubscribersResponse
// @Router       /api/subscribers [get]
func (h *SubscriptionHandler) ListSubscribers(c *gin.Context) {
	subscribers := h.subscriptionUseCase.ListSubscribers()
	if subscribers == nil {
		subscribers = []entity.Subscriber{}
	}
	c.JSON(http.StatusOK, SubscribersResponse{Count: len(subscribers), Subscribers: subscribers})
}

// Health godoc
// @Summary      Health check
// @Description  Reports the storage mode and the current subscriber count
// @Tags         health
// @Produce      json
// @Success      200  {object}  usecase.Health
// @Router       /health [get]
func (h *SubscriptionHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.subscriptionUseCase.Health())
}
