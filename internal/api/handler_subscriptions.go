package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/model"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/store"
)

type putSubscriptionRequest struct {
	Endpoint         string   `json:"endpoint" binding:"required"`
	P256DH           string   `json:"p256dh" binding:"required"`
	Auth             string   `json:"auth" binding:"required"`
	SubscribedEvents []string `json:"subscribed_events"`
}

// PutSubscription creates or replaces a subscription and the events it
// follows.
func (h *Handler) PutSubscription(c *gin.Context) {
	var req putSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub := model.PushSubscription{
		Endpoint: req.Endpoint,
		P256DH:   req.P256DH,
		Auth:     req.Auth,
	}
	if err := h.store.PutSubscription(c.Request.Context(), &sub, req.SubscribedEvents); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

// DeleteSubscription removes the subscription named by the endpoint query
// parameter.
func (h *Handler) DeleteSubscription(c *gin.Context) {
	endpoint := c.Query("endpoint")
	if endpoint == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "endpoint is required"})
		return
	}

	if err := h.store.DeleteSubscription(c.Request.Context(), endpoint); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSubscription returns the event IDs a subscription follows.
func (h *Handler) GetSubscription(c *gin.Context) {
	endpoint := c.Query("endpoint")
	if endpoint == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "endpoint is required"})
		return
	}

	sub, err := h.store.GetSubscription(c.Request.Context(), endpoint)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
			return
		}
		abortWithError(c, err)
		return
	}

	eventIDs := make([]string, len(sub.Events))
	for i, ev := range sub.Events {
		eventIDs[i] = ev.ID
	}

	c.JSON(http.StatusOK, gin.H{"subscribed_events": eventIDs})
}
