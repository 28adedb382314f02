package handler

import (
	"context"
	"net/http"

	"roarrealty/internal/apperrors"
	"roarrealty/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ChatPipeline answers chat messages
type ChatPipeline interface {
	Chat(ctx context.Context, req model.ChatRequest) (*model.ChatResponse, error)
	FailureResponse(err error, exposeDetail bool) model.ChatFailure
}

// FilterOptionsSource lists filter values for the chat UI
type FilterOptionsSource interface {
	FilterOptions(ctx context.Context) (*model.FilterOptions, error)
}

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	chat         ChatPipeline
	filters      FilterOptionsSource
	exposeErrors bool
}

// NewChatHandler creates a new chat handler. exposeErrors adds error detail to 500 bodies.
func NewChatHandler(chat ChatPipeline, filters FilterOptionsSource, exposeErrors bool) *ChatHandler {
	return &ChatHandler{
		chat:         chat,
		filters:      filters,
		exposeErrors: exposeErrors,
	}
}

// RegisterRoutes mounts the chat endpoints on r
func (h *ChatHandler) RegisterRoutes(r gin.IRouter) {
	chat := r.Group("/chat")
	{
		chat.GET("", h.Chat)
		chat.GET("/filters", h.Filters)
	}
}

// Chat handles GET /chat?msg=
func (h *ChatHandler) Chat(c *gin.Context) {
	var q model.ChatQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, missingMessage())
		return
	}

	resp, err := h.chat.Chat(c.Request.Context(), model.ChatRequest{Message: q.Msg})
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			c.JSON(http.StatusBadRequest, missingMessage())
			return
		}
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("chat request failed")
		c.JSON(http.StatusInternalServerError, h.chat.FailureResponse(err, h.exposeErrors))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Filters handles GET /chat/filters
func (h *ChatHandler) Filters(c *gin.Context) {
	opts, err := h.filters.FilterOptions(c.Request.Context())
	if err != nil {
		log.Ctx(c.Request.Context()).Error().Err(err).Msg("filter options request failed")
		c.JSON(http.StatusInternalServerError, model.FilterOptionsResponse{
			Success: false,
			Message: "Could not fetch filter options",
		})
		return
	}

	c.JSON(http.StatusOK, model.FilterOptionsResponse{
		Success:          true,
		AvailableFilters: opts,
	})
}

func missingMessage() model.ChatInputError {
	return model.ChatInputError{
		Error:   "Please provide a message!",
		Example: "Try: 'Hi' or '3 bedroom villa in Damac Hills'",
	}
}
