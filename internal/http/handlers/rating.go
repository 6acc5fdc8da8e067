package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/UPTUZOVER/iiv-talim/internal/http/response"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
	"github.com/UPTUZOVER/iiv-talim/internal/services"
)

type RatingHandler struct {
	log           *logger.Logger
	ratingService services.RatingService
}

func NewRatingHandler(baseLog *logger.Logger, ratingService services.RatingService) *RatingHandler {
	return &RatingHandler{
		log:           baseLog.With("handler", "RatingHandler"),
		ratingService: ratingService,
	}
}

type rateVideoRequest struct {
	Rating int `json:"rating" binding:"required"`
}

func (h *RatingHandler) RateVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req rateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.ErrInvalidArgument)
		return
	}

	rating, err := h.ratingService.RateVideo(c.Request.Context(), videoID, req.Rating)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rating)
}

func (h *RatingHandler) ListRatings(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	limit, offset := pageParams(c)

	summary, err := h.ratingService.ListRatings(c.Request.Context(), videoID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}
