package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/UPTUZOVER/iiv-talim/internal/http/response"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
	"github.com/UPTUZOVER/iiv-talim/internal/services"
)

type VideoHandler struct {
	log          *logger.Logger
	videoService services.VideoService
}

func NewVideoHandler(baseLog *logger.Logger, videoService services.VideoService) *VideoHandler {
	return &VideoHandler{
		log:          baseLog.With("handler", "VideoHandler"),
		videoService: videoService,
	}
}

func (h *VideoHandler) CheckAccess(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	access, err := h.videoService.CheckAccess(c.Request.Context(), videoID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, access)
}

func (h *VideoHandler) MarkWatched(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.videoService.MarkWatched(c.Request.Context(), videoID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
