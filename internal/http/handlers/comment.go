package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/UPTUZOVER/iiv-talim/internal/http/response"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
	"github.com/UPTUZOVER/iiv-talim/internal/services"
)

type CommentHandler struct {
	log            *logger.Logger
	commentService services.CommentService
}

func NewCommentHandler(baseLog *logger.Logger, commentService services.CommentService) *CommentHandler {
	return &CommentHandler{
		log:            baseLog.With("handler", "CommentHandler"),
		commentService: commentService,
	}
}

func pageParams(c *gin.Context) (int, int) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	return limit, offset
}

type addCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

func (h *CommentHandler) AddComment(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.ErrInvalidArgument)
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), videoID, req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	videoID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	limit, offset := pageParams(c)

	page, err := h.commentService.ListComments(c.Request.Context(), videoID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, page)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"deleted": true})
}
