package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/http/response"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
	"github.com/UPTUZOVER/iiv-talim/internal/services"
)

type CatalogHandler struct {
	log               *logger.Logger
	catalogService    services.CatalogService
	courseViewService services.CourseViewService
}

func NewCatalogHandler(baseLog *logger.Logger, catalogService services.CatalogService, courseViewService services.CourseViewService) *CatalogHandler {
	return &CatalogHandler{
		log:               baseLog.With("handler", "CatalogHandler"),
		catalogService:    catalogService,
		courseViewService: courseViewService,
	}
}

type createCategoryRequest struct {
	Title string `json:"title" binding:"required"`
}

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.ErrInvalidArgument)
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), req.Title)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	views, err := h.courseViewService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, views)
}

type createCourseRequest struct {
	CategoryID       uuid.UUID `json:"category_id" binding:"required"`
	Title            string    `json:"title" binding:"required"`
	Author           string    `json:"author"`
	SmallDescription string    `json:"small_description"`
}

func (h *CatalogHandler) CreateCourse(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.ErrInvalidArgument)
		return
	}

	course, err := h.catalogService.CreateCourse(c.Request.Context(), &domain.Course{
		CategoryID:       req.CategoryID,
		Title:            req.Title,
		Author:           req.Author,
		SmallDescription: req.SmallDescription,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

func (h *CatalogHandler) GetCourse(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	view, err := h.courseViewService.GetCourseView(c.Request.Context(), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, view)
}

type createSectionRequest struct {
	CourseID         uuid.UUID `json:"course_id" binding:"required"`
	Title            string    `json:"title" binding:"required"`
	SmallDescription string    `json:"small_description"`
}

func (h *CatalogHandler) CreateSection(c *gin.Context) {
	var req createSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.ErrInvalidArgument)
		return
	}

	section, err := h.catalogService.CreateSection(c.Request.Context(), req.CourseID, req.Title, req.SmallDescription)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, section)
}

func (h *CatalogHandler) ListSectionVideos(c *gin.Context) {
	sectionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	views, err := h.courseViewService.SectionVideosWithAccess(c.Request.Context(), sectionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, views)
}

type createVideoRequest struct {
	SectionID        uuid.UUID `json:"section_id" binding:"required"`
	Title            string    `json:"title" binding:"required"`
	SmallDescription string    `json:"small_description"`
}

func (h *CatalogHandler) CreateVideo(c *gin.Context) {
	var req createVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.ErrInvalidArgument)
		return
	}

	video, err := h.catalogService.CreateVideo(c.Request.Context(), req.SectionID, req.Title, req.SmallDescription)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, video)
}

type createMissionRequest struct {
	SectionID   uuid.UUID `json:"section_id" binding:"required"`
	Description string    `json:"description"`
}

func (h *CatalogHandler) CreateMission(c *gin.Context) {
	var req createMissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.ErrInvalidArgument)
		return
	}

	mission, err := h.catalogService.CreateMission(c.Request.Context(), req.SectionID, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, mission)
}
