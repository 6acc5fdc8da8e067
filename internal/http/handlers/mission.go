package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/UPTUZOVER/iiv-talim/internal/http/response"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/logger"
	"github.com/UPTUZOVER/iiv-talim/internal/services"
)

type MissionHandler struct {
	log            *logger.Logger
	missionService services.MissionService
}

func NewMissionHandler(baseLog *logger.Logger, missionService services.MissionService) *MissionHandler {
	return &MissionHandler{
		log:            baseLog.With("handler", "MissionHandler"),
		missionService: missionService,
	}
}

func (h *MissionHandler) ListSectionMissions(c *gin.Context) {
	sectionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	missions, err := h.missionService.ListSectionMissions(c.Request.Context(), sectionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, missions)
}

type submitAssignmentRequest struct {
	Description string         `json:"description"`
	Payload     datatypes.JSON `json:"payload"`
}

func (h *MissionHandler) SubmitAssignment(c *gin.Context) {
	missionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req submitAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.ErrInvalidArgument)
		return
	}

	submission, err := h.missionService.SubmitAssignment(c.Request.Context(), missionID, req.Description, req.Payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, submission)
}

type reviewSubmissionRequest struct {
	Score   int  `json:"score"`
	Approve bool `json:"approve"`
}

func (h *MissionHandler) ReviewSubmission(c *gin.Context) {
	submissionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req reviewSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.ErrInvalidArgument)
		return
	}

	result, err := h.missionService.ReviewSubmission(c.Request.Context(), submissionID, req.Score, req.Approve)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
