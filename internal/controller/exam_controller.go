package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"lgs_prep_backend/internal/engine"
	"lgs_prep_backend/internal/model"
	"lgs_prep_backend/internal/service"
	"lgs_prep_backend/internal/util"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// swagger:model StartExamRequest
type StartExamRequest struct {
	Mode        string `json:"mode" binding:"required"`
	SubjectID   *uint  `json:"subjectId"`
	TopicID     *uint  `json:"topicId"`
	TargetCount int    `json:"targetCount"`
	StudentID   uint   `json:"studentId"` // TEACHER_ASSIGNED only
}

// Start godoc
// @Summary Start an exam session
// @Description Creates a session and serves the first question
// @Tags exams
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body StartExamRequest true "Session parameters"
// @Success 201 {object} util.Response{data=model.ExamStartResult} "Created"
// @Failure 400 {object} util.Response "Invalid mode or scope"
// @Failure 403 {object} util.Response "Forbidden"
// @Failure 404 {object} util.Response "No eligible questions"
// @Router /api/exams [post]
func (c *ExamController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ExamService.Start(claims.UserID, claims.Role, service.StartExamRequest{
		Mode:        model.ExamMode(req.Mode),
		SubjectID:   req.SubjectID,
		TopicID:     req.TopicID,
		TargetCount: req.TargetCount,
		StudentID:   req.StudentID,
	})
	if err != nil {
		c.writeExamError(ctx, err)
		return
	}

	util.Created(ctx, result)
}

// swagger:model SubmitAnswerRequest
type SubmitAnswerRequest struct {
	Sequence       int     `json:"sequence" binding:"required"`
	SelectedChoice *string `json:"selectedChoice"` // null means timeout
	TimeSpentSec   int     `json:"timeSpentSec"`
}

// SubmitAnswer godoc
// @Summary Submit an answer
// @Description Records the answer for the current question and serves the next one
// @Tags exams
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id   path int                 true "Session ID"
// @Param   body body SubmitAnswerRequest true "Answer"
// @Success 200 {object} util.Response{data=model.AnswerResult} "Success"
// @Failure 400 {object} util.Response "Stale or duplicate submission"
// @Failure 403 {object} util.Response "Forbidden"
// @Failure 404 {object} util.Response "Session not found"
// @Router /api/exams/{id}/answers [post]
func (c *ExamController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID := util.MustParseUint(ctx.Param("id"))
	if sessionID == 0 {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ExamService.Submit(claims.UserID, sessionID, req.Sequence, req.SelectedChoice, req.TimeSpentSec)
	if err != nil {
		c.writeExamError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// Abandon godoc
// @Summary Abandon a session
// @Description Force-completes a stalled session, scoring the answers given so far
// @Tags exams
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Session ID"
// @Success 200 {object} util.Response{data=model.FinishResult} "Success"
// @Failure 400 {object} util.Response "Session not in progress"
// @Failure 403 {object} util.Response "Forbidden"
// @Failure 404 {object} util.Response "Session not found"
// @Router /api/exams/{id}/abandon [post]
func (c *ExamController) Abandon(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID := util.MustParseUint(ctx.Param("id"))
	if sessionID == 0 {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	result, err := c.ExamService.Abandon(claims.UserID, claims.Role, sessionID)
	if err != nil {
		c.writeExamError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// GetSession godoc
// @Summary Session detail
// @Description Returns one session with its served items
// @Tags exams
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Session ID"
// @Success 200 {object} util.Response{data=model.ExamSession} "Success"
// @Failure 403 {object} util.Response "Forbidden"
// @Failure 404 {object} util.Response "Session not found"
// @Router /api/exams/{id} [get]
func (c *ExamController) GetSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID := util.MustParseUint(ctx.Param("id"))
	if sessionID == 0 {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	sess, err := c.ExamService.GetSession(claims.UserID, claims.Role, sessionID)
	if err != nil {
		c.writeExamError(ctx, err)
		return
	}

	util.Success(ctx, sess)
}

// ListSessions godoc
// @Summary Session history
// @Description Lists the caller's sessions, newest first
// @Tags exams
// @Produce  json
// @Security ApiKeyAuth
// @Param   page  query int false "Page"  default(1)
// @Param   limit query int false "Limit" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Router /api/exams [get]
func (c *ExamController) ListSessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := pagination(ctx)
	sessions, total, err := c.ExamService.ListSessions(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  sessions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (c *ExamController) writeExamError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrInvalidScope):
		util.BadRequest(ctx, "invalid mode, scope or target count")
	case errors.Is(err, engine.ErrInvalidSubmission):
		util.BadRequest(ctx, "stale, duplicate or out-of-state submission")
	case errors.Is(err, engine.ErrNoEligibleItem):
		util.Error(ctx, 404, "no eligible questions for this scope")
	case errors.Is(err, engine.ErrNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
