package controller

import (
	"encoding/json"
	"errors"

	"github.com/gin-gonic/gin"

	"lgs_prep_backend/internal/engine"
	"lgs_prep_backend/internal/model"
	"lgs_prep_backend/internal/service"
	"lgs_prep_backend/internal/util"
)

// QuestionController is the authoring surface of the item bank, reachable
// by teachers and admins only.
type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// swagger:model CreateQuestionRequest
type CreateQuestionRequest struct {
	SubjectID        uint              `json:"subjectId" binding:"required"`
	UnitID           uint              `json:"unitId"`
	TopicID          uint              `json:"topicId" binding:"required"`
	OutcomeID        uint              `json:"outcomeId"`
	Difficulty       string            `json:"difficulty" binding:"required"`
	Text             string            `json:"text" binding:"required"`
	Choices          map[string]string `json:"choices" binding:"required"`
	CorrectChoice    string            `json:"correctChoice" binding:"required"`
	Explanation      string            `json:"explanation"`
	EstimatedSeconds int               `json:"estimatedSeconds"`
}

// Create godoc
// @Summary Author a question
// @Description Adds a question to the item bank
// @Tags questions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateQuestionRequest true "Question"
// @Success 201 {object} util.Response{data=object} "Created"
// @Failure 400 {object} util.Response "Invalid question"
// @Failure 403 {object} util.Response "Forbidden"
// @Router /api/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	choices, err := json.Marshal(req.Choices)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question := &model.Question{
		SubjectID:        req.SubjectID,
		UnitID:           req.UnitID,
		TopicID:          req.TopicID,
		OutcomeID:        req.OutcomeID,
		Difficulty:       model.Difficulty(req.Difficulty),
		Text:             req.Text,
		Choices:          choices,
		CorrectChoice:    req.CorrectChoice,
		Explanation:      req.Explanation,
		EstimatedSeconds: req.EstimatedSeconds,
		CreatorID:        claims.UserID,
	}

	if err := c.QuestionService.Create(question); err != nil {
		if errors.Is(err, service.ErrInvalidQuestion) {
			util.BadRequest(ctx, "invalid question payload")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": question.ID})
}

// Get godoc
// @Summary Question detail
// @Description Returns one question, answer key included
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Question ID"
// @Success 200 {object} util.Response{data=model.Question} "Success"
// @Failure 404 {object} util.Response "Question not found"
// @Router /api/questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	questionID := util.MustParseUint(ctx.Param("id"))
	if questionID == 0 {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	question, err := c.QuestionService.Get(questionID)
	if err != nil {
		if errors.Is(err, engine.ErrNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, question)
}

// List godoc
// @Summary List questions
// @Description Pages through the item bank, optionally filtered by subject and topic
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   subjectId query int false "Subject ID"
// @Param   topicId   query int false "Topic ID"
// @Param   page      query int false "Page"  default(1)
// @Param   limit     query int false "Limit" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Router /api/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	subjectID := util.MustParseUint(ctx.Query("subjectId"))
	topicID := util.MustParseUint(ctx.Query("topicId"))
	page, limit := pagination(ctx)

	questions, total, err := c.QuestionService.List(subjectID, topicID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  questions,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// UploadImage godoc
// @Summary Attach an image
// @Description Uploads an illustration for a question
// @Tags questions
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id   path     int  true "Question ID"
// @Param   file formData file true "Image file"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 400 {object} util.Response "Not an image"
// @Failure 404 {object} util.Response "Question not found"
// @Router /api/questions/{id}/image [post]
func (c *QuestionController) UploadImage(ctx *gin.Context) {
	questionID := util.MustParseUint(ctx.Param("id"))
	if questionID == 0 {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	url, err := c.QuestionService.UploadImage(ctx.Request.Context(), questionID, file)
	if err != nil {
		switch {
		case errors.Is(err, engine.ErrNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidFileType):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"url": url})
}
