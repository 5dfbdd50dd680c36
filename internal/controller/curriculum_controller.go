package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"lgs_prep_backend/internal/model"
	"lgs_prep_backend/internal/service"
	"lgs_prep_backend/internal/util"
)

type CurriculumController struct {
	CurriculumService *service.CurriculumService
}

func NewCurriculumController(curriculumService *service.CurriculumService) *CurriculumController {
	return &CurriculumController{CurriculumService: curriculumService}
}

// ListSubjects godoc
// @Summary List subjects
// @Description The six LGS subjects, in exam order
// @Tags curriculum
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Subject} "Success"
// @Router /api/subjects [get]
func (c *CurriculumController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.CurriculumService.ListSubjects()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// ListTopics godoc
// @Summary List topics of a subject
// @Tags curriculum
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Subject ID"
// @Success 200 {object} util.Response{data=[]model.Topic} "Success"
// @Failure 404 {object} util.Response "Subject not found"
// @Router /api/subjects/{id}/topics [get]
func (c *CurriculumController) ListTopics(ctx *gin.Context) {
	subjectID := util.MustParseUint(ctx.Param("id"))
	if subjectID == 0 {
		util.BadRequest(ctx, "invalid subject id")
		return
	}

	topics, err := c.CurriculumService.ListTopics(subjectID)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, topics)
}

// swagger:model CreateSubjectRequest
type CreateSubjectRequest struct {
	Code  string `json:"code" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Order int    `json:"order"`
}

// CreateSubject godoc
// @Summary Create a subject
// @Tags curriculum
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateSubjectRequest true "Subject"
// @Success 201 {object} util.Response{data=object} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/subjects [post]
func (c *CurriculumController) CreateSubject(ctx *gin.Context) {
	var req CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject := &model.Subject{Code: req.Code, Name: req.Name, Order: req.Order}
	if err := c.CurriculumService.CreateSubject(subject); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": subject.ID})
}

// swagger:model CreateUnitRequest
type CreateUnitRequest struct {
	SubjectID uint   `json:"subjectId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Order     int    `json:"order"`
}

// CreateUnit godoc
// @Summary Create a unit
// @Tags curriculum
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateUnitRequest true "Unit"
// @Success 201 {object} util.Response{data=object} "Created"
// @Failure 404 {object} util.Response "Subject not found"
// @Router /api/units [post]
func (c *CurriculumController) CreateUnit(ctx *gin.Context) {
	var req CreateUnitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	unit := &model.Unit{SubjectID: req.SubjectID, Name: req.Name, Order: req.Order}
	if err := c.CurriculumService.CreateUnit(unit); err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, gin.H{"id": unit.ID})
}

// swagger:model CreateTopicRequest
type CreateTopicRequest struct {
	UnitID    uint   `json:"unitId" binding:"required"`
	SubjectID uint   `json:"subjectId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Order     int    `json:"order"`
}

// CreateTopic godoc
// @Summary Create a topic
// @Tags curriculum
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateTopicRequest true "Topic"
// @Success 201 {object} util.Response{data=object} "Created"
// @Failure 404 {object} util.Response "Subject not found"
// @Router /api/topics [post]
func (c *CurriculumController) CreateTopic(ctx *gin.Context) {
	var req CreateTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	topic := &model.Topic{UnitID: req.UnitID, SubjectID: req.SubjectID, Name: req.Name, Order: req.Order}
	if err := c.CurriculumService.CreateTopic(topic); err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, gin.H{"id": topic.ID})
}
