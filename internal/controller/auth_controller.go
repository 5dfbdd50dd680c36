package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"lgs_prep_backend/internal/model"
	"lgs_prep_backend/internal/service"
	"lgs_prep_backend/internal/util"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=student teacher"`
	SchoolID *uint  `json:"schoolId"`
	Grade    int    `json:"grade"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates a student or teacher account
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "Registration info"
// @Success 201 {object} util.Response{data=object} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 409 {object} util.Response "Email already registered"
// @Failure 500 {object} util.Response "Internal error"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.UserRole(req.Role),
		SchoolID: req.SchoolID,
	}
	if req.Grade > 0 {
		user.Grade = req.Grade
	}

	if err := c.AuthService.Register(user); err != nil {
		if errors.Is(err, util.ErrEmailRegistered) {
			util.Error(ctx, 409, "Email already registered")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{"id": user.ID})
}

// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and returns a JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "Login credentials"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Unauthorized(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{"token": token})
}

// GetProfile godoc
// @Summary Current user profile
// @Description Returns the authenticated user's profile
// @Tags auth
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User} "Success"
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /api/profile [get]
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, user)
}
