package controllers

import (
	"net/http"

	"hotel-booking/services"

	"github.com/gin-gonic/gin"
)

type registerPayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordPayload struct {
	Email       string `json:"email" binding:"required"`
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

type updateProfilePayload struct {
	ID    string  `json:"id" binding:"required,uuid"`
	Name  *string `json:"name"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type AuthController struct {
	Users *services.UserService
}

func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{Users: users}
}

func (ctrl *AuthController) Register(c *gin.Context) {
	var payload registerPayload
	if err := bindStrict(c, &payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	user, err := ctrl.Users.Register(c.Request.Context(), services.RegisterInput{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := bindStrict(c, &payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	res, err := ctrl.Users.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	var payload changePasswordPayload
	if err := bindStrict(c, &payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	if err := ctrl.Users.ChangePassword(c.Request.Context(), payload.Email, payload.OldPassword, payload.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	var payload updateProfilePayload
	if err := bindStrict(c, &payload); err != nil {
		respondInvalidPayload(c, err)
		return
	}

	user, err := ctrl.Users.UpdateProfile(c.Request.Context(), payload.ID, services.ProfileInput{
		Name:  payload.Name,
		Email: payload.Email,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}

func (ctrl *AuthController) GetUsers(c *gin.Context) {
	users, err := ctrl.Users.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
