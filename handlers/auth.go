package handlers

import (
	"net/http"

	"aussiemate/services/auth"
	"aussiemate/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves the dashboard sign-in flow and the admin's own profile.
type AuthHandler struct {
	AuthService auth.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as auth.Service) *AuthHandler {
	return &AuthHandler{AuthService: as}
}

// LoginHandler signs the admin in against the upstream API and opens a
// dashboard session.
func (ah *AuthHandler) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Email and password are required", err.Error())
		return
	}
	result, err := ah.AuthService.Login(c.Request.Context(), req)
	if err != nil {
		zap.L().Warn("login failed", zap.String("email", req.Email), zap.Error(err))
		utils.JSONError(c, http.StatusUnauthorized, err.Error(), "")
		return
	}
	c.JSON(http.StatusOK, result)
}

// LogoutHandler closes the dashboard session.
func (ah *AuthHandler) LogoutHandler(c *gin.Context) {
	if err := ah.AuthService.Logout(c.Request.Context()); err != nil {
		zap.L().Warn("logout failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// GetProfileHandler returns the admin's live profile.
func (ah *AuthHandler) GetProfileHandler(c *gin.Context) {
	profile, err := ah.AuthService.Profile(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to fetch profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfileHandler forwards profile field updates upstream.
func (ah *AuthHandler) UpdateProfileHandler(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid profile payload", err.Error())
		return
	}
	profile, err := ah.AuthService.UpdateProfile(c.Request.Context(), updates)
	if err != nil {
		respondServiceError(c, err, "Failed to update profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UploadProfilePhotoHandler accepts a multipart photo and stores it.
func (ah *AuthHandler) UploadProfilePhotoHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "A photo file is required", err.Error())
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Could not read uploaded photo", err.Error())
		return
	}
	defer file.Close()

	profile, err := ah.AuthService.UploadProfilePhoto(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		respondServiceError(c, err, "Failed to upload profile photo")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteProfilePhotoHandler removes the admin's profile photo.
func (ah *AuthHandler) DeleteProfilePhotoHandler(c *gin.Context) {
	profile, err := ah.AuthService.DeleteProfilePhoto(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to delete profile photo")
		return
	}
	c.JSON(http.StatusOK, profile)
}
