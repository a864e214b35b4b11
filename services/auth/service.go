// Package auth owns admin sign-in against the upstream core API and the
// lifecycle of the cached session (token + profile).
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"aussiemate/config"
	"aussiemate/models"
	"aussiemate/services/storage"
	"aussiemate/session"
	"aussiemate/upstream"
	"aussiemate/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoginRequest carries the dashboard sign-in form.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember"`
}

// LoginResult is what the dashboard stores after a successful sign-in.
type LoginResult struct {
	Token   string              `json:"token"`
	Profile models.AdminProfile `json:"profile"`
}

// Service defines the admin session business logic.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.AdminProfile, error)
	UpdateProfile(ctx context.Context, updates map[string]interface{}) (*models.AdminProfile, error)
	UploadProfilePhoto(ctx context.Context, fileName string, file io.Reader) (*models.AdminProfile, error)
	DeleteProfilePhoto(ctx context.Context) (*models.AdminProfile, error)
}

// DefaultAuthService implements Service.
type DefaultAuthService struct {
	Upstream *upstream.Client
	Sessions session.Store
	Storage  storage.StorageService // optional
	Logger   *zap.Logger
}

// Login forwards credentials upstream, hunts the bearer token and user object
// across the documented response shapes, and opens a session. No token in the
// response means no session is created.
func (s *DefaultAuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	body := map[string]string{"email": req.Email, "password": req.Password}
	resp, err := s.Upstream.DoJSON(ctx, http.MethodPost, "/auth/login", nil, body)
	if err != nil {
		return nil, loginError(err)
	}

	token := upstream.TokenFromBody(resp)
	if token == "" {
		s.Logger.Warn("login response carried no token at any known path",
			zap.String("email", req.Email))
		return nil, fmt.Errorf("login succeeded but no token was returned")
	}
	profile := models.ProfileFromMap(upstream.UserFromBody(resp))
	if profile.Email == "" {
		profile.Email = req.Email
	}

	rec := session.Record{
		ID:            uuid.New().String(),
		Email:         req.Email,
		UpstreamToken: token,
		Profile:       profile,
		Remember:      req.Remember,
		CreatedAt:     time.Now(),
	}
	ttl := sessionTTL(req.Remember)
	if err := s.Sessions.Set(ctx, rec, ttl); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	adminToken, err := utils.GenerateSessionToken(rec.ID, req.Email, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &LoginResult{Token: adminToken, Profile: profile}, nil
}

func sessionTTL(remember bool) time.Duration {
	if remember {
		return config.AppConfig.SessionRememberTTL
	}
	return config.AppConfig.SessionTTL
}

// loginError keeps the surfaced message human; the upstream classifies
// nothing beyond the status code anyway.
func loginError(err error) error {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s", apiErr.Message)
	}
	return fmt.Errorf("login failed, please try again")
}

// Logout clears the session for the calling request.
func (s *DefaultAuthService) Logout(ctx context.Context) error {
	id := session.IDFromContext(ctx)
	if id == "" {
		return nil
	}
	return s.Sessions.Clear(ctx, id)
}

// Profile fetches the live profile, re-hunting the user object from whatever
// shape the upstream answers with, and refreshes the cached copy.
func (s *DefaultAuthService) Profile(ctx context.Context) (*models.AdminProfile, error) {
	resp, err := s.Upstream.DoJSON(ctx, http.MethodGet, "/auth/me", nil, nil)
	if err != nil {
		return nil, err
	}
	return s.cacheProfile(ctx, resp)
}

// UpdateProfile forwards field updates upstream.
func (s *DefaultAuthService) UpdateProfile(ctx context.Context, updates map[string]interface{}) (*models.AdminProfile, error) {
	resp, err := s.Upstream.DoJSON(ctx, http.MethodPut, "/auth/me", nil, updates)
	if err != nil {
		return nil, err
	}
	return s.cacheProfile(ctx, resp)
}

// UploadProfilePhoto stages the photo in Cloudinary when configured (the
// upstream then receives a URL), otherwise forwards the file itself as
// multipart form data.
func (s *DefaultAuthService) UploadProfilePhoto(ctx context.Context, fileName string, file io.Reader) (*models.AdminProfile, error) {
	var resp map[string]interface{}
	var err error
	if s.Storage != nil {
		var publicID string
		publicID, err = s.Storage.UploadFile(ctx, file, fileName, "admin-profiles")
		if err != nil {
			return nil, fmt.Errorf("failed to stage profile photo: %w", err)
		}
		var url string
		url, err = s.Storage.GetDownloadURL(ctx, publicID, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve profile photo URL: %w", err)
		}
		resp, err = s.Upstream.DoJSON(ctx, http.MethodPost, "/auth/me/photo", nil,
			map[string]string{"photoUrl": url})
	} else {
		resp, err = s.Upstream.PostMultipart(ctx, "/auth/me/photo", "photo", fileName, file, nil)
	}
	if err != nil {
		return nil, err
	}
	return s.cacheProfile(ctx, resp)
}

// DeleteProfilePhoto removes the photo upstream.
func (s *DefaultAuthService) DeleteProfilePhoto(ctx context.Context) (*models.AdminProfile, error) {
	resp, err := s.Upstream.DoJSON(ctx, http.MethodDelete, "/auth/me/photo", nil, nil)
	if err != nil {
		return nil, err
	}
	return s.cacheProfile(ctx, resp)
}

// cacheProfile extracts the user object from an ambiguous response and
// refreshes the session's cached profile. When the response carries no user
// object the cached copy is returned unchanged.
func (s *DefaultAuthService) cacheProfile(ctx context.Context, resp map[string]interface{}) (*models.AdminProfile, error) {
	id := session.IDFromContext(ctx)
	rec, err := s.Sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("session no longer valid: %w", err)
	}

	if userMap := upstream.UserFromBody(resp); userMap != nil {
		rec.Profile = models.ProfileFromMap(userMap)
		if rec.Profile.Email == "" {
			rec.Profile.Email = rec.Email
		}
		if err := s.Sessions.Set(ctx, *rec, sessionTTL(rec.Remember)); err != nil {
			s.Logger.Warn("failed to refresh cached profile", zap.Error(err))
		}
	}
	profile := rec.Profile
	return &profile, nil
}
