package handler

import (
	"log"

	"eightify/dto"
	"eightify/middleware"
	"eightify/model"
	"eightify/usecase"
	"eightify/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users    *usecase.UserService
	registry *usecase.Registry
}

func NewAuthHandler(users *usecase.UserService, registry *usecase.Registry) *AuthHandler {
	return &AuthHandler{users: users, registry: registry}
}

// SignIn takes the profile handed over by the identity provider, records
// it and issues a token. The caller's tracker migrates its guest totals.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req model.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackError("validation")
		utils.BadRequest(c, "Invalid request body")
		return
	}

	user, token, expiresAt, err := h.users.SignIn(c.Request.Context(), req)
	if err != nil {
		log.Printf("Error signing in user %s: %v", req.UserID, err)
		utils.RespondError(c, err)
		return
	}

	ctx := storageContext(c)
	t := h.registry.Get(ctx, middleware.ClientID(c), "", middleware.Location(c))
	t.SyncAuth(ctx, user.UserID)

	utils.SuccessWithMessage(c, "Signed in", dto.SignInResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserProfileResponse(user, dto.ProfileLinks(user)),
	})
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.users.SignOut(c.Request.Context(), middleware.Token(c)); err != nil {
		log.Printf("Error signing out user %s: %v", middleware.UserID(c), err)
		utils.RespondError(c, err)
		return
	}

	if t, ok := h.registry.Lookup(middleware.ClientID(c)); ok {
		t.SyncAuth(storageContext(c), "")
	}
	utils.SuccessWithMessage(c, "Signed out", nil)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.users.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Success(c, dto.ToUserProfileResponse(user, dto.ProfileLinks(user)))
}
