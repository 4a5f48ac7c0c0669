package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SubhajitChakrabort/ProfilePage/internal/application/service"
	profileUC "github.com/SubhajitChakrabort/ProfilePage/internal/application/usecase/profile"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/logger"
)

type ProfileHandler struct {
	useCase *profileUC.ProfileUseCase
	store   service.BinaryStore
	logger  logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, store service.BinaryStore, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{useCase: uc, store: store, logger: log}
}

func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	picture, err := formFile(c, h.store, "profilePicture")
	if err != nil {
		c.Error(err)
		return
	}
	cover, err := formFile(c, h.store, "coverImage")
	if err != nil {
		discard(h.store, picture)
		c.Error(err)
		return
	}

	input := profileUC.CreateInput{
		Name:       c.PostForm("name"),
		Username:   c.PostForm("username"),
		IntroText:  c.PostForm("intro_text"),
		Highlights: c.PostForm("highlights"),
		Picture:    picture,
		Cover:      cover,
	}

	out, err := h.useCase.Create(c.Request.Context(), input)
	if err != nil {
		discard(h.store, picture, cover)
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Profile created successfully",
		"profileId": out.ProfileID,
		"userId":    out.UserID,
	})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	input := profileUC.UpdateInput{
		ProfileID:  c.PostForm("profileId"),
		Name:       c.PostForm("name"),
		IntroText:  c.PostForm("intro_text"),
		Highlights: c.PostForm("highlights"),
	}
	if err := h.useCase.Update(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

func (h *ProfileHandler) UpdateProfilePicture(c *gin.Context) {
	f, err := formFile(c, h.store, "profilePicture")
	if err != nil {
		c.Error(err)
		return
	}

	name, err := h.useCase.UpdatePicture(c.Request.Context(), c.PostForm("profileId"), f)
	if err != nil {
		discard(h.store, f)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile picture updated successfully", "filename": name})
}

func (h *ProfileHandler) UpdateCoverImage(c *gin.Context) {
	f, err := formFile(c, h.store, "coverImage")
	if err != nil {
		c.Error(err)
		return
	}

	name, err := h.useCase.UpdateCover(c.Request.Context(), c.PostForm("profileId"), f)
	if err != nil {
		discard(h.store, f)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cover image updated successfully", "filename": name})
}

func (h *ProfileHandler) GetByProfileID(c *gin.Context) {
	view, err := h.useCase.GetByProfileID(c.Request.Context(), c.Param("profileId"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ProfileHandler) GetByUsername(c *gin.Context) {
	view, err := h.useCase.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, view)
}
