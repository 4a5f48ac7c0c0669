package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SubhajitChakrabort/ProfilePage/internal/application/service"
	contentUC "github.com/SubhajitChakrabort/ProfilePage/internal/application/usecase/content"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/content"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/apperror"
)

// ContentHandler serves every content category through one set of handlers;
// the category descriptor is bound at route registration.
type ContentHandler struct {
	useCase *contentUC.ContentUseCase
	store   service.BinaryStore
}

func NewContentHandler(uc *contentUC.ContentUseCase, store service.BinaryStore) *ContentHandler {
	return &ContentHandler{useCase: uc, store: store}
}

func (h *ContentHandler) CreateEntry(cat content.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := formFile(c, h.store, "file")
		if err != nil {
			c.Error(err)
			return
		}

		input := contentUC.AddEntryInput{
			Category:   cat,
			ProfileID:  c.PostForm("profileId"),
			Values:     formValues(c, cat),
			Attachment: file,
		}
		id, err := h.useCase.AddEntry(c.Request.Context(), input)
		if err != nil {
			discard(h.store, file)
			c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Added successfully", "id": id})
	}
}

func (h *ContentHandler) UpdateEntry(cat content.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			c.Error(err)
			return
		}
		file, err := formFile(c, h.store, "file")
		if err != nil {
			c.Error(err)
			return
		}

		input := contentUC.UpdateEntryInput{
			Category:   cat,
			ID:         id,
			ProfileID:  c.PostForm("profileId"),
			Values:     formValues(c, cat),
			Attachment: file,
		}
		if err := h.useCase.UpdateEntry(c.Request.Context(), input); err != nil {
			discard(h.store, file)
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Updated successfully"})
	}
}

func (h *ContentHandler) DeleteEntry(cat content.Category) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			c.Error(err)
			return
		}
		if err := h.useCase.DeleteEntry(c.Request.Context(), cat, id, c.Query("profileId")); err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
	}
}

func (h *ContentHandler) AddSkillImage(c *gin.Context) {
	skillID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	file, err := formFile(c, h.store, "image")
	if err != nil {
		c.Error(err)
		return
	}

	input := contentUC.AddSkillImageInput{
		SkillID:    skillID,
		ProfileID:  c.PostForm("profileId"),
		Attachment: file,
	}
	img, err := h.useCase.AddSkillImage(c.Request.Context(), input)
	if err != nil {
		discard(h.store, file)
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Image added successfully", "image": img})
}

func (h *ContentHandler) ListSkillImages(c *gin.Context) {
	skillID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	images, err := h.useCase.ListSkillImages(c.Request.Context(), skillID, c.Query("profileId"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, images)
}

func (h *ContentHandler) ReorderSkillImages(c *gin.Context) {
	skillID, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	var req ReorderImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	if err := h.useCase.ReorderSkillImages(c.Request.Context(), skillID, req.ProfileID, req.Images); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image order updated successfully"})
}

func (h *ContentHandler) DeleteSkillImage(c *gin.Context) {
	if _, err := pathID(c, "id"); err != nil {
		c.Error(err)
		return
	}
	imageID, err := pathID(c, "imageId")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.useCase.DeleteSkillImage(c.Request.Context(), imageID, c.Query("profileId")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}

func formValues(c *gin.Context, cat content.Category) map[string]string {
	values := make(map[string]string, len(cat.Fields))
	for _, f := range cat.Fields {
		values[f.Name] = c.PostForm(f.Name)
	}
	return values
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperror.NewInvalidInput("invalid "+name, err)
	}
	return id, nil
}
