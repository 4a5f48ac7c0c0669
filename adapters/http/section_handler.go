package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SubhajitChakrabort/ProfilePage/internal/application/service"
	sectionUC "github.com/SubhajitChakrabort/ProfilePage/internal/application/usecase/section"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/section"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/apperror"
)

type SectionHandler struct {
	useCase *sectionUC.SectionUseCase
	store   service.BinaryStore
}

func NewSectionHandler(uc *sectionUC.SectionUseCase, store service.BinaryStore) *SectionHandler {
	return &SectionHandler{useCase: uc, store: store}
}

func (h *SectionHandler) CreateSection(c *gin.Context) {
	var req CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("Section name is required", err))
		return
	}

	s, err := h.useCase.Create(c.Request.Context(), sectionUC.CreateSectionInput{
		ProfileID: req.ProfileID,
		Name:      req.Name,
		Icon:      req.Icon,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Section created successfully", "section": s})
}

func (h *SectionHandler) ListSections(c *gin.Context) {
	sections, err := h.useCase.List(c.Request.Context(), c.Query("profileId"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, sections)
}

func (h *SectionHandler) UpdateSection(c *gin.Context) {
	sectionID, err := pathID(c, "sectionId")
	if err != nil {
		c.Error(err)
		return
	}
	var req UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	if err := h.useCase.Update(c.Request.Context(), sectionID, req.ProfileID, req.Name, req.Icon); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Section updated successfully"})
}

func (h *SectionHandler) DeleteSection(c *gin.Context) {
	sectionID, err := pathID(c, "sectionId")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.useCase.Delete(c.Request.Context(), sectionID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Section deleted successfully"})
}

// CreateItem accepts up to the batch limit of files and creates one item per
// file, all sharing the submitted title, icon and description. Without files
// a single item is created.
func (h *SectionHandler) CreateItem(c *gin.Context) {
	sectionID, err := strconv.ParseInt(c.PostForm("sectionId"), 10, 64)
	if err != nil {
		c.Error(apperror.NewInvalidInput("sectionId is required", err))
		return
	}

	files, err := formFiles(c, h.store, "files")
	if err != nil {
		c.Error(err)
		return
	}

	base := sectionUC.ItemInput{
		SectionID:   sectionID,
		Title:       c.PostForm("title"),
		Icon:        c.PostForm("icon"),
		Description: c.PostForm("description"),
	}

	var items []*section.Item
	if len(files) == 0 {
		it, err := h.useCase.AddItem(c.Request.Context(), base)
		if err != nil {
			c.Error(err)
			return
		}
		items = append(items, it)
	}
	for i, f := range files {
		in := base
		in.Attachment = f
		it, err := h.useCase.AddItem(c.Request.Context(), in)
		if err != nil {
			discard(h.store, files[i:]...)
			c.Error(err)
			return
		}
		items = append(items, it)
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Items added successfully", "items": items})
}

func (h *SectionHandler) ListItems(c *gin.Context) {
	sectionID, err := strconv.ParseInt(c.Query("sectionId"), 10, 64)
	if err != nil {
		c.Error(apperror.NewInvalidInput("sectionId is required", err))
		return
	}
	items, err := h.useCase.ListItems(c.Request.Context(), sectionID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *SectionHandler) UpdateItem(c *gin.Context) {
	itemID, err := pathID(c, "itemId")
	if err != nil {
		c.Error(err)
		return
	}
	file, err := formFile(c, h.store, "files")
	if err != nil {
		c.Error(err)
		return
	}

	input := sectionUC.UpdateItemInput{
		ItemID:      itemID,
		Title:       c.PostForm("title"),
		Icon:        c.PostForm("icon"),
		Description: c.PostForm("description"),
		Attachment:  file,
	}
	if err := h.useCase.UpdateItem(c.Request.Context(), input); err != nil {
		discard(h.store, file)
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item updated successfully"})
}

func (h *SectionHandler) DeleteItem(c *gin.Context) {
	itemID, err := pathID(c, "itemId")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.useCase.DeleteItem(c.Request.Context(), itemID); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
