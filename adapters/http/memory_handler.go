package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SubhajitChakrabort/ProfilePage/internal/application/service"
	memoryUC "github.com/SubhajitChakrabort/ProfilePage/internal/application/usecase/memory"
)

type MemoryHandler struct {
	useCase *memoryUC.MemoryUseCase
	store   service.BinaryStore
}

func NewMemoryHandler(uc *memoryUC.MemoryUseCase, store service.BinaryStore) *MemoryHandler {
	return &MemoryHandler{useCase: uc, store: store}
}

func (h *MemoryHandler) ListMemories(c *gin.Context) {
	memories, err := h.useCase.List(c.Request.Context(), c.Query("profileId"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, memories)
}

func (h *MemoryHandler) UploadMemory(c *gin.Context) {
	file, err := formFile(c, h.store, "memory")
	if err != nil {
		c.Error(err)
		return
	}

	input := memoryUC.UploadInput{
		ProfileID:  c.PostForm("profileId"),
		Caption:    c.PostForm("caption"),
		Attachment: file,
	}
	m, err := h.useCase.Upload(c.Request.Context(), input)
	if err != nil {
		discard(h.store, file)
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Memory uploaded successfully", "memory": m})
}

func (h *MemoryHandler) DeleteMemory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.useCase.Delete(c.Request.Context(), id, c.Query("profileId")); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Memory deleted successfully"})
}
