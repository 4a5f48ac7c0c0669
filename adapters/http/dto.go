package http

import (
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/content"
)

// Profile text fields arrive as multipart form values alongside the optional
// picture and cover parts, so they are read via PostForm rather than bound.

type CreateSectionRequest struct {
	ProfileID string `json:"profileId"`
	Name      string `json:"name" binding:"required"`
	Icon      string `json:"icon"`
}

type UpdateSectionRequest struct {
	ProfileID string `json:"profileId"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
}

type ReorderImagesRequest struct {
	ProfileID string               `json:"profileId"`
	Images    []content.ImageOrder `json:"images" binding:"required,min=1,dive"`
}
