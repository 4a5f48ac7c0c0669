package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/content"
	"github.com/SubhajitChakrabort/ProfilePage/internal/domain/media"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/logger"
)

type Handlers struct {
	Profile *ProfileHandler
	Content *ContentHandler
	Section *SectionHandler
	Memory  *MemoryHandler
	File    *FileHandler
}

func SetupRouter(h Handlers, log logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log), ErrorMiddleware(log))
	router.MaxMultipartMemory = media.MaxUploadSize

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		profile := api.Group("/profile")
		{
			profile.POST("/create", h.Profile.CreateProfile)
			profile.PUT("", h.Profile.UpdateProfile)
			profile.POST("/picture", h.Profile.UpdateProfilePicture)
			profile.POST("/cover", h.Profile.UpdateCoverImage)
			profile.GET("/username/:username", h.Profile.GetByUsername)
			profile.GET("/:profileId", h.Profile.GetByProfileID)
		}

		contentGroup := api.Group("/content")
		{
			for _, cat := range content.Categories() {
				contentGroup.POST("/"+cat.Name, h.Content.CreateEntry(cat))
				contentGroup.PUT("/"+cat.Name+"/:id", h.Content.UpdateEntry(cat))
				contentGroup.DELETE("/"+cat.Name+"/:id", h.Content.DeleteEntry(cat))
			}

			contentGroup.POST("/skills/:id/images", h.Content.AddSkillImage)
			contentGroup.GET("/skills/:id/images", h.Content.ListSkillImages)
			contentGroup.PUT("/skills/:id/images/order", h.Content.ReorderSkillImages)
			contentGroup.DELETE("/skills/:id/images/:imageId", h.Content.DeleteSkillImage)
		}

		sections := api.Group("/sections")
		{
			sections.POST("/section", h.Section.CreateSection)
			sections.GET("/sections", h.Section.ListSections)
			sections.PUT("/section/:sectionId", h.Section.UpdateSection)
			sections.DELETE("/section/:sectionId", h.Section.DeleteSection)

			sections.POST("/section/item", h.Section.CreateItem)
			sections.GET("/section/items", h.Section.ListItems)
			sections.PUT("/section/item/:itemId", h.Section.UpdateItem)
			sections.DELETE("/section/item/:itemId", h.Section.DeleteItem)
		}

		memories := api.Group("/memories")
		{
			memories.GET("", h.Memory.ListMemories)
			memories.POST("", h.Memory.UploadMemory)
			memories.DELETE("/:id", h.Memory.DeleteMemory)
		}
	}

	router.GET("/uploads/:filename", h.File.ServeFile)

	return router
}
