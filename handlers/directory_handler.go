package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/vincentbastille10/SpectraAIDirectory/helper"
	"github.com/vincentbastille10/SpectraAIDirectory/models"
	"github.com/vincentbastille10/SpectraAIDirectory/services"
)

type DirectoryHandler struct {
	directoryService services.DirectoryService
	Helper           *helper.HTTPHelper
}

func NewDirectoryHandler(directoryService services.DirectoryService, h *helper.HTTPHelper) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService, Helper: h}
}

// Home returns the latest published listings for the landing page.
func (h *DirectoryHandler) Home(c *gin.Context) {
	tools, err := h.directoryService.GetLatest()
	if err != nil {
		h.Helper.SendError(c, err.Error(), h.Helper.EmptyJsonMap(), 500, `databaseError`)
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{"tools": tools})
}

// List returns the full or substring-filtered published directory.
func (h *DirectoryHandler) List(c *gin.Context) {
	var params models.ToolListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "Error ", err.Error())
		return
	}

	tools, total, err := h.directoryService.ListPublished(params)
	if err != nil {
		h.Helper.SendError(c, err.Error(), h.Helper.EmptyJsonMap(), 500, `databaseError`)
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{
		"tools":      tools,
		"pagination": h.Helper.GeneratePaging(c, params.Limit, params.Page, int(total)),
	})
}

// Detail resolves a single published listing by numeric id or slug.
func (h *DirectoryHandler) Detail(c *gin.Context) {
	tool, err := h.directoryService.GetTool(c.Param("key"))
	if err != nil {
		var notFound models.ErrorNotFound
		if errors.As(err, &notFound) {
			h.Helper.SendNotFoundError(c, err.Error(), h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendError(c, err.Error(), h.Helper.EmptyJsonMap(), 500, `databaseError`)
		return
	}

	h.Helper.SendSuccess(c, "Success", tool)
}

// Categories lists the distinct categories across published rows.
func (h *DirectoryHandler) Categories(c *gin.Context) {
	categories, err := h.directoryService.GetCategories()
	if err != nil {
		h.Helper.SendError(c, err.Error(), h.Helper.EmptyJsonMap(), 500, `databaseError`)
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{"categories": categories})
}
