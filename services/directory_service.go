package services

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/vincentbastille10/SpectraAIDirectory/models"
	"github.com/vincentbastille10/SpectraAIDirectory/repositories"
)

// homeLimit bounds the latest-listings block on the home endpoint.
const homeLimit = 6

type DirectoryService interface {
	GetLatest() ([]models.Tool, error)
	ListPublished(params models.ToolListParams) ([]models.Tool, int64, error)
	GetTool(key string) (*models.Tool, error)
	GetCategories() ([]string, error)
}

type directoryService struct {
	toolRepo     repositories.ToolRepository
	featuredSlug string
}

func NewDirectoryService(toolRepo repositories.ToolRepository, featuredSlug string) DirectoryService {
	return &directoryService{
		toolRepo:     toolRepo,
		featuredSlug: featuredSlug,
	}
}

func (s *directoryService) GetLatest() ([]models.Tool, error) {
	return s.toolRepo.GetLatestPublished(homeLimit)
}

func (s *directoryService) ListPublished(params models.ToolListParams) ([]models.Tool, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 20
	}
	return s.toolRepo.GetPublished(params, s.featuredSlug)
}

// GetTool resolves a numeric key by id and anything else by slug. Draft rows
// are indistinguishable from missing ones.
func (s *directoryService) GetTool(key string) (*models.Tool, error) {
	var (
		tool *models.Tool
		err  error
	)

	if id, parseErr := strconv.ParseUint(key, 10, 32); parseErr == nil {
		tool, err = s.toolRepo.GetByID(uint(id))
	} else {
		tool, err = s.toolRepo.GetBySlug(key)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "tool not found"}
		}
		return nil, err
	}

	if !tool.Published {
		return nil, models.ErrorNotFound{Message: "tool not found"}
	}

	return tool, nil
}

func (s *directoryService) GetCategories() ([]string, error) {
	return s.toolRepo.GetPublishedCategories()
}
