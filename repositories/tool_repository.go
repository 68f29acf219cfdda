package repositories

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vincentbastille10/SpectraAIDirectory/models"
)

type ToolRepository interface {
	Create(tool *models.Tool) error
	GetByID(id uint) (*models.Tool, error)
	GetBySlug(slug string) (*models.Tool, error)
	GetBySessionID(sessionID string) (*models.Tool, error)
	GetPublished(params models.ToolListParams, featuredSlug string) ([]models.Tool, int64, error)
	GetLatestPublished(limit int) ([]models.Tool, error)
	GetAllPublished() ([]models.Tool, error)
	SetCheckoutSession(id uint, sessionID string) error
	GetPublishedCategories() ([]string, error)
	SlugExists(slug string) (bool, error)
	Publish(id uint) error
	DeleteDraft(id uint) (bool, error)
	DeleteStaleDrafts(olderThan time.Time) (int64, error)
}

type toolRepository struct {
	db *gorm.DB
}

func NewToolRepository(db *gorm.DB) ToolRepository {
	return &toolRepository{db: db}
}

func (r *toolRepository) Create(tool *models.Tool) error {
	return r.db.Create(tool).Error
}

func (r *toolRepository) GetByID(id uint) (*models.Tool, error) {
	var tool models.Tool
	err := r.db.First(&tool, id).Error
	return &tool, err
}

func (r *toolRepository) GetBySlug(slug string) (*models.Tool, error) {
	var tool models.Tool
	err := r.db.Where("slug = ?", slug).First(&tool).Error
	return &tool, err
}

func (r *toolRepository) GetBySessionID(sessionID string) (*models.Tool, error) {
	var tool models.Tool
	err := r.db.Where("checkout_session_id = ?", sessionID).First(&tool).Error
	return &tool, err
}

func (r *toolRepository) GetPublished(params models.ToolListParams, featuredSlug string) ([]models.Tool, int64, error) {
	var tools []models.Tool
	var total int64

	query := r.db.Model(&models.Tool{}).Where("is_published = ?", true)

	if params.Query != "" {
		like := "%" + params.Query + "%"
		query = query.Where(
			"name ILIKE ? OR url ILIKE ? OR short_description ILIKE ? OR long_description ILIKE ? OR category ILIKE ? OR tags ILIKE ?",
			like, like, like, like, like, like,
		)
	}

	query.Count(&total)

	if featuredSlug != "" {
		query = query.Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN slug = ? THEN 0 ELSE 1 END, created_at DESC",
			Vars:               []interface{}{featuredSlug},
			WithoutParentheses: true,
		}})
	} else {
		query = query.Order("created_at desc")
	}

	offset := (params.Page - 1) * params.Limit
	err := query.Offset(offset).Limit(params.Limit).Find(&tools).Error

	return tools, total, err
}

func (r *toolRepository) GetLatestPublished(limit int) ([]models.Tool, error) {
	var tools []models.Tool
	err := r.db.Where("is_published = ?", true).
		Order("created_at desc").
		Limit(limit).
		Find(&tools).Error
	return tools, err
}

func (r *toolRepository) GetAllPublished() ([]models.Tool, error) {
	var tools []models.Tool
	err := r.db.Where("is_published = ?", true).
		Order("created_at desc").
		Find(&tools).Error
	return tools, err
}

func (r *toolRepository) SetCheckoutSession(id uint, sessionID string) error {
	return r.db.Model(&models.Tool{}).Where("id = ?", id).Update("checkout_session_id", sessionID).Error
}

func (r *toolRepository) GetPublishedCategories() ([]string, error) {
	var categories []string
	err := r.db.Model(&models.Tool{}).
		Where("is_published = ? AND category <> ''", true).
		Distinct("category").
		Order("category asc").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *toolRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Tool{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Publish flips the row to published. Re-publishing an already-published row
// is a no-op at the SQL level, which keeps duplicate confirmations harmless.
func (r *toolRepository) Publish(id uint) error {
	return r.db.Model(&models.Tool{}).Where("id = ?", id).Update("is_published", true).Error
}

// DeleteDraft removes the row only while it is still unpublished and reports
// whether anything was deleted.
func (r *toolRepository) DeleteDraft(id uint) (bool, error) {
	result := r.db.Where("id = ? AND is_published = ?", id, false).Delete(&models.Tool{})
	return result.RowsAffected > 0, result.Error
}

func (r *toolRepository) DeleteStaleDrafts(olderThan time.Time) (int64, error) {
	result := r.db.Where("is_published = ? AND created_at < ?", false, olderThan).Delete(&models.Tool{})
	return result.RowsAffected, result.Error
}
