package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"prepverse/answer-evaluator/internal/models"
)

type ArticleRepository interface {
	Create(draft *models.ArticleDraft) error
	FindByID(id uuid.UUID) (*models.ArticleDraft, error)
	FindRecent(limit int) ([]models.ArticleDraft, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create implements ArticleRepository.
func (r *articleRepository) Create(draft *models.ArticleDraft) error {
	if err := r.db.Create(draft).Error; err != nil {
		return fmt.Errorf("failed to create article draft: %w", err)
	}

	return nil
}

// FindByID implements ArticleRepository.
func (r *articleRepository) FindByID(id uuid.UUID) (*models.ArticleDraft, error) {
	var draft models.ArticleDraft
	if err := r.db.Where("id = ?", id).First(&draft).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("article draft not found")
		}

		return nil, fmt.Errorf("failed to find article draft: %w", err)
	}

	return &draft, nil
}

// FindRecent implements ArticleRepository.
func (r *articleRepository) FindRecent(limit int) ([]models.ArticleDraft, error) {
	var drafts []models.ArticleDraft
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&drafts).Error; err != nil {
		return nil, fmt.Errorf("failed to list article drafts: %w", err)
	}

	return drafts, nil
}
