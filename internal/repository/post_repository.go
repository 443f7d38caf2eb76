package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gopherblog/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.Date.IsZero() {
		post.Date = time.Now()
	}
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.Where("id = ?", id).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

// List returns a page of posts in insertion order.
func (r *PostRepository) List(offset, limit int) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.Order("created_at ASC").Offset(offset).Limit(limit).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Post{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count posts failed: %w", err)
	}
	return count, nil
}

// UpdateMessage replaces the message of the post with the given id and
// returns the updated row, or nil when no such post exists.
func (r *PostRepository) UpdateMessage(id, message string) (*model.Post, error) {
	post, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}
	if err := r.db.Model(post).Update("message", message).Error; err != nil {
		return nil, fmt.Errorf("update post message failed: %w", err)
	}
	return post, nil
}

// DeleteByID removes the post permanently and returns the deleted row, or
// nil when no such post exists.
func (r *PostRepository) DeleteByID(id string) (*model.Post, error) {
	post, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, nil
	}
	if err := r.db.Where("id = ?", id).Delete(&model.Post{}).Error; err != nil {
		return nil, fmt.Errorf("delete post failed: %w", err)
	}
	return post, nil
}
