package store

import (
	"context"
	"errors"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/models"

	"gorm.io/gorm"
)

type PostStore struct {
	db *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// FindPostByID loads a post together with its author.
func (s *PostStore) FindPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (s *PostStore) InsertPost(ctx context.Context, authorID uint, title, body string) (*models.Post, error) {
	post := models.Post{AuthorID: authorID, Title: title, Body: body}
	if err := s.db.WithContext(ctx).Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts returns posts from all authors, newest first.
func (s *PostStore) ListPosts(ctx context.Context, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (s *PostStore) ListPostsByAuthor(ctx context.Context, authorID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

func (s *PostStore) FindLike(ctx context.Context, postID, userID uint) (*models.Like, error) {
	var like models.Like
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		First(&like).Error
	if err != nil {
		return nil, translate(err)
	}
	return &like, nil
}

func (s *PostStore) IsLiked(ctx context.Context, postID, userID uint) (bool, error) {
	_, err := s.FindLike(ctx, postID, userID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// InsertLike relies on the (post_id, user_id) unique index, so two racing
// requests cannot both succeed.
func (s *PostStore) InsertLike(ctx context.Context, postID, userID uint) error {
	err := s.db.WithContext(ctx).Create(&models.Like{PostID: postID, UserID: userID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyLiked
	}
	return err
}

func (s *PostStore) DeleteLike(ctx context.Context, postID, userID uint) error {
	res := s.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotLiked
	}
	return nil
}

// ListLikers returns the users who liked a post, most recent like first.
func (s *PostStore) ListLikers(ctx context.Context, postID uint) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Joins("JOIN likes ON likes.user_id = users.id").
		Where("likes.post_id = ?", postID).
		Order("likes.created_at DESC, likes.id DESC").
		Find(&users).Error
	return users, err
}
