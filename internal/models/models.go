package models

import "time"

// Provider is the third-party identity source that authenticated a user.
type Provider string

const (
	ProviderGoogle   Provider = "Google"
	ProviderFacebook Provider = "Facebook"
)

// User is created on first successful third-party login.
// Email and Provider together are unique.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:100;not null;default:''" json:"name"`
	Email      string    `gorm:"size:255;not null;uniqueIndex:idx_user_email_provider" json:"email"`
	Phone      string    `gorm:"size:32;not null;default:''" json:"phone"`
	Occupation string    `gorm:"size:100;not null;default:''" json:"occupation"`
	Provider   Provider  `gorm:"size:20;not null;uniqueIndex:idx_user_email_provider" json:"type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Post is immutable after creation.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"index" json:"created"`
}

// Like records that a user liked a post. At most one per (post, user).
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_post_user" json:"user_id"`
	Post      Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
