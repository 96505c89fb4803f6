// Package models defines the persistent entities: users own contacts,
// contacts own records.
package models

import (
	"time"
)

// RecordCategory is the fixed set of record classifications.
type RecordCategory string

const (
	CategoryCommunications RecordCategory = "Communications"
	CategoryNicknames      RecordCategory = "Nicknames"
	CategoryMemories       RecordCategory = "Memories"
	CategoryPreferences    RecordCategory = "Preferences"
	CategoryPlan           RecordCategory = "Plan"
	CategoryOther          RecordCategory = "Other"
)

// AllCategories lists every valid category, in display order.
func AllCategories() []RecordCategory {
	return []RecordCategory{
		CategoryCommunications,
		CategoryNicknames,
		CategoryMemories,
		CategoryPreferences,
		CategoryPlan,
		CategoryOther,
	}
}

// ParseCategory converts a free-form string to a RecordCategory.
// The second return value reports whether the value is in the enumeration.
func ParseCategory(s string) (RecordCategory, bool) {
	for _, c := range AllCategories() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// CategoryNames returns the valid category values as plain strings.
func CategoryNames() []string {
	cats := AllCategories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	return names
}

type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Email          string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username       string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	HashedPassword string     `gorm:"size:255;not null" json:"-"`
	FullName       *string    `gorm:"size:100" json:"full_name"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`

	Contacts []Contact `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type Contact struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:100;index;not null" json:"name"`
	Description *string    `gorm:"type:text" json:"description"`
	AvatarKey   *string    `gorm:"size:500" json:"avatar_key"`
	UserID      uint       `gorm:"index;not null" json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`

	Records []Record `gorm:"foreignKey:ContactID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type Record struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Category  RecordCategory `gorm:"size:32;index;not null" json:"category"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	ContactID uint           `gorm:"index;not null" json:"contact_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt *time.Time     `json:"updated_at"`

	Contact *Contact `gorm:"foreignKey:ContactID" json:"-"`
}
