package model

import (
	"time"
)

// Category groups events and articles.
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Icon        *string   `gorm:"size:50" json:"icon"`
	Color       *string   `gorm:"size:20" json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Category) TableName() string {
	return "event_categories"
}

type Theme struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	Icon        *string   `gorm:"size:50" json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Theme) TableName() string {
	return "themes"
}

// Event is a scheduled activity. CategoryName and ThemeName are filled by
// the joined list and get queries only.
type Event struct {
	ID                   uint       `gorm:"primarykey" json:"id"`
	Title                string     `gorm:"size:200;not null" json:"title"`
	Description          string     `gorm:"type:text;not null" json:"description"`
	Location             string     `gorm:"size:255;not null" json:"location"`
	EventDate            time.Time  `gorm:"not null;index" json:"event_date"`
	EndDate              *time.Time `json:"end_date"`
	Capacity             int        `gorm:"not null;default:50" json:"capacity"`
	CurrentRegistrations int        `gorm:"default:0" json:"current_registrations"`
	OrganizerID          *uint      `json:"organizer_id"`
	CategoryID           uint       `gorm:"not null;index" json:"category_id"`
	ThemeID              *uint      `json:"theme_id"`
	ImageURL             *string    `gorm:"size:255" json:"image_url"`
	Status               string     `gorm:"size:50;default:planned;index" json:"status"`
	Visibility           string     `gorm:"size:50;default:public" json:"visibility"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`

	CategoryName *string `gorm:"->;-:migration" json:"category_name,omitempty"`
	ThemeName    *string `gorm:"->;-:migration" json:"theme_name,omitempty"`
}

func (Event) TableName() string {
	return "events"
}

// Registration is a participant's sign-up to an event. An email registers
// at most once per event.
type Registration struct {
	ID                  uint       `gorm:"primarykey" json:"id"`
	EventID             uint       `gorm:"not null;uniqueIndex:unique_registration" json:"event_id"`
	UserID              *uint      `json:"user_id"`
	Email               string     `gorm:"size:100;not null;uniqueIndex:unique_registration;index" json:"email"`
	FullName            string     `gorm:"size:100;not null" json:"full_name"`
	Phone               *string    `gorm:"size:20" json:"phone"`
	RegistrationDate    time.Time  `gorm:"autoCreateTime" json:"registration_date"`
	Status              string     `gorm:"size:50;default:registered" json:"status"`
	AttendanceConfirmed bool       `json:"attendance_confirmed"`
	AttendanceDate      *time.Time `json:"attendance_date"`
	CreatedAt           time.Time  `json:"created_at"`
}

func (Registration) TableName() string {
	return "event_registrations"
}

type Article struct {
	ID                 uint       `gorm:"primarykey" json:"id"`
	Title              string     `gorm:"size:255;not null" json:"title"`
	Slug               string     `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Content            string     `gorm:"type:text;not null" json:"content"`
	Excerpt            *string    `gorm:"size:500" json:"excerpt"`
	AuthorID           *uint      `json:"author_id"`
	AuthorName         string     `gorm:"size:100" json:"author_name"`
	CategoryID         *uint      `json:"category_id"`
	ThemeID            *uint      `json:"theme_id"`
	FeaturedImage      *string    `gorm:"size:255" json:"featured_image"`
	Status             string     `gorm:"size:50;default:draft;index" json:"status"`
	PublishedDate      *time.Time `gorm:"index" json:"published_date"`
	ViewsCount         int        `gorm:"default:0" json:"views_count"`
	IsTestimony        bool       `json:"is_testimony"`
	RequiresValidation bool       `json:"requires_validation"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	CategoryName *string `gorm:"->;-:migration" json:"category_name,omitempty"`
	ThemeName    *string `gorm:"->;-:migration" json:"theme_name,omitempty"`
}

func (Article) TableName() string {
	return "articles"
}

type Comment struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	ArticleID    uint      `gorm:"not null;index" json:"article_id"`
	UserID       *uint     `json:"user_id"`
	AuthorName   string    `gorm:"size:100;not null" json:"author_name"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	Status       string    `gorm:"size:50;default:pending;index" json:"status"`
	AIFlagStatus string    `gorm:"column:ai_flag_status;size:50;default:clean;index" json:"ai_flag_status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}

// HelpRequest is a request for assistance submitted through the public
// help-request form.
type HelpRequest struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	HelpType      string    `gorm:"size:100;not null;index" json:"help_type"`
	UrgencyLevel  string    `gorm:"size:50;not null" json:"urgency_level"`
	Situation     string    `gorm:"type:text;not null" json:"situation"`
	Location      *string   `gorm:"size:100" json:"location"`
	ContactMethod *string   `gorm:"size:100" json:"contact_method"`
	Status        string    `gorm:"size:50;default:en_attente;index" json:"status"`
	Responsable   *string   `gorm:"size:100" json:"responsable"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (HelpRequest) TableName() string {
	return "help_requests"
}

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&Category{},
		&Theme{},
		&Event{},
		&Registration{},
		&Article{},
		&Comment{},
		&HelpRequest{},
	}
}
