package model

import "time"

// swagger:model BlogPost
type BlogPost struct {
	UUIDBase
	Title       string     `gorm:"size:255;not null" json:"title"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Excerpt     string     `gorm:"size:500" json:"excerpt"`
	Body        string     `gorm:"type:longtext" json:"body"`
	CoverImage  string     `gorm:"size:255" json:"coverImage"`
	AuthorName  string     `gorm:"size:100" json:"authorName"`
	Published   bool       `gorm:"default:false;index" json:"published"`
	PublishedAt *time.Time `json:"publishedAt"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

// swagger:model FAQ
type FAQ struct {
	BaseModel
	Question  string `gorm:"size:500;not null" json:"question"`
	Answer    string `gorm:"type:text;not null" json:"answer"`
	Category  string `gorm:"size:100;index" json:"category"`
	Order     int    `gorm:"default:0" json:"order"`
	Published bool   `gorm:"default:true" json:"published"`
}

func (FAQ) TableName() string {
	return "faqs"
}

// swagger:model JobOpening
type JobOpening struct {
	BaseModel
	Title       string `gorm:"size:255;not null" json:"title"`
	Department  string `gorm:"size:100" json:"department"`
	Location    string `gorm:"size:100" json:"location"`
	Type        string `gorm:"size:50;default:'full_time'" json:"type"`
	Description string `gorm:"type:text" json:"description"`
	Active      bool   `gorm:"default:true;index" json:"active"`
}

func (JobOpening) TableName() string {
	return "job_openings"
}

// swagger:model ContactMessage
type ContactMessage struct {
	BaseModel
	Name    string `gorm:"size:100;not null" json:"name"`
	Email   string `gorm:"size:100;not null" json:"email"`
	Subject string `gorm:"size:255" json:"subject"`
	Body    string `gorm:"type:text;not null" json:"body"`
	Handled bool   `gorm:"default:false;index" json:"handled"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
