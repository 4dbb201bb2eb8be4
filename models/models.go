package models

import "time"

// Project levels accepted by the catalogue.
var ProjectLevels = []string{"ND", "HND", "BSc", "MSc", "PhD"}

type Project struct {
	ProjectID     string    `json:"projectid" bson:"projectid"`
	Title         string    `json:"title" bson:"title"`
	Department    string    `json:"department" bson:"department"`
	Author        string    `json:"author,omitempty" bson:"author,omitempty"`
	Year          int       `json:"year" bson:"year"`
	PriceNGN      int       `json:"priceNGN" bson:"price_ngn"`
	Level         string    `json:"level" bson:"level"`
	Abstract      string    `json:"abstract,omitempty" bson:"abstract,omitempty"`
	ChapterOne    string    `json:"chapterOne,omitempty" bson:"chapter_one,omitempty"`
	Formats       []string  `json:"formats,omitempty" bson:"formats,omitempty"`
	Pages         int       `json:"pages,omitempty" bson:"pages,omitempty"`
	FileSize      string    `json:"fileSize,omitempty" bson:"file_size,omitempty"`
	ChaptersRange string    `json:"chaptersRange,omitempty" bson:"chapters_range,omitempty"`
	Includes      []string  `json:"includes,omitempty" bson:"includes,omitempty"`
	Downloads     int       `json:"downloads" bson:"downloads"`
	BannerPhoto   string    `json:"bannerPhoto,omitempty" bson:"banner_photo,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

type User struct {
	UserID            string    `json:"userid" bson:"userid"`
	Name              string    `json:"name,omitempty" bson:"name,omitempty"`
	Email             string    `json:"email" bson:"email"`
	Password          string    `json:"-" bson:"password"`
	Role              []string  `json:"role" bson:"role"`
	Status            string    `json:"status" bson:"status"` // Active | Suspended
	PurchasedProjects []string  `json:"purchasedProjects" bson:"purchased_projects"`
	CreatedAt         time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" bson:"updated_at"`
	LastLogin         time.Time `json:"last_login" bson:"last_login"`
	RefreshToken      string    `json:"-" bson:"refreshtoken,omitempty"`
	RefreshExpiry     time.Time `json:"-" bson:"refreshexp,omitempty"`
}

const (
	OrderPending   = "pending"
	OrderCompleted = "completed"
)

type Order struct {
	OrderID      string    `json:"orderid" bson:"orderid"`
	ProjectID    string    `json:"projectid" bson:"projectid"`
	ProjectTitle string    `json:"projectTitle" bson:"project_title"`
	UserID       string    `json:"userid" bson:"userid"`
	UserEmail    string    `json:"userEmail" bson:"user_email"`
	AmountNGN    int       `json:"amountNGN" bson:"amount_ngn"`
	Status       string    `json:"status" bson:"status"` // pending -> completed, one way
	OrderedAt    time.Time `json:"ordered_at" bson:"ordered_at"`
}

type Review struct {
	ReviewID   string    `json:"reviewid" bson:"reviewid"`
	ProjectID  string    `json:"projectid" bson:"projectid"`
	UserID     string    `json:"userid" bson:"userid"`
	UserName   string    `json:"userName" bson:"user_name"`
	Rating     int       `json:"rating" bson:"rating"`
	Comment    string    `json:"comment" bson:"comment"`
	IsApproved bool      `json:"isApproved" bson:"is_approved"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// DepartmentCount is the maintained counter document for one department.
type DepartmentCount struct {
	Name   string         `json:"name" bson:"name"`
	Count  int            `json:"count" bson:"count"`
	Levels map[string]int `json:"levels,omitempty" bson:"levels,omitempty"`
}

// Index is the payload published on the events channel.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id"`
	ItemType   string `json:"item_type"`
}
