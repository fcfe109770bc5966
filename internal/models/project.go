package models

// ProjectModel is a portfolio project shown on the public site.
type ProjectModel struct {
	Base
	Image       *string `json:"image"       gorm:"size:255"`
	Name        string  `json:"name"        gorm:"size:100;not null"`
	Description string  `json:"description" gorm:"type:text;not null"`
}

func (ProjectModel) TableName() string { return "projects" }
