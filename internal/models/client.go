package models

// ClientModel is a client/testimonial entry shown on the public site.
type ClientModel struct {
	Base
	Image       *string `json:"image"       gorm:"size:255"`
	Name        string  `json:"name"        gorm:"size:100;not null"`
	Designation string  `json:"designation" gorm:"size:100"`
	Description string  `json:"description" gorm:"type:text"`
}

func (ClientModel) TableName() string { return "clients" }
