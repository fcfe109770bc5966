package models

// ContactMessageModel stores a contact form submission.
// Messages are insert-only; the admin panel reads them read-only.
type ContactMessageModel struct {
	Base
	FullName string `json:"full_name" gorm:"size:100;not null"`
	Email    string `json:"email"     gorm:"size:100;not null"`
	Mobile   string `json:"mobile"    gorm:"size:20"`
	City     string `json:"city"      gorm:"size:100"`
}

func (ContactMessageModel) TableName() string { return "contact_messages" }
