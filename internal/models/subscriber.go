package models

// SubscriberModel manages newsletter email signups.
type SubscriberModel struct {
	Base
	Email string `json:"email" gorm:"uniqueIndex;size:100;not null"`
}

func (SubscriberModel) TableName() string { return "newsletter_subscribers" }
