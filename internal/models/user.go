package models

import "time"

// AdminUserModel is an administrator account for the admin panel.
// Passwords are stored as bcrypt hashes, never in plaintext.
type AdminUserModel struct {
	Base
	Username string `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Password string `json:"-"        gorm:"size:255;not null"`
}

func (AdminUserModel) TableName() string { return "admin_users" }

// AdminSession tracks signed-in admin sessions so logout can revoke them.
type AdminSession struct {
	Base
	UserID    uint       `json:"user_id"    gorm:"index;not null"`
	IP        string     `json:"ip"`
	UA        string     `json:"ua"         gorm:"type:text"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"index;not null"`
	RevokedAt *time.Time `json:"revoked_at" gorm:"index"`
}

func (AdminSession) TableName() string { return "admin_sessions" }
