package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID                int64       `json:"id" db:"id" example:"1"`                                    // Unique identifier for the user
	Email             string      `json:"email" db:"email" example:"sarah.johnson@university.edu"`   // Institutional email address
	Password          string      `json:"-" db:"password"`                                           // Hashed password (excluded from JSON)
	Name              string      `json:"name" db:"name" example:"Sarah Johnson"`                    // Display name
	Role              RoleType    `json:"role" db:"role" example:"student"`                          // student, admin or faculty
	Department        *string     `json:"department,omitempty" db:"department"`                      // Academic department (nullable)
	Year              *string     `json:"year,omitempty" db:"year" example:"3rd Year"`               // Study year (nullable)
	ProfilePicture    *string     `json:"profilePicture,omitempty" db:"profile_picture"`             // Profile picture URL (nullable)
	Phone             *string     `json:"phone,omitempty" db:"phone"`                                // Contact phone (nullable)
	DormRoom          *string     `json:"dormRoom,omitempty" db:"dorm_room"`                         // Dorm room (nullable)
	Rating            float64     `json:"rating" db:"rating" example:"4.8"`                          // Average transaction rating
	TotalTransactions int         `json:"totalTransactions" db:"total_transactions"`                 // Completed transaction count
	IsVerified        bool        `json:"isVerified" db:"is_verified"`                               // Whether the account passed admin verification
	IsActive          bool        `json:"isActive" db:"is_active"`                                   // False until approved, or after suspension
	SuspensionReason  *string     `json:"suspensionReason,omitempty" db:"suspension_reason"`         // Why the account was suspended (nullable)
	LastLoginAt       *time.Time  `json:"lastLoginAt,omitempty" db:"last_login_at"`                  // Timestamp of the last login (nullable)
	Preferences       Preferences `json:"preferences" db:"preferences"`                              // Notification/privacy preferences (JSONB)
	CreatedAt         time.Time   `json:"createdAt" db:"created_at" example:"2024-01-01T10:00:00Z"`  // Timestamp when the user was created
	UpdatedAt         time.Time   `json:"updatedAt" db:"updated_at" example:"2024-01-02T15:30:00Z"`  // Timestamp when the user was last updated
}

// Preferences holds per-user notification, privacy and UI settings.
// Stored as a JSONB column.
type Preferences struct {
	Notifications NotificationPreferences `json:"notifications"`
	Privacy       PrivacyPreferences      `json:"privacy"`
	Theme         string                  `json:"theme"`
	Language      string                  `json:"language"`
}

// NotificationPreferences controls which notification kinds a user receives
type NotificationPreferences struct {
	Messages      bool       `json:"messages"`
	Events        bool       `json:"events"`
	Transactions  bool       `json:"transactions"`
	Announcements bool       `json:"announcements"`
	QuietHours    QuietHours `json:"quietHours"`
}

// QuietHours is a daily window during which notifications are muted
type QuietHours struct {
	Start string `json:"start" example:"22:00"`
	End   string `json:"end" example:"08:00"`
}

// PrivacyPreferences controls profile visibility
type PrivacyPreferences struct {
	ProfileVisibility string `json:"profileVisibility" example:"university"` // public, university or private
	ShowContactInfo   bool   `json:"showContactInfo"`
	ShowActivity      bool   `json:"showActivity"`
}

// DefaultPreferences returns the preference block assigned to new accounts
func DefaultPreferences() Preferences {
	return Preferences{
		Notifications: NotificationPreferences{
			Messages:      true,
			Events:        true,
			Transactions:  true,
			Announcements: true,
			QuietHours:    QuietHours{Start: "22:00", End: "08:00"},
		},
		Privacy: PrivacyPreferences{
			ProfileVisibility: "university",
			ShowContactInfo:   true,
			ShowActivity:      true,
		},
		Theme:    "light",
		Language: "en",
	}
}
