package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserStatus is the account approval state
type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusApproved UserStatus = "approved"
	UserStatusRejected UserStatus = "rejected"
)

// IsValid checks if the status is valid
func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusPending, UserStatusApproved, UserStatusRejected:
		return true
	}
	return false
}

// User represents a registered staff account. Accounts start pending and an
// admin actor transitions them to approved or rejected.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"type:text;not null"` // Never expose in JSON
	FullName     string    `json:"full_name" gorm:"type:varchar(255);not null"`
	Title        string    `json:"title,omitempty" gorm:"type:varchar(255)"`
	Office       string    `json:"office,omitempty" gorm:"type:varchar(255)"`
	Purpose      string    `json:"purpose,omitempty" gorm:"type:text"`

	Status     UserStatus `json:"status" gorm:"type:varchar(20);default:'pending';not null"`
	ApprovedAt *time.Time `json:"approved_at,omitempty" gorm:"type:timestamp"`
	ApprovedBy string     `json:"approved_by,omitempty" gorm:"type:varchar(255)"`

	LastLogin  *time.Time `json:"last_login,omitempty" gorm:"type:timestamp"`
	LoginCount int        `json:"login_count" gorm:"default:0;not null"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewUser creates a pending user with default values
func NewUser(email, passwordHash, fullName, title, office, purpose string) *User {
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Title:        title,
		Office:       office,
		Purpose:      purpose,
		Status:       UserStatusPending,
	}
}

// Approve transitions a pending account to approved
func (u *User) Approve(approvedBy string) {
	now := time.Now()
	u.Status = UserStatusApproved
	u.ApprovedAt = &now
	u.ApprovedBy = approvedBy
}

// Reject transitions a pending account to rejected
func (u *User) Reject(rejectedBy string) {
	now := time.Now()
	u.Status = UserStatusRejected
	u.ApprovedAt = &now
	u.ApprovedBy = rejectedBy
}

// RecordLogin updates login tracking fields
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLogin = &now
	u.LoginCount++
}

// CanLogin checks whether the account is approved for access
func (u *User) CanLogin() bool {
	return u.Status == UserStatusApproved
}

// PublicUser returns a user with sensitive fields removed
type PublicUser struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	Title      string     `json:"title,omitempty"`
	Office     string     `json:"office,omitempty"`
	Purpose    string     `json:"purpose,omitempty"`
	Status     UserStatus `json:"status"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	LoginCount int        `json:"login_count"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToPublic converts User to PublicUser
func (u *User) ToPublic() *PublicUser {
	return &PublicUser{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Title:      u.Title,
		Office:     u.Office,
		Purpose:    u.Purpose,
		Status:     u.Status,
		LastLogin:  u.LastLogin,
		LoginCount: u.LoginCount,
		CreatedAt:  u.CreatedAt,
	}
}
