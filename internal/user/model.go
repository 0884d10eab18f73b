// internal/user/model.go
package user

import "gorm.io/gorm"

// User is a staff account for the back office.
type User struct {
	gorm.Model
	Name              string `gorm:"size:255;not null" json:"name"`
	Email             string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash      string `gorm:"size:255;not null" json:"-"`
	IsAdmin           bool   `gorm:"not null;default:false" json:"isAdmin"`
	MustResetPassword bool   `gorm:"not null;default:false" json:"-"`
}
