package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Account represents a registered user. The username is unique and never
// changes once set; profile fields are optional.
type Account struct {
	ID          uint            `json:"id" db:"id" gorm:"primaryKey"`
	Username    string          `json:"username" db:"username" gorm:"type:varchar(150);not null;uniqueIndex"`
	FirstName   string          `json:"first_name,omitempty" db:"first_name" gorm:"type:varchar(150)"`
	LastName    string          `json:"last_name,omitempty" db:"last_name" gorm:"type:varchar(150)"`
	Surname     string          `json:"surname,omitempty" db:"surname" gorm:"type:varchar(30)"`
	DateOfBirth *datatypes.Date `json:"date_of_birth,omitempty" db:"date_of_birth"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`

	Blog *Blog `json:"blog,omitempty" gorm:"foreignKey:AccountID;references:ID;constraint:OnDelete:CASCADE"`
}

// FullName joins first name, last name and patronymic, skipping blanks.
func (a Account) FullName() string {
	var parts []string
	for _, part := range []string{a.FirstName, a.LastName, a.Surname} {
		if part != "" {
			parts = append(parts, strings.ToUpper(part[:1])+part[1:])
		}
	}
	return strings.Join(parts, " ")
}
