package model

import (
	"time"
)

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
	Admin   UserRole = "admin"
)

// swagger:model User
type User struct {
	BaseModel
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('student','teacher','admin');default:'student'" json:"role"`
	SchoolID  *uint     `gorm:"index" json:"schoolId,omitempty"`
	School    *School   `gorm:"foreignKey:SchoolID" json:"school,omitempty"`
	Grade     int       `gorm:"default:8" json:"grade"` // LGS is taken in grade 8
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// swagger:model School
type School struct {
	BaseModel
	Name string `gorm:"size:255;not null" json:"name"`
	City string `gorm:"size:100" json:"city"`
}

func (School) TableName() string {
	return "schools"
}
