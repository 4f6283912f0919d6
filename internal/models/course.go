package models

import "time"

// Course groups assignments, participants and the admission criteria
type Course struct {
	ID        string    `json:"id" gorm:"primaryKey;size:255"`
	Title     string    `json:"title" gorm:"not null;size:200"`
	Semester  string    `json:"semester" gorm:"size:50"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}
