package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
	Role         string `json:"role" gorm:"not null;default:user"` // user | admin
}

// Spot is a geotagged point of interest. CreatedBy is an email snapshot of
// the admin who created it, deliberately not a foreign key: deleting the
// account does not touch the spots it created.
type Spot struct {
	Id          string      `json:"id" gorm:"primaryKey;size:36"`
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	VisitedAt   time.Time   `json:"visitedAt"`
	CreatedBy   string      `json:"createdBy"`
	Images      []SpotImage `json:"images" gorm:"foreignKey:SpotId;references:Id"`
}

// SpotImage lives strictly inside its owning Spot. Url is a relative path
// into the blob store.
type SpotImage struct {
	Id     string `json:"id" gorm:"primaryKey;size:36"`
	SpotId string `json:"spotId" gorm:"index;not null"`
	Url    string `json:"url" gorm:"not null"`
}

// Setting is the singleton sign-up gate row. Read with first-or-default
// semantics, written with upsert semantics.
type Setting struct {
	Id          int  `json:"id" gorm:"primaryKey;autoIncrement"`
	AllowSignup bool `json:"allowSignup"`
}
