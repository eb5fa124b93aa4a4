package entity

import "database/sql"

type User struct {
	Base
	Name            string `gorm:"uniqueIndex"`
	DisplayName     string
	Bio             string
	ProfilePicture  string
	PinnedMessageID sql.NullInt64
}
