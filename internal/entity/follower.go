package entity

type Follower struct {
	Base
	UserID   string `gorm:"uniqueIndex:idx_followers_user_target"`
	TargetID string `gorm:"uniqueIndex:idx_followers_user_target"`
}
