package model

// Score is the elapsed completion time of a participant, in whole seconds.
// A user owns at most one score; resubmitting overwrites it.
// swagger:model Score
type Score struct {
	UUIDBase
	UserID string `gorm:"type:varchar(36);not null;uniqueIndex" json:"userId"`
	Score  int    `gorm:"not null" json:"score"`
	User   User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Score) TableName() string {
	return "scores"
}
