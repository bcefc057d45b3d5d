package models

import "time"

// OptionCount is the fixed cardinality of the topic catalog. Ids run 1..12
// and never change at runtime; only title and description are editable.
const OptionCount = 12

type PreferenceOption struct {
	ID          int    `json:"id" gorm:"primaryKey" validate:"min=1,max=12"`
	Title       string `json:"title" gorm:"not null;size:200"`
	Description string `json:"description" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PreferenceOption) TableName() string {
	return "preference_options"
}

// OptionStats is the availability projection consumed by the selection UI:
// the first batch with room and its remaining seat count.
type OptionStats struct {
	Available bool `json:"available"`
	Batch     int  `json:"batch"`
	Remaining int  `json:"remaining"`
}
