package models

// Workshop is a physical space hosting activities.
type Workshop struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"uniqueIndex;not null;size:200" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	Size        float64 `json:"size"`

	Activities []Activity `json:"activities,omitempty" gorm:"foreignKey:WorkshopID"`
}

// Activity is a category of craft offered at a workshop.
type Activity struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"uniqueIndex;not null;size:200" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	WorkshopID  *uint   `json:"workshop_id" gorm:"index"`

	Workshop *Workshop `json:"workshop,omitempty" gorm:"foreignKey:WorkshopID"`
	Lessons  []Lesson  `json:"lessons,omitempty" gorm:"foreignKey:ActivityID"`
}

// Lesson is a course definition under an activity.
type Lesson struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Description *string `json:"description" gorm:"type:text" validate:"omitempty,max=1000"`
	ActivityID  *uint   `json:"activity_id" gorm:"index"`

	Activity *Activity `json:"activity,omitempty" gorm:"foreignKey:ActivityID"`
}

func (Workshop) TableName() string {
	return "workshops"
}

func (Activity) TableName() string {
	return "activities"
}

func (Lesson) TableName() string {
	return "lessons"
}
