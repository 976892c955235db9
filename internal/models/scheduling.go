package models

import "time"

// ScheduledLesson is one concrete occurrence of a lesson. StartTime is nil
// while the lesson is still collecting time-slot proposals; a non-nil
// StartTime means the lesson has been scheduled.
type ScheduledLesson struct {
	ID                uint       `json:"id" gorm:"primaryKey"`
	StartTime         *time.Time `json:"start_time"`
	DurationInMinutes int64      `json:"duration_in_minutes" gorm:"not null" validate:"required,min=1"`
	LessonID          uint       `json:"lesson_id" gorm:"not null;index"`
	InstructorID      *uint      `json:"instructor_id" gorm:"index"`

	Lesson            Lesson             `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`
	Instructor        *User              `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	ProposedTimeSlots []ProposedTimeSlot `json:"proposed_time_slots,omitempty" gorm:"foreignKey:ScheduledLessonID;constraint:OnDelete:CASCADE"`
}

// ProposedTimeSlot is a candidate start time for a scheduled lesson, open to
// voting. CreatedAt is assigned once at insert time and drives the
// notification cooldown accounting; it is never updated.
type ProposedTimeSlot struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	ProposedStartTime time.Time `json:"proposed_start_time" gorm:"not null"`
	ScheduledLessonID uint      `json:"scheduled_lesson_id" gorm:"not null;index"`
	CreatedAt         time.Time `json:"created_at" gorm:"autoCreateTime;<-:create"`

	ScheduledLesson *ScheduledLesson `json:"scheduled_lesson,omitempty" gorm:"foreignKey:ScheduledLessonID"`
	Votes           []Vote           `json:"votes,omitempty" gorm:"foreignKey:ProposedTimeSlotID;constraint:OnDelete:CASCADE"`
}

// Vote links one user to one proposed time slot.
type Vote struct {
	ID                 uint `json:"id" gorm:"primaryKey"`
	ProposedTimeSlotID uint `json:"proposed_time_slot_id" gorm:"column:time_slot_id;not null;index"`
	UserID             uint `json:"user_id" gorm:"not null;index"`

	ProposedTimeSlot *ProposedTimeSlot `json:"proposed_time_slot,omitempty" gorm:"foreignKey:ProposedTimeSlotID"`
	User             *User             `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// LessonUser records a user's interest in a lesson. Acquired means the
// interest has been fulfilled by a scheduled, time-confirmed lesson.
type LessonUser struct {
	ID       uint `json:"id" gorm:"primaryKey"`
	LessonID uint `json:"lesson_id" gorm:"not null;index"`
	UserID   uint `json:"user_id" gorm:"not null;index"`
	Acquired bool `json:"acquired" gorm:"not null;default:false"`

	Lesson *Lesson `json:"lesson,omitempty" gorm:"foreignKey:LessonID"`
	User   *User   `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (ScheduledLesson) TableName() string {
	return "scheduled_lessons"
}

func (ProposedTimeSlot) TableName() string {
	return "proposed_time_slots"
}

func (Vote) TableName() string {
	return "votes"
}

func (LessonUser) TableName() string {
	return "lesson_users"
}
