package models

import "time"

// Response DTOs returned by the REST and GraphQL surfaces. Entities are
// projected into these shapes so that lazy relations and credential hashes
// never leak into payloads.

type UserResponse struct {
	ID        uint     `json:"id"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	UserType  UserType `json:"user_type"`
}

type UserSummary struct {
	ID       uint     `json:"id"`
	Username string   `json:"username"`
	UserType UserType `json:"user_type"`
}

type WorkshopResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Size        float64 `json:"size"`
}

type ActivityResponse struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	Workshop    *WorkshopResponse `json:"workshop,omitempty"`
}

type LessonResponse struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	Activity    *ActivityResponse `json:"activity,omitempty"`
}

type VoteSummary struct {
	ID   uint        `json:"id"`
	User UserSummary `json:"user"`
}

type ProposedTimeSlotSummary struct {
	ID                uint          `json:"id"`
	ProposedStartTime time.Time     `json:"proposed_start_time"`
	Votes             []VoteSummary `json:"votes"`
}

type ScheduledLessonSummary struct {
	ID                uint           `json:"id"`
	StartTime         *time.Time     `json:"start_time"`
	DurationInMinutes int64          `json:"duration_in_minutes"`
	Lesson            LessonResponse `json:"lesson"`
}

type ScheduledLessonResponse struct {
	ID                uint                      `json:"id"`
	StartTime         *time.Time                `json:"start_time"`
	DurationInMinutes int64                     `json:"duration_in_minutes"`
	Lesson            LessonResponse            `json:"lesson"`
	Instructor        *UserResponse             `json:"instructor,omitempty"`
	ProposedTimeSlots []ProposedTimeSlotSummary `json:"proposed_time_slots"`
}

type ProposedTimeSlotResponse struct {
	ID                uint                    `json:"id"`
	ProposedStartTime time.Time               `json:"proposed_start_time"`
	ScheduledLesson   *ScheduledLessonSummary `json:"scheduled_lesson,omitempty"`
	Votes             []VoteSummary           `json:"votes"`
}

type VoteResponse struct {
	ID               uint                     `json:"id"`
	ProposedTimeSlot *ProposedTimeSlotSummary `json:"proposed_time_slot,omitempty"`
	User             UserSummary              `json:"user"`
}

type LessonUserResponse struct {
	ID       uint           `json:"id"`
	Lesson   LessonResponse `json:"lesson"`
	User     UserSummary    `json:"user"`
	Acquired bool           `json:"acquired"`
}

type SummaryResponse struct {
	TotalWorkshops        int64 `json:"total_workshops"`
	TotalActivities       int64 `json:"total_activities"`
	TotalLessons          int64 `json:"total_lessons"`
	TotalScheduledLessons int64 `json:"total_scheduled_lessons"`
	TotalUsers            int64 `json:"total_users"`
}

// ===== ENTITY -> DTO PROJECTIONS =====

func NewUserResponse(u *User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		UserType:  u.UserType,
	}
}

func NewUserSummary(u *User) UserSummary {
	if u == nil {
		return UserSummary{}
	}
	return UserSummary{
		ID:       u.ID,
		Username: u.Email,
		UserType: u.UserType,
	}
}

func NewWorkshopResponse(w *Workshop) *WorkshopResponse {
	if w == nil {
		return nil
	}
	return &WorkshopResponse{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Size:        w.Size,
	}
}

func NewActivityResponse(a *Activity) *ActivityResponse {
	if a == nil {
		return nil
	}
	return &ActivityResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Workshop:    NewWorkshopResponse(a.Workshop),
	}
}

func NewLessonResponse(l *Lesson) *LessonResponse {
	if l == nil {
		return nil
	}
	return &LessonResponse{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Activity:    NewActivityResponse(l.Activity),
	}
}

func NewVoteSummaries(votes []Vote) []VoteSummary {
	out := make([]VoteSummary, 0, len(votes))
	for i := range votes {
		out = append(out, VoteSummary{
			ID:   votes[i].ID,
			User: NewUserSummary(votes[i].User),
		})
	}
	return out
}

func NewProposedTimeSlotSummary(p *ProposedTimeSlot) ProposedTimeSlotSummary {
	return ProposedTimeSlotSummary{
		ID:                p.ID,
		ProposedStartTime: p.ProposedStartTime,
		Votes:             NewVoteSummaries(p.Votes),
	}
}

func NewScheduledLessonSummary(sl *ScheduledLesson) *ScheduledLessonSummary {
	if sl == nil {
		return nil
	}
	summary := &ScheduledLessonSummary{
		ID:                sl.ID,
		StartTime:         sl.StartTime,
		DurationInMinutes: sl.DurationInMinutes,
	}
	if lesson := NewLessonResponse(&sl.Lesson); lesson != nil {
		summary.Lesson = *lesson
	}
	return summary
}

func NewScheduledLessonResponse(sl *ScheduledLesson) *ScheduledLessonResponse {
	if sl == nil {
		return nil
	}
	resp := &ScheduledLessonResponse{
		ID:                sl.ID,
		StartTime:         sl.StartTime,
		DurationInMinutes: sl.DurationInMinutes,
		Instructor:        NewUserResponse(sl.Instructor),
		ProposedTimeSlots: make([]ProposedTimeSlotSummary, 0, len(sl.ProposedTimeSlots)),
	}
	if lesson := NewLessonResponse(&sl.Lesson); lesson != nil {
		resp.Lesson = *lesson
	}
	for i := range sl.ProposedTimeSlots {
		resp.ProposedTimeSlots = append(resp.ProposedTimeSlots, NewProposedTimeSlotSummary(&sl.ProposedTimeSlots[i]))
	}
	return resp
}

func NewProposedTimeSlotResponse(p *ProposedTimeSlot) *ProposedTimeSlotResponse {
	if p == nil {
		return nil
	}
	return &ProposedTimeSlotResponse{
		ID:                p.ID,
		ProposedStartTime: p.ProposedStartTime,
		ScheduledLesson:   NewScheduledLessonSummary(p.ScheduledLesson),
		Votes:             NewVoteSummaries(p.Votes),
	}
}

func NewVoteResponse(v *Vote) *VoteResponse {
	if v == nil {
		return nil
	}
	return &VoteResponse{
		ID:               v.ID,
		ProposedTimeSlot: newVoteTimeSlotSummary(v.ProposedTimeSlot),
		User:             NewUserSummary(v.User),
	}
}

func newVoteTimeSlotSummary(p *ProposedTimeSlot) *ProposedTimeSlotSummary {
	if p == nil {
		return nil
	}
	summary := NewProposedTimeSlotSummary(p)
	return &summary
}

func NewLessonUserResponse(lu *LessonUser) *LessonUserResponse {
	if lu == nil {
		return nil
	}
	resp := &LessonUserResponse{
		ID:       lu.ID,
		User:     NewUserSummary(lu.User),
		Acquired: lu.Acquired,
	}
	if lesson := NewLessonResponse(lu.Lesson); lesson != nil {
		resp.Lesson = *lesson
	}
	return resp
}

// ===== GENERIC HTTP ENVELOPES =====

type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
