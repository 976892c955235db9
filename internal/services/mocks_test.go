package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/repositories"
)

// In-memory repository mocks used across the service tests. Only the
// behavior the services exercise is modeled; everything else is a plain
// map-backed CRUD.

func notFound(op string) error {
	return fmt.Errorf("%s: %w", op, repositories.ErrNotFound)
}

// ===== USER =====

type mockUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return fmt.Errorf("create user: %w", repositories.ErrDuplicateKey)
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, notFound("get user by id")
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, notFound("get user by email")
}

func (m *mockUserRepo) GetAll(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return notFound("update user")
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.users[id]; !ok {
		return notFound("delete user")
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

// ===== WORKSHOP =====

type mockWorkshopRepo struct {
	workshops map[uint]*models.Workshop
	nextID    uint
}

func newMockWorkshopRepo() *mockWorkshopRepo {
	return &mockWorkshopRepo{workshops: make(map[uint]*models.Workshop), nextID: 1}
}

func (m *mockWorkshopRepo) Create(_ context.Context, w *models.Workshop) error {
	w.ID = m.nextID
	m.nextID++
	m.workshops[w.ID] = w
	return nil
}

func (m *mockWorkshopRepo) GetByID(_ context.Context, id uint) (*models.Workshop, error) {
	w, ok := m.workshops[id]
	if !ok {
		return nil, notFound("get workshop by id")
	}
	return w, nil
}

func (m *mockWorkshopRepo) GetAll(_ context.Context) ([]models.Workshop, error) {
	out := make([]models.Workshop, 0, len(m.workshops))
	for _, w := range m.workshops {
		out = append(out, *w)
	}
	return out, nil
}

func (m *mockWorkshopRepo) Update(_ context.Context, w *models.Workshop) error {
	if _, ok := m.workshops[w.ID]; !ok {
		return notFound("update workshop")
	}
	m.workshops[w.ID] = w
	return nil
}

func (m *mockWorkshopRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.workshops[id]; !ok {
		return notFound("delete workshop")
	}
	delete(m.workshops, id)
	return nil
}

func (m *mockWorkshopRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.workshops)), nil
}

// ===== ACTIVITY =====

type mockActivityRepo struct {
	activities map[uint]*models.Activity
	nextID     uint
}

func newMockActivityRepo() *mockActivityRepo {
	return &mockActivityRepo{activities: make(map[uint]*models.Activity), nextID: 1}
}

func (m *mockActivityRepo) Create(_ context.Context, a *models.Activity) error {
	a.ID = m.nextID
	m.nextID++
	m.activities[a.ID] = a
	return nil
}

func (m *mockActivityRepo) GetByID(_ context.Context, id uint) (*models.Activity, error) {
	a, ok := m.activities[id]
	if !ok {
		return nil, notFound("get activity by id")
	}
	return a, nil
}

func (m *mockActivityRepo) GetAll(_ context.Context) ([]models.Activity, error) {
	out := make([]models.Activity, 0, len(m.activities))
	for _, a := range m.activities {
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockActivityRepo) GetByWorkshopID(_ context.Context, workshopID uint) ([]models.Activity, error) {
	var out []models.Activity
	for _, a := range m.activities {
		if a.WorkshopID != nil && *a.WorkshopID == workshopID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockActivityRepo) Update(_ context.Context, a *models.Activity) error {
	if _, ok := m.activities[a.ID]; !ok {
		return notFound("update activity")
	}
	m.activities[a.ID] = a
	return nil
}

func (m *mockActivityRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.activities[id]; !ok {
		return notFound("delete activity")
	}
	delete(m.activities, id)
	return nil
}

func (m *mockActivityRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.activities)), nil
}

// ===== LESSON =====

type mockLessonRepo struct {
	lessons map[uint]*models.Lesson
	nextID  uint
}

func newMockLessonRepo() *mockLessonRepo {
	return &mockLessonRepo{lessons: make(map[uint]*models.Lesson), nextID: 1}
}

func (m *mockLessonRepo) Create(_ context.Context, l *models.Lesson) error {
	l.ID = m.nextID
	m.nextID++
	m.lessons[l.ID] = l
	return nil
}

func (m *mockLessonRepo) GetByID(_ context.Context, id uint) (*models.Lesson, error) {
	l, ok := m.lessons[id]
	if !ok {
		return nil, notFound("get lesson by id")
	}
	return l, nil
}

func (m *mockLessonRepo) GetAll(_ context.Context) ([]models.Lesson, error) {
	out := make([]models.Lesson, 0, len(m.lessons))
	for _, l := range m.lessons {
		out = append(out, *l)
	}
	return out, nil
}

func (m *mockLessonRepo) GetByActivityID(_ context.Context, activityID uint) ([]models.Lesson, error) {
	var out []models.Lesson
	for _, l := range m.lessons {
		if l.ActivityID != nil && *l.ActivityID == activityID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (m *mockLessonRepo) Update(_ context.Context, l *models.Lesson) error {
	if _, ok := m.lessons[l.ID]; !ok {
		return notFound("update lesson")
	}
	m.lessons[l.ID] = l
	return nil
}

func (m *mockLessonRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.lessons[id]; !ok {
		return notFound("delete lesson")
	}
	delete(m.lessons, id)
	return nil
}

func (m *mockLessonRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.lessons)), nil
}

// ===== SCHEDULED LESSON =====

type mockScheduledLessonRepo struct {
	scheduledLessons map[uint]*models.ScheduledLesson
	nextID           uint
}

func newMockScheduledLessonRepo() *mockScheduledLessonRepo {
	return &mockScheduledLessonRepo{scheduledLessons: make(map[uint]*models.ScheduledLesson), nextID: 1}
}

func (m *mockScheduledLessonRepo) Create(_ context.Context, sl *models.ScheduledLesson) error {
	sl.ID = m.nextID
	m.nextID++
	m.scheduledLessons[sl.ID] = sl
	return nil
}

func (m *mockScheduledLessonRepo) GetByID(_ context.Context, id uint) (*models.ScheduledLesson, error) {
	sl, ok := m.scheduledLessons[id]
	if !ok {
		return nil, notFound("get scheduled lesson by id")
	}
	return sl, nil
}

func (m *mockScheduledLessonRepo) GetAll(_ context.Context) ([]models.ScheduledLesson, error) {
	out := make([]models.ScheduledLesson, 0, len(m.scheduledLessons))
	for _, sl := range m.scheduledLessons {
		out = append(out, *sl)
	}
	return out, nil
}

func (m *mockScheduledLessonRepo) FindUnscheduledByLessonIDs(_ context.Context, lessonIDs []uint) ([]models.ScheduledLesson, error) {
	idSet := make(map[uint]bool, len(lessonIDs))
	for _, id := range lessonIDs {
		idSet[id] = true
	}
	var out []models.ScheduledLesson
	for _, sl := range m.scheduledLessons {
		if sl.StartTime == nil && idSet[sl.LessonID] {
			out = append(out, *sl)
		}
	}
	return out, nil
}

func (m *mockScheduledLessonRepo) Update(_ context.Context, sl *models.ScheduledLesson) error {
	if _, ok := m.scheduledLessons[sl.ID]; !ok {
		return notFound("update scheduled lesson")
	}
	m.scheduledLessons[sl.ID] = sl
	return nil
}

func (m *mockScheduledLessonRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.scheduledLessons[id]; !ok {
		return notFound("delete scheduled lesson")
	}
	delete(m.scheduledLessons, id)
	return nil
}

func (m *mockScheduledLessonRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.scheduledLessons)), nil
}

// ===== PROPOSED TIME SLOT =====

type mockProposedTimeSlotRepo struct {
	slots  map[uint]*models.ProposedTimeSlot
	nextID uint

	// now stamps CreatedAt on insert, standing in for the database clock.
	now func() time.Time

	createErr error
}

func newMockProposedTimeSlotRepo(now func() time.Time) *mockProposedTimeSlotRepo {
	return &mockProposedTimeSlotRepo{
		slots:  make(map[uint]*models.ProposedTimeSlot),
		nextID: 1,
		now:    now,
	}
}

func (m *mockProposedTimeSlotRepo) Create(_ context.Context, slot *models.ProposedTimeSlot) error {
	if m.createErr != nil {
		return m.createErr
	}
	slot.ID = m.nextID
	m.nextID++
	slot.CreatedAt = m.now()
	m.slots[slot.ID] = slot
	return nil
}

func (m *mockProposedTimeSlotRepo) GetByID(_ context.Context, id uint) (*models.ProposedTimeSlot, error) {
	slot, ok := m.slots[id]
	if !ok {
		return nil, notFound("get proposed time slot by id")
	}
	return slot, nil
}

func (m *mockProposedTimeSlotRepo) GetAll(_ context.Context) ([]models.ProposedTimeSlot, error) {
	out := make([]models.ProposedTimeSlot, 0, len(m.slots))
	for _, slot := range m.slots {
		out = append(out, *slot)
	}
	return out, nil
}

func (m *mockProposedTimeSlotRepo) GetByScheduledLessonID(_ context.Context, scheduledLessonID uint) ([]models.ProposedTimeSlot, error) {
	var out []models.ProposedTimeSlot
	for _, slot := range m.slots {
		if slot.ScheduledLessonID == scheduledLessonID {
			out = append(out, *slot)
		}
	}
	return out, nil
}

func (m *mockProposedTimeSlotRepo) Update(_ context.Context, slot *models.ProposedTimeSlot) error {
	if _, ok := m.slots[slot.ID]; !ok {
		return notFound("update proposed time slot")
	}
	m.slots[slot.ID] = slot
	return nil
}

func (m *mockProposedTimeSlotRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.slots[id]; !ok {
		return notFound("delete proposed time slot")
	}
	delete(m.slots, id)
	return nil
}

func (m *mockProposedTimeSlotRepo) ExistsRecentForScheduledLesson(_ context.Context, scheduledLessonID uint, cutoff time.Time) (bool, error) {
	for _, slot := range m.slots {
		if slot.ScheduledLessonID == scheduledLessonID && !slot.CreatedAt.Before(cutoff) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockProposedTimeSlotRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.slots)), nil
}

// ===== VOTE =====

type mockVoteRepo struct {
	votes  map[uint]*models.Vote
	nextID uint
}

func newMockVoteRepo() *mockVoteRepo {
	return &mockVoteRepo{votes: make(map[uint]*models.Vote), nextID: 1}
}

func (m *mockVoteRepo) Create(_ context.Context, vote *models.Vote) error {
	vote.ID = m.nextID
	m.nextID++
	m.votes[vote.ID] = vote
	return nil
}

func (m *mockVoteRepo) GetByID(_ context.Context, id uint) (*models.Vote, error) {
	vote, ok := m.votes[id]
	if !ok {
		return nil, notFound("get vote by id")
	}
	return vote, nil
}

func (m *mockVoteRepo) GetAll(_ context.Context) ([]models.Vote, error) {
	out := make([]models.Vote, 0, len(m.votes))
	for _, v := range m.votes {
		out = append(out, *v)
	}
	return out, nil
}

func (m *mockVoteRepo) GetByTimeSlotID(_ context.Context, timeSlotID uint) ([]models.Vote, error) {
	var out []models.Vote
	for _, v := range m.votes {
		if v.ProposedTimeSlotID == timeSlotID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *mockVoteRepo) FindByUserAndTimeSlot(_ context.Context, userID, timeSlotID uint) (*models.Vote, error) {
	for _, v := range m.votes {
		if v.UserID == userID && v.ProposedTimeSlotID == timeSlotID {
			return v, nil
		}
	}
	return nil, notFound("find vote by user and time slot")
}

func (m *mockVoteRepo) Update(_ context.Context, vote *models.Vote) error {
	if _, ok := m.votes[vote.ID]; !ok {
		return notFound("update vote")
	}
	m.votes[vote.ID] = vote
	return nil
}

func (m *mockVoteRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.votes[id]; !ok {
		return notFound("delete vote")
	}
	delete(m.votes, id)
	return nil
}

func (m *mockVoteRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.votes)), nil
}

// ===== LESSON USER =====

type mockLessonUserRepo struct {
	lessonUsers map[uint]*models.LessonUser
	nextID      uint

	// interestedUsers overrides the join lookup per lesson id.
	interestedUsers map[uint][]models.User
	interestedErr   error
}

func newMockLessonUserRepo() *mockLessonUserRepo {
	return &mockLessonUserRepo{
		lessonUsers:     make(map[uint]*models.LessonUser),
		nextID:          1,
		interestedUsers: make(map[uint][]models.User),
	}
}

func (m *mockLessonUserRepo) Create(_ context.Context, lu *models.LessonUser) error {
	lu.ID = m.nextID
	m.nextID++
	m.lessonUsers[lu.ID] = lu
	return nil
}

func (m *mockLessonUserRepo) GetByID(_ context.Context, id uint) (*models.LessonUser, error) {
	lu, ok := m.lessonUsers[id]
	if !ok {
		return nil, notFound("get lesson user by id")
	}
	return lu, nil
}

func (m *mockLessonUserRepo) GetAll(_ context.Context) ([]models.LessonUser, error) {
	out := make([]models.LessonUser, 0, len(m.lessonUsers))
	for _, lu := range m.lessonUsers {
		out = append(out, *lu)
	}
	return out, nil
}

func (m *mockLessonUserRepo) GetByUserID(_ context.Context, userID uint) ([]models.LessonUser, error) {
	var out []models.LessonUser
	for _, lu := range m.lessonUsers {
		if lu.UserID == userID {
			out = append(out, *lu)
		}
	}
	return out, nil
}

func (m *mockLessonUserRepo) FindByUserAndLesson(_ context.Context, userID, lessonID uint) (*models.LessonUser, error) {
	for _, lu := range m.lessonUsers {
		if lu.UserID == userID && lu.LessonID == lessonID {
			return lu, nil
		}
	}
	return nil, notFound("find lesson user by user and lesson")
}

func (m *mockLessonUserRepo) FindInterestedUsers(_ context.Context, lessonID uint) ([]models.User, error) {
	if m.interestedErr != nil {
		return nil, m.interestedErr
	}
	return m.interestedUsers[lessonID], nil
}

func (m *mockLessonUserRepo) Update(_ context.Context, lu *models.LessonUser) error {
	if _, ok := m.lessonUsers[lu.ID]; !ok {
		return notFound("update lesson user")
	}
	m.lessonUsers[lu.ID] = lu
	return nil
}

func (m *mockLessonUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.lessonUsers[id]; !ok {
		return notFound("delete lesson user")
	}
	delete(m.lessonUsers, id)
	return nil
}

func (m *mockLessonUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.lessonUsers)), nil
}

// ===== AGGREGATE =====

type mockRepo struct {
	user             *mockUserRepo
	workshop         *mockWorkshopRepo
	activity         *mockActivityRepo
	lesson           *mockLessonRepo
	scheduledLesson  *mockScheduledLessonRepo
	proposedTimeSlot *mockProposedTimeSlotRepo
	vote             *mockVoteRepo
	lessonUser       *mockLessonUserRepo

	txErr error
}

func newMockRepo(now func() time.Time) *mockRepo {
	return &mockRepo{
		user:             newMockUserRepo(),
		workshop:         newMockWorkshopRepo(),
		activity:         newMockActivityRepo(),
		lesson:           newMockLessonRepo(),
		scheduledLesson:  newMockScheduledLessonRepo(),
		proposedTimeSlot: newMockProposedTimeSlotRepo(now),
		vote:             newMockVoteRepo(),
		lessonUser:       newMockLessonUserRepo(),
	}
}

func (m *mockRepo) User() repositories.UserRepository            { return m.user }
func (m *mockRepo) Workshop() repositories.WorkshopRepository    { return m.workshop }
func (m *mockRepo) Activity() repositories.ActivityRepository    { return m.activity }
func (m *mockRepo) Lesson() repositories.LessonRepository        { return m.lesson }
func (m *mockRepo) Vote() repositories.VoteRepository            { return m.vote }
func (m *mockRepo) LessonUser() repositories.LessonUserRepository {
	return m.lessonUser
}

func (m *mockRepo) ScheduledLesson() repositories.ScheduledLessonRepository {
	return m.scheduledLesson
}

func (m *mockRepo) ProposedTimeSlot() repositories.ProposedTimeSlotRepository {
	return m.proposedTimeSlot
}

func (m *mockRepo) WithTransaction(_ context.Context, fn func(repositories.Repository) error) error {
	if m.txErr != nil {
		return m.txErr
	}
	return fn(m)
}

func (m *mockRepo) Ping(_ context.Context) error { return nil }
func (m *mockRepo) Close() error                 { return nil }

// ===== MAILER =====

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// mockMailer records sends and can fail for selected recipients or for
// everyone.
type mockMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	failFor map[string]error
	failAll error
}

func newMockMailer() *mockMailer {
	return &mockMailer{failFor: make(map[string]error)}
}

func (m *mockMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failAll != nil {
		return m.failAll
	}
	if err, ok := m.failFor[to]; ok {
		return err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (m *mockMailer) sentTo() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.sent))
	for _, s := range m.sent {
		out = append(out, s.To)
	}
	return out
}
