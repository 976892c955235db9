package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/validator"
)

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time {
	return c.t
}

func (c *testClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type proposalFixture struct {
	repo   *mockRepo
	mailer *mockMailer
	clock  *testClock
	svc    ProposedTimeSlotService
}

// newProposalFixture seeds one unscheduled lesson occurrence with the given
// interested users and wires the service to a controllable clock.
func newProposalFixture(t *testing.T, interested []models.User) *proposalFixture {
	t.Helper()

	clock := &testClock{t: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	repo := newMockRepo(clock.Now)
	mailer := newMockMailer()

	lesson := &models.Lesson{Name: "Woodworking Basics"}
	if err := repo.lesson.Create(context.Background(), lesson); err != nil {
		t.Fatalf("seed lesson: %v", err)
	}
	scheduledLesson := &models.ScheduledLesson{
		DurationInMinutes: 90,
		LessonID:          lesson.ID,
		Lesson:            *lesson,
	}
	if err := repo.scheduledLesson.Create(context.Background(), scheduledLesson); err != nil {
		t.Fatalf("seed scheduled lesson: %v", err)
	}
	repo.lessonUser.interestedUsers[lesson.ID] = interested

	svc := NewProposedTimeSlotService(repo, mailer, testLogger(), validator.New(), NotificationConfig{
		FrontendURL: "http://localhost:3000",
		Cooldown:    30 * time.Minute,
	})
	svc.(*proposedTimeSlotService).now = clock.Now

	return &proposalFixture{repo: repo, mailer: mailer, clock: clock, svc: svc}
}

func (f *proposalFixture) createSlot(t *testing.T, start time.Time) *models.ProposedTimeSlotResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), CreateProposedTimeSlotRequest{
		ProposedStartTime: start,
		ScheduledLessonID: 1,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return resp
}

func TestProposedTimeSlotService_Create_NotifiesInterestedUsers(t *testing.T) {
	f := newProposalFixture(t, []models.User{
		{ID: 1, Email: "anna@example.com", FirstName: "Anna"},
		{ID: 2, Email: "kim@example.com"},
	})

	resp := f.createSlot(t, f.clock.Now().Add(48*time.Hour))
	if resp.ID == 0 {
		t.Error("expected persisted slot to have an id")
	}

	if got := len(f.mailer.sent); got != 2 {
		t.Fatalf("sent %d mails, want 2", got)
	}

	first := f.mailer.sent[0]
	if !strings.Contains(first.Subject, "Woodworking Basics") {
		t.Errorf("subject %q does not name the lesson", first.Subject)
	}
	if !strings.Contains(first.Body, "Hi Anna,") {
		t.Errorf("body does not greet user by first name:\n%s", first.Body)
	}
	if !strings.Contains(first.Body, "http://localhost:3000/scheduled-lessons/1") {
		t.Errorf("body missing deep link:\n%s", first.Body)
	}

	// No first name falls back to a generic greeting.
	if !strings.Contains(f.mailer.sent[1].Body, "Hi Student,") {
		t.Errorf("body missing fallback greeting:\n%s", f.mailer.sent[1].Body)
	}
}

func TestProposedTimeSlotService_Create_DebouncesWithinCooldown(t *testing.T) {
	f := newProposalFixture(t, []models.User{
		{ID: 1, Email: "anna@example.com", FirstName: "Anna"},
	})

	f.createSlot(t, f.clock.Now().Add(24*time.Hour))
	if got := len(f.mailer.sent); got != 1 {
		t.Fatalf("first proposal sent %d mails, want 1", got)
	}

	f.clock.Advance(10 * time.Minute)
	resp := f.createSlot(t, f.clock.Now().Add(48*time.Hour))

	if resp.ID == 0 {
		t.Error("suppressed notification must not block slot creation")
	}
	if got, _ := f.repo.proposedTimeSlot.Count(context.Background()); got != 2 {
		t.Errorf("persisted %d slots, want 2", got)
	}
	if got := len(f.mailer.sent); got != 1 {
		t.Errorf("sent %d mails after second proposal, want still 1", got)
	}
}

func TestProposedTimeSlotService_Create_ExactCooldownBoundaryStaysSilent(t *testing.T) {
	f := newProposalFixture(t, []models.User{
		{ID: 1, Email: "anna@example.com", FirstName: "Anna"},
	})

	f.createSlot(t, f.clock.Now().Add(24*time.Hour))
	// A proposal created exactly at the cutoff still counts as recent.
	f.clock.Advance(30 * time.Minute)
	f.createSlot(t, f.clock.Now().Add(48*time.Hour))

	if got := len(f.mailer.sent); got != 1 {
		t.Errorf("sent %d mails, want 1 (boundary proposal is still within the window)", got)
	}
}

func TestProposedTimeSlotService_Create_ZeroCooldownAlwaysNotifies(t *testing.T) {
	f := newProposalFixture(t, []models.User{
		{ID: 1, Email: "anna@example.com", FirstName: "Anna"},
	})
	f.svc.(*proposedTimeSlotService).config.Cooldown = 0

	f.createSlot(t, f.clock.Now().Add(24*time.Hour))
	f.clock.Advance(time.Minute)
	f.createSlot(t, f.clock.Now().Add(48*time.Hour))

	if got := len(f.mailer.sent); got != 2 {
		t.Errorf("sent %d mails, want 2 (debounce disabled)", got)
	}
}

func TestProposedTimeSlotService_Create_NotifiesAgainAfterCooldown(t *testing.T) {
	f := newProposalFixture(t, []models.User{
		{ID: 1, Email: "anna@example.com", FirstName: "Anna"},
	})

	f.createSlot(t, f.clock.Now().Add(24*time.Hour))
	f.clock.Advance(31 * time.Minute)
	f.createSlot(t, f.clock.Now().Add(48*time.Hour))

	if got := len(f.mailer.sent); got != 2 {
		t.Errorf("sent %d mails, want 2 (cooldown elapsed before second proposal)", got)
	}
}

func TestProposedTimeSlotService_Create_FullDebounceCycle(t *testing.T) {
	f := newProposalFixture(t, []models.User{
		{ID: 1, Email: "anna@example.com", FirstName: "Anna"},
		{ID: 2, Email: "kim@example.com", FirstName: "Kim"},
	})

	// First proposal in a quiet window notifies everyone.
	f.createSlot(t, f.clock.Now().Add(24*time.Hour))
	// A burst of follow-ups inside the window stays silent.
	for i := 0; i < 3; i++ {
		f.clock.Advance(5 * time.Minute)
		f.createSlot(t, f.clock.Now().Add(48*time.Hour))
	}
	if got := len(f.mailer.sent); got != 2 {
		t.Fatalf("burst sent %d mails, want 2", got)
	}

	// Once the window (measured from the latest proposal) passes, the next
	// proposal notifies again.
	f.clock.Advance(31 * time.Minute)
	f.createSlot(t, f.clock.Now().Add(72*time.Hour))

	if got := len(f.mailer.sent); got != 4 {
		t.Errorf("sent %d mails total, want 4", got)
	}
	if got, _ := f.repo.proposedTimeSlot.Count(context.Background()); got != 5 {
		t.Errorf("persisted %d slots, want 5", got)
	}
}

func TestProposedTimeSlotService_Create_NoInterestedUsers(t *testing.T) {
	f := newProposalFixture(t, nil)

	resp := f.createSlot(t, f.clock.Now().Add(24*time.Hour))
	if resp.ID == 0 {
		t.Error("expected slot to be created")
	}
	if got := len(f.mailer.sent); got != 0 {
		t.Errorf("sent %d mails with no interested users, want 0", got)
	}
}

func TestProposedTimeSlotService_Create_ContinuesAfterSendFailure(t *testing.T) {
	f := newProposalFixture(t, []models.User{
		{ID: 1, Email: "anna@example.com", FirstName: "Anna"},
		{ID: 2, Email: "broken@example.com", FirstName: "Pat"},
		{ID: 3, Email: "kim@example.com", FirstName: "Kim"},
	})
	f.mailer.failFor["broken@example.com"] = fmt.Errorf("smtp send to broken@example.com failed")

	resp := f.createSlot(t, f.clock.Now().Add(24*time.Hour))
	if resp.ID == 0 {
		t.Error("send failure must not block slot creation")
	}

	got := f.mailer.sentTo()
	want := []string{"anna@example.com", "kim@example.com"}
	if len(got) != len(want) {
		t.Fatalf("sent to %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("recipient[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestProposedTimeSlotService_Create_SucceedsWhenMailerBroken(t *testing.T) {
	f := newProposalFixture(t, []models.User{
		{ID: 1, Email: "anna@example.com", FirstName: "Anna"},
	})
	f.mailer.failAll = errors.New("relay unreachable")

	resp := f.createSlot(t, f.clock.Now().Add(24*time.Hour))
	if resp.ID == 0 {
		t.Error("expected slot despite mailer outage")
	}
	if got, _ := f.repo.proposedTimeSlot.Count(context.Background()); got != 1 {
		t.Errorf("persisted %d slots, want 1", got)
	}
}

func TestProposedTimeSlotService_Create_UnknownScheduledLesson(t *testing.T) {
	f := newProposalFixture(t, []models.User{
		{ID: 1, Email: "anna@example.com", FirstName: "Anna"},
	})

	_, err := f.svc.Create(context.Background(), CreateProposedTimeSlotRequest{
		ProposedStartTime: f.clock.Now().Add(24 * time.Hour),
		ScheduledLessonID: 99,
	})
	if !errors.Is(err, ErrScheduledLessonNotFound) {
		t.Fatalf("err = %v, want ErrScheduledLessonNotFound", err)
	}
	if got, _ := f.repo.proposedTimeSlot.Count(context.Background()); got != 0 {
		t.Errorf("persisted %d slots for unknown scheduled lesson, want 0", got)
	}
	if got := len(f.mailer.sent); got != 0 {
		t.Errorf("sent %d mails for unknown scheduled lesson, want 0", got)
	}
}

func TestProposedTimeSlotService_Create_PersistErrorPropagates(t *testing.T) {
	f := newProposalFixture(t, []models.User{
		{ID: 1, Email: "anna@example.com", FirstName: "Anna"},
	})
	f.repo.proposedTimeSlot.createErr = errors.New("connection reset")

	_, err := f.svc.Create(context.Background(), CreateProposedTimeSlotRequest{
		ProposedStartTime: f.clock.Now().Add(24 * time.Hour),
		ScheduledLessonID: 1,
	})
	if err == nil {
		t.Fatal("expected persistence error to propagate")
	}
	if got := len(f.mailer.sent); got != 0 {
		t.Errorf("sent %d mails despite failed persist, want 0", got)
	}
}

func TestProposedTimeSlotService_Create_ValidatesRequest(t *testing.T) {
	f := newProposalFixture(t, nil)

	_, err := f.svc.Create(context.Background(), CreateProposedTimeSlotRequest{})
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want validation errors", err)
	}
}
