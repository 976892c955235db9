package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/validator"
)

func newVoteFixture(t *testing.T) (*mockRepo, VoteService) {
	t.Helper()

	repo := newMockRepo(time.Now)
	ctx := context.Background()

	user := &models.User{Email: "anna@example.com", FirstName: "Anna"}
	if err := repo.user.Create(ctx, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	lesson := &models.Lesson{Name: "Laser Cutting"}
	if err := repo.lesson.Create(ctx, lesson); err != nil {
		t.Fatalf("seed lesson: %v", err)
	}
	scheduledLesson := &models.ScheduledLesson{DurationInMinutes: 60, LessonID: lesson.ID, Lesson: *lesson}
	if err := repo.scheduledLesson.Create(ctx, scheduledLesson); err != nil {
		t.Fatalf("seed scheduled lesson: %v", err)
	}
	slot := &models.ProposedTimeSlot{
		ProposedStartTime: time.Now().Add(24 * time.Hour),
		ScheduledLessonID: scheduledLesson.ID,
	}
	if err := repo.proposedTimeSlot.Create(ctx, slot); err != nil {
		t.Fatalf("seed proposed time slot: %v", err)
	}

	return repo, NewVoteService(repo, testLogger(), validator.New())
}

func TestVoteService_Create(t *testing.T) {
	_, svc := newVoteFixture(t)

	resp, err := svc.Create(context.Background(), 1, CreateVoteRequest{ProposedTimeSlotID: 1})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if resp.ID == 0 {
		t.Error("expected vote to have an id")
	}
}

func TestVoteService_Create_RejectsDuplicate(t *testing.T) {
	repo, svc := newVoteFixture(t)

	if _, err := svc.Create(context.Background(), 1, CreateVoteRequest{ProposedTimeSlotID: 1}); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}

	_, err := svc.Create(context.Background(), 1, CreateVoteRequest{ProposedTimeSlotID: 1})
	if !errors.Is(err, ErrDuplicateVote) {
		t.Fatalf("second vote err = %v, want ErrDuplicateVote", err)
	}
	if got, _ := repo.vote.Count(context.Background()); got != 1 {
		t.Errorf("stored %d votes, want 1", got)
	}
}

func TestVoteService_Create_DifferentSlotsAllowed(t *testing.T) {
	repo, svc := newVoteFixture(t)

	second := &models.ProposedTimeSlot{
		ProposedStartTime: time.Now().Add(48 * time.Hour),
		ScheduledLessonID: 1,
	}
	if err := repo.proposedTimeSlot.Create(context.Background(), second); err != nil {
		t.Fatalf("seed second slot: %v", err)
	}

	if _, err := svc.Create(context.Background(), 1, CreateVoteRequest{ProposedTimeSlotID: 1}); err != nil {
		t.Fatalf("vote on first slot failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), 1, CreateVoteRequest{ProposedTimeSlotID: second.ID}); err != nil {
		t.Fatalf("vote on second slot failed: %v", err)
	}
}

func TestVoteService_Update_MovesVote(t *testing.T) {
	repo, svc := newVoteFixture(t)

	second := &models.ProposedTimeSlot{
		ProposedStartTime: time.Now().Add(48 * time.Hour),
		ScheduledLessonID: 1,
	}
	if err := repo.proposedTimeSlot.Create(context.Background(), second); err != nil {
		t.Fatalf("seed second slot: %v", err)
	}

	created, err := svc.Create(context.Background(), 1, CreateVoteRequest{ProposedTimeSlotID: 1})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Update(context.Background(), created.ID, UpdateVoteRequest{ProposedTimeSlotID: &second.ID}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	stored, err := repo.vote.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("reload vote: %v", err)
	}
	if stored.ProposedTimeSlotID != second.ID {
		t.Errorf("vote slot = %d, want %d", stored.ProposedTimeSlotID, second.ID)
	}
}

func TestVoteService_Update_RejectsOccupiedSlot(t *testing.T) {
	repo, svc := newVoteFixture(t)

	second := &models.ProposedTimeSlot{
		ProposedStartTime: time.Now().Add(48 * time.Hour),
		ScheduledLessonID: 1,
	}
	if err := repo.proposedTimeSlot.Create(context.Background(), second); err != nil {
		t.Fatalf("seed second slot: %v", err)
	}

	first, err := svc.Create(context.Background(), 1, CreateVoteRequest{ProposedTimeSlotID: 1})
	if err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), 1, CreateVoteRequest{ProposedTimeSlotID: second.ID}); err != nil {
		t.Fatalf("second vote failed: %v", err)
	}

	_, err = svc.Update(context.Background(), first.ID, UpdateVoteRequest{ProposedTimeSlotID: &second.ID})
	if !errors.Is(err, ErrDuplicateVote) {
		t.Fatalf("err = %v, want ErrDuplicateVote", err)
	}
}

func TestVoteService_Create_UnknownTimeSlot(t *testing.T) {
	_, svc := newVoteFixture(t)

	_, err := svc.Create(context.Background(), 1, CreateVoteRequest{ProposedTimeSlotID: 99})
	if !errors.Is(err, ErrProposedTimeSlotNotFound) {
		t.Fatalf("err = %v, want ErrProposedTimeSlotNotFound", err)
	}
}
