package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/repositories"
	"github.com/pooya1361/makerspace/internal/validator"
)

type voteService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewVoteService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) VoteService {
	return &voteService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

// Create records one vote per user per time slot. A second vote from the
// same user on the same slot is rejected as a conflict.
func (s *voteService) Create(ctx context.Context, userID uint, req CreateVoteRequest) (*models.VoteResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.ProposedTimeSlot().GetByID(ctx, req.ProposedTimeSlotID); err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrProposedTimeSlotNotFound
		}
		return nil, fmt.Errorf("failed to get proposed time slot: %w", err)
	}

	if _, err := s.repo.Vote().FindByUserAndTimeSlot(ctx, userID, req.ProposedTimeSlotID); err == nil {
		return nil, ErrDuplicateVote
	} else if !repositories.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check existing vote: %w", err)
	}

	vote := &models.Vote{
		ProposedTimeSlotID: req.ProposedTimeSlotID,
		UserID:             userID,
	}
	if err := s.repo.Vote().Create(ctx, vote); err != nil {
		if repositories.IsDuplicateKey(err) {
			return nil, ErrDuplicateVote
		}
		return nil, fmt.Errorf("failed to create vote: %w", err)
	}

	s.logger.Info("vote recorded",
		"vote_id", vote.ID,
		"user_id", userID,
		"proposed_time_slot_id", req.ProposedTimeSlotID,
	)

	created, err := s.repo.Vote().GetByID(ctx, vote.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload vote: %w", err)
	}
	return models.NewVoteResponse(created), nil
}

func (s *voteService) GetAll(ctx context.Context) ([]models.VoteResponse, error) {
	votes, err := s.repo.Vote().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	out := make([]models.VoteResponse, 0, len(votes))
	for i := range votes {
		out = append(out, *models.NewVoteResponse(&votes[i]))
	}
	return out, nil
}

func (s *voteService) GetByID(ctx context.Context, id uint) (*models.VoteResponse, error) {
	vote, err := s.repo.Vote().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrVoteNotFound
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	return models.NewVoteResponse(vote), nil
}

func (s *voteService) GetByTimeSlotID(ctx context.Context, timeSlotID uint) ([]models.VoteResponse, error) {
	if _, err := s.repo.ProposedTimeSlot().GetByID(ctx, timeSlotID); err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrProposedTimeSlotNotFound
		}
		return nil, fmt.Errorf("failed to get proposed time slot: %w", err)
	}

	votes, err := s.repo.Vote().GetByTimeSlotID(ctx, timeSlotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	out := make([]models.VoteResponse, 0, len(votes))
	for i := range votes {
		out = append(out, *models.NewVoteResponse(&votes[i]))
	}
	return out, nil
}

// Update moves a vote to a different time slot. The one-vote-per-slot rule
// still applies at the destination.
func (s *voteService) Update(ctx context.Context, id uint, req UpdateVoteRequest) (*models.VoteResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	vote, err := s.repo.Vote().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrVoteNotFound
		}
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}

	if req.ProposedTimeSlotID != nil && *req.ProposedTimeSlotID != vote.ProposedTimeSlotID {
		if _, err := s.repo.ProposedTimeSlot().GetByID(ctx, *req.ProposedTimeSlotID); err != nil {
			if repositories.IsNotFound(err) {
				return nil, ErrProposedTimeSlotNotFound
			}
			return nil, fmt.Errorf("failed to get proposed time slot: %w", err)
		}

		if _, err := s.repo.Vote().FindByUserAndTimeSlot(ctx, vote.UserID, *req.ProposedTimeSlotID); err == nil {
			return nil, ErrDuplicateVote
		} else if !repositories.IsNotFound(err) {
			return nil, fmt.Errorf("failed to check existing vote: %w", err)
		}

		vote.ProposedTimeSlotID = *req.ProposedTimeSlotID
		if err := s.repo.Vote().Update(ctx, vote); err != nil {
			if repositories.IsDuplicateKey(err) {
				return nil, ErrDuplicateVote
			}
			return nil, fmt.Errorf("failed to update vote: %w", err)
		}
	}

	updated, err := s.repo.Vote().GetByID(ctx, vote.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload vote: %w", err)
	}
	return models.NewVoteResponse(updated), nil
}

func (s *voteService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Vote().Delete(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return ErrVoteNotFound
		}
		return fmt.Errorf("failed to delete vote: %w", err)
	}
	return nil
}
