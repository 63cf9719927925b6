package usecase_swipe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/reelmate/core/internal/model"
)

var (
	ErrUnableToVote     = errors.New("unable to record swipe")
	ErrInvalidDirection = errors.New("invalid swipe direction")
	ErrResourceNotFound = errors.New("no such resource")
)

type SwipeRepository interface {
	// Upsert atomically replaces any live swipe for the same
	// (room, participant, movie) triple.
	Upsert(ctx context.Context, swipe model.Swipe) error
	// CountLikes counts live like-swipes for the movie within the room.
	CountLikes(ctx context.Context, code string, movieID string) (int, error)
}

type MatchRepository interface {
	// Create inserts the match unless one already exists for (room, movie)
	// and reports whether this call inserted it. Only an actual insert
	// publishes the room's match_created event.
	Create(ctx context.Context, code string, movieID string) (bool, error)
	MatchedMovies(ctx context.Context, code string) ([]model.Movie, error)
}

type Usecase struct {
	swipes  SwipeRepository
	matches MatchRepository
	logger  *slog.Logger
}

func New(swipes SwipeRepository, matches MatchRepository) *Usecase {
	return &Usecase{
		swipes:  swipes,
		matches: matches,
		logger:  slog.Default(),
	}
}

// Record stores the participant's decision, superseding any earlier vote on
// the same movie. A like triggers match detection; a detection failure is
// logged but never fails the vote itself.
func (u *Usecase) Record(ctx context.Context, code string, userID uuid.UUID, movieID string, direction model.Direction) error {
	if !direction.Valid() {
		return ErrInvalidDirection
	}

	err := u.swipes.Upsert(ctx, model.Swipe{
		RoomCode:  code,
		UserID:    userID,
		MovieID:   movieID,
		Direction: direction,
	})
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return fmt.Errorf("%w: %w", ErrUnableToVote, err)
	}

	if direction == model.Like {
		if err := u.detectMatch(ctx, code, movieID); err != nil {
			u.logger.Error("match detection failed",
				"room", code,
				"movie", movieID,
				"error", err)
		}
	}
	return nil
}

// detectMatch treats more than one live like as agreement. That is correct
// only because a room holds at most two participants and Upsert keeps at
// most one live swipe per participant per movie.
func (u *Usecase) detectMatch(ctx context.Context, code string, movieID string) error {
	likes, err := u.swipes.CountLikes(ctx, code, movieID)
	if err != nil {
		return err
	}
	if likes <= 1 {
		return nil
	}

	created, err := u.matches.Create(ctx, code, movieID)
	if err != nil {
		return err
	}
	if created {
		u.logger.Info("match created", "room", code, "movie", movieID)
	}
	return nil
}

func (u *Usecase) Matches(ctx context.Context, code string) ([]model.Movie, error) {
	movies, err := u.matches.MatchedMovies(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	return movies, nil
}
