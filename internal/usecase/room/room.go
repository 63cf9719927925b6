package usecase_room

import (
	"context"
	"errors"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/reelmate/core/internal/model"
)

var (
	ErrCodeConflict     = errors.New("code conflict")
	ErrRoomsUnavailable = errors.New("no available room codes")
	ErrRoomFull         = errors.New("room full")
	ErrInternal         = errors.New("internal error")
	ErrResourceNotFound = errors.New("no such resource")
)

type RoomRepository interface {
	Create(ctx context.Context, room model.Room) error
	ByCode(ctx context.Context, code string) (model.Room, error)
	// ClaimGuestSlot sets the guest only if the slot is still empty and
	// reports whether this call won the slot.
	ClaimGuestSlot(ctx context.Context, code string, userID uuid.UUID) (bool, error)
	SetFilters(ctx context.Context, code string, criteria model.FilterCriteria) error
	StatusByCode(ctx context.Context, code string) (string, error)
	SetStatusByCode(ctx context.Context, code string, status string) error
	DeleteByCode(ctx context.Context, code string) error
}

// DeckInvalidator drops a room's materialized candidate list so the next
// read re-filters. Implemented by the deck repository.
type DeckInvalidator interface {
	Clear(ctx context.Context, code string) error
}

type Usecase struct {
	rooms RoomRepository
	decks DeckInvalidator

	rnd *rand.Rand
}

func New(rooms RoomRepository, decks DeckInvalidator) *Usecase {
	return &Usecase{
		rooms: rooms,
		decks: decks,
	}
}

// NewWithRand pins the code generator's randomness. Tests only.
func NewWithRand(rooms RoomRepository, decks DeckInvalidator, rnd *rand.Rand) *Usecase {
	u := New(rooms, decks)
	u.rnd = rnd
	return u
}

// Create books a room for a fresh owner token. The returned token must be
// set on the client to authorize later owner ops.
func (u *Usecase) Create(ctx context.Context) (roomCode string, ownerToken string, err error) {
	ownerID := uuid.New()

	const retries = 3
	for i := 0; i < retries; i++ {
		code := u.buildRoomCode()
		err = u.rooms.Create(ctx, model.Room{
			Code:    code,
			OwnerID: ownerID,
			Status:  model.StatusActive,
		})
		if err == nil {
			return code, ownerID.String(), nil
		}
		if !errors.Is(err, ErrCodeConflict) {
			return "", "", errors.Join(ErrInternal, err)
		}
	}
	return "", "", ErrRoomsUnavailable
}

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func (u *Usecase) buildRoomCode() string {
	const codeLen = 6
	var builder strings.Builder
	builder.Grow(codeLen)

	for i := 0; i < codeLen; i++ {
		builder.WriteByte(codeAlphabet[u.intn(len(codeAlphabet))])
	}
	return builder.String()
}

func (u *Usecase) intn(n int) int {
	if u.rnd != nil {
		return u.rnd.Intn(n)
	}
	return rand.Intn(n)
}

// Join admits userID into the room. Rejoining with an id already present is
// a no-op success; a taken guest slot is ErrRoomFull. Two simultaneous joins
// race on a conditional update, so only one can win the empty slot.
func (u *Usecase) Join(ctx context.Context, code string, userID uuid.UUID) error {
	code = strings.ToUpper(code)

	room, err := u.rooms.ByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	if room.HasParticipant(userID) {
		return nil
	}
	if room.GuestID != nil {
		return ErrRoomFull
	}

	claimed, err := u.rooms.ClaimGuestSlot(ctx, code, userID)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	if claimed {
		return nil
	}

	// Lost the race. Re-read to tell an idempotent retry from a full room.
	room, err = u.rooms.ByCode(ctx, code)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	if room.HasParticipant(userID) {
		return nil
	}
	return ErrRoomFull
}

// ApplyFilters persists new criteria and invalidates the room's candidate
// list. Invalidation failure is an error: a surviving stale list would keep
// being served under the old criteria.
func (u *Usecase) ApplyFilters(ctx context.Context, code string, criteria model.FilterCriteria) error {
	if err := u.rooms.SetFilters(ctx, code, criteria); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	if err := u.decks.Clear(ctx, code); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (u *Usecase) Room(ctx context.Context, code string) (model.Room, error) {
	room, err := u.rooms.ByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return model.Room{}, ErrResourceNotFound
		}
		return model.Room{}, errors.Join(ErrInternal, err)
	}
	return room, nil
}

func (u *Usecase) IsParticipant(ctx context.Context, code string, userID uuid.UUID) (bool, error) {
	room, err := u.rooms.ByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return false, ErrResourceNotFound
		}
		return false, errors.Join(ErrInternal, err)
	}
	return room.HasParticipant(userID), nil
}

func (u *Usecase) Status(ctx context.Context, code string) (string, error) {
	status, err := u.rooms.StatusByCode(ctx, code)
	if err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return "", ErrResourceNotFound
		}
		return "", errors.Join(ErrInternal, err)
	}
	return status, nil
}

func (u *Usecase) SetStatus(ctx context.Context, code string, status string) error {
	if err := u.rooms.SetStatusByCode(ctx, code, status); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (u *Usecase) Free(ctx context.Context, code string) error {
	if err := u.rooms.DeleteByCode(ctx, code); err != nil {
		if errors.Is(err, ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}
