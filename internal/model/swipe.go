package model

import (
	"time"

	"github.com/google/uuid"
)

type Direction string

const (
	Like    Direction = "like"
	Dislike Direction = "dislike"
)

func (d Direction) Valid() bool {
	return d == Like || d == Dislike
}

// Swipe is one participant's live decision on one movie within one room.
// At most one exists per (room, participant, movie); a new swipe on the
// same triple supersedes the old one.
type Swipe struct {
	RoomCode  string
	UserID    uuid.UUID
	MovieID   string
	Direction Direction
}

// Match records that both room participants liked the same movie.
// Created at most once per (room, movie).
type Match struct {
	RoomCode  string
	MovieID   string
	CreatedAt time.Time
}
