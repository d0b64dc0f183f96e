package models

import (
	"fmt"
	"time"
)

// Session is a persisted Deezer session credential (the "sid" cookie) along with the account it was validated against.
type Session struct {
	id        string
	sequence  int
	sid       string
	userID    string
	userName  string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewSession creates a [Session] for the given credential and user.
func NewSession(sequence int, sid, userID, userName string) *Session {
	now := time.Now()
	return &Session{
		sequence:  sequence,
		sid:       sid,
		userID:    userID,
		userName:  userName,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *Session) ID() string            { return s.id }
func (s *Session) Sequence() int         { return s.sequence }
func (s *Session) SID() string           { return s.sid }
func (s *Session) UserID() string        { return s.userID }
func (s *Session) UserName() string      { return s.userName }
func (s *Session) CreatedAt() time.Time  { return s.createdAt }
func (s *Session) UpdatedAt() time.Time  { return s.updatedAt }
func (s *Session) DeletedAt() *time.Time { return s.deletedAt }

func (s *Session) SetID(id string)                 { s.id = id }
func (s *Session) SetSequence(seq int)             { s.sequence = seq }
func (s *Session) SetCreatedAt(t time.Time)        { s.createdAt = t }
func (s *Session) SetUpdatedAt(t time.Time)        { s.updatedAt = t }
func (s *Session) SetDeletedAt(t *time.Time)       { s.deletedAt = t }
func (s *Session) SetUser(userID, userName string) { s.userID, s.userName = userID, userName }

// Validate checks that the session carries a credential and a logged in user.
func (s *Session) Validate() error {
	if s.sid == "" {
		return fmt.Errorf("sid is required")
	}
	if s.userID == "" || s.userID == "0" {
		return fmt.Errorf("user id is required")
	}
	return nil
}

// Masked returns the credential with all but the last four characters hidden.
func (s *Session) Masked() string {
	if len(s.sid) <= 4 {
		return "****"
	}
	return "****" + s.sid[len(s.sid)-4:]
}
