package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vila-abandonada/backend/internal/model"
	"github.com/vila-abandonada/backend/internal/model/types"
	"github.com/vila-abandonada/backend/internal/pkg/notify"
	"github.com/vila-abandonada/backend/internal/pkg/vaerr"
	"github.com/vila-abandonada/backend/internal/repo"
)

type Waitlist struct {
	WaitlistRepo *repo.Waitlist
	Notifier     notify.Notifier
}

func NewWaitlist(waitlistRepo *repo.Waitlist, notifier notify.Notifier) *Waitlist {
	return &Waitlist{
		WaitlistRepo: waitlistRepo,
		Notifier:     notifier,
	}
}

// Register adds the email to the waitlist and sends a confirmation mail. A failed
// delivery only clears EmailSent.
func (s *Waitlist) Register(ctx context.Context, req *types.WaitlistRequest) (*types.WaitlistResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.WaitlistRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, dbErr(err)
	}
	if exists {
		return nil, vaerr.ErrInvalidReq.Msg("email %s is already on the waitlist", email)
	}

	entry := &model.WaitlistEntry{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      strings.TrimSpace(req.Name),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.WaitlistRepo.CreateEntry(ctx, entry); err != nil {
		return nil, dbErr(err)
	}

	sent := false
	msg, err := notify.WaitlistConfirmation(entry.Email, entry.Name)
	if err != nil {
		log.Error().Err(err).Str("evt.name", "waitlist.render").Msg("failed to render waitlist confirmation")
	} else {
		sent = notify.Deliver(ctx, s.Notifier, msg)
	}

	return &types.WaitlistResult{
		ID:        entry.ID,
		Email:     entry.Email,
		EmailSent: sent,
	}, nil
}
