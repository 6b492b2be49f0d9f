package client

import (
	"context"
	"errors"
	"time"

	tourconnect "github.com/himaSH97/tc-servey"
	"github.com/himaSH97/tc-servey/form"
)

// CelebrationDelay is how long after a successful submission the celebration
// callback runs.
const CelebrationDelay = 100 * time.Millisecond

// Submitter sends a finished response.
type Submitter interface {
	Submit(ctx context.Context, r tourconnect.Response) error
}

// Session walks a form and submits it when the respondent advances past the
// last step.
type Session struct {
	form      *form.Machine
	submitter Submitter
	celebrate func(name string)
	delay     time.Duration
}

type SessionOption func(*Session)

// WithCelebration registers fn to run, with the submitted name, shortly
// after a successful submission.
func WithCelebration(fn func(name string)) SessionOption {
	return func(s *Session) {
		s.celebrate = fn
	}
}

func WithCelebrationDelay(d time.Duration) SessionOption {
	return func(s *Session) {
		s.delay = d
	}
}

func NewSession(m *form.Machine, submitter Submitter, opts ...SessionOption) *Session {
	s := &Session{
		form:      m,
		submitter: submitter,
		delay:     CelebrationDelay,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Session) Form() *form.Machine {
	return s.form
}

// Advance moves to the next step, or submits the answers from the last one.
// Only one submission runs at a time; a concurrent call gets
// form.ErrSubmissionPending.
func (s *Session) Advance(ctx context.Context) (form.Step, error) {
	step, err := s.form.Advance()
	if !errors.Is(err, form.ErrSubmitRequired) {
		return step, err
	}

	r, err := s.form.Begin()
	if err != nil {
		return step, err
	}

	err = s.submitter.Submit(ctx, r)
	s.form.Finish(err)
	if err != nil {
		return step, err
	}

	if s.celebrate != nil {
		name := r.Name
		time.AfterFunc(s.delay, func() { s.celebrate(name) })
	}
	return step, nil
}

// SubmitAnother starts a new response after a successful one.
func (s *Session) SubmitAnother() {
	s.form.Reset()
}

// Notice returns the message key describing err for the respondent.
func Notice(err error) string {
	var verr *form.ValidationError
	switch {
	case err == nil:
		return "submit.success"
	case errors.As(err, &verr):
		return verr.Key
	case errors.Is(err, form.ErrSubmissionPending):
		return "submit.in_flight"
	case errors.Is(err, form.ErrAlreadySubmitted):
		return "submit.already_submitted"
	case errors.Is(err, ErrRateLimited):
		return "submit.rate_limited"
	case errors.Is(err, ErrInsertionFailed):
		return "submit.insertion_failed"
	}
	return "submit.failed"
}
