package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tourconnect "github.com/himaSH97/tc-servey"
	"github.com/himaSH97/tc-servey/form"
)

func TestClient_Submit(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"ok", http.StatusOK, nil},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
		{"server error", http.StatusInternalServerError, ErrInsertionFailed},
		{"bad request", http.StatusBadRequest, ErrInsertionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got tourconnect.Response
			srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != SubmitPath {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
					t.Errorf("decode: %v", err)
				}
				rw.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := New(srv.URL+"/").Submit(context.Background(), tourconnect.Response{Name: "Kasun", Likelihood: 4})

			if tt.want == nil && err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if got.Name != "Kasun" || got.Likelihood != 4 {
				t.Fatalf("unexpected payload %+v", got)
			}
		})
	}

	t.Run("transport error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		err := New(url).Submit(context.Background(), tourconnect.Response{})
		if err == nil || errors.Is(err, ErrInsertionFailed) || errors.Is(err, ErrRateLimited) {
			t.Fatalf("expected a transport error, got %v", err)
		}
		if Notice(err) != "submit.failed" {
			t.Fatalf("expected generic notice, got %q", Notice(err))
		}
	})
}

type submitFunc func(ctx context.Context, r tourconnect.Response) error

func (f submitFunc) Submit(ctx context.Context, r tourconnect.Response) error {
	return f(ctx, r)
}

func readyMachine(t *testing.T) *form.Machine {
	t.Helper()
	m := form.New()
	fills := []func(){
		func() { m.Set(form.FieldEmail, "a@b.com") },
		func() { m.Set(form.FieldName, "Kasun") },
		func() { m.Set(form.FieldUserType, tourconnect.UserTypeGuide) },
		func() { m.Set(form.FieldInterested, tourconnect.InterestYes) },
		func() { m.ToggleFeature(tourconnect.FeatureReviews) },
		func() { m.Set(form.FieldWillingToPay, tourconnect.PayNo) },
		func() { m.Set(form.FieldLikelihood, "4") },
	}
	for _, fill := range fills {
		fill()
		if _, err := m.Advance(); err != nil {
			t.Fatalf("advance from %s: %v", m.Step(), err)
		}
	}
	if m.Step() != form.StepComments {
		t.Fatalf("expected last step, got %s", m.Step())
	}
	return m
}

func TestSession_Advance(t *testing.T) {
	t.Run("validation stays local", func(t *testing.T) {
		calls := 0
		s := NewSession(form.New(), submitFunc(func(ctx context.Context, r tourconnect.Response) error {
			calls++
			return nil
		}))

		_, err := s.Advance(context.Background())
		if Notice(err) != form.NoticeEmailInvalid {
			t.Fatalf("expected email notice, got %v", err)
		}
		if calls != 0 {
			t.Fatal("expected no submission")
		}
	})

	t.Run("success resets answers and celebrates", func(t *testing.T) {
		var sent tourconnect.Response
		celebrated := make(chan string, 1)
		s := NewSession(readyMachine(t), submitFunc(func(ctx context.Context, r tourconnect.Response) error {
			sent = r
			return nil
		}), WithCelebration(func(name string) { celebrated <- name }), WithCelebrationDelay(time.Millisecond))

		if _, err := s.Advance(context.Background()); err != nil {
			t.Fatalf("advance: %v", err)
		}
		if sent.Email != "a@b.com" || sent.FeeStructure != "" || sent.ComfortableAmount != "" {
			t.Fatalf("unexpected payload %+v", sent)
		}
		if s.Form().State() != form.Succeeded {
			t.Fatalf("expected succeeded, got %s", s.Form().State())
		}
		if a := s.Form().Answers(); a.Email != "" || a.Name != "" || len(a.Features) != 0 {
			t.Fatalf("expected answers to be cleared, got %+v", a)
		}

		select {
		case name := <-celebrated:
			if name != "Kasun" {
				t.Fatalf("expected celebration for Kasun, got %q", name)
			}
		case <-time.After(time.Second):
			t.Fatal("celebration never ran")
		}

		s.SubmitAnother()
		if s.Form().Step() != form.StepEmail || s.Form().State() != form.Idle {
			t.Fatal("expected a fresh form")
		}
	})

	t.Run("advancing after success sends nothing", func(t *testing.T) {
		calls := 0
		s := NewSession(readyMachine(t), submitFunc(func(ctx context.Context, r tourconnect.Response) error {
			calls++
			return nil
		}))

		if _, err := s.Advance(context.Background()); err != nil {
			t.Fatalf("advance: %v", err)
		}
		_, err := s.Advance(context.Background())
		if !errors.Is(err, form.ErrAlreadySubmitted) {
			t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
		}
		if Notice(err) != "submit.already_submitted" {
			t.Fatalf("unexpected notice %q", Notice(err))
		}
		if calls != 1 {
			t.Fatalf("expected one submission, got %d", calls)
		}
	})

	t.Run("failure keeps answers", func(t *testing.T) {
		s := NewSession(readyMachine(t), submitFunc(func(ctx context.Context, r tourconnect.Response) error {
			return ErrRateLimited
		}))

		_, err := s.Advance(context.Background())
		if Notice(err) != "submit.rate_limited" {
			t.Fatalf("expected rate limited notice, got %v", err)
		}
		if s.Form().State() != form.Failed || s.Form().Step() != form.StepComments {
			t.Fatalf("expected failed on the last step, got %s on %s", s.Form().State(), s.Form().Step())
		}
		if a := s.Form().Answers(); a.Email != "a@b.com" {
			t.Fatalf("expected answers to be kept, got %+v", a)
		}
	})

	t.Run("one submission in flight", func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		calls := 0
		s := NewSession(readyMachine(t), submitFunc(func(ctx context.Context, r tourconnect.Response) error {
			calls++
			close(started)
			<-release
			return nil
		}))

		done := make(chan error, 1)
		go func() {
			_, err := s.Advance(context.Background())
			done <- err
		}()
		<-started

		if s.Form().State() != form.Pending {
			t.Fatalf("expected pending, got %s", s.Form().State())
		}
		if _, err := s.Advance(context.Background()); !errors.Is(err, form.ErrSubmissionPending) {
			t.Fatalf("expected ErrSubmissionPending, got %v", err)
		}
		if Notice(form.ErrSubmissionPending) != "submit.in_flight" {
			t.Fatal("expected in flight notice")
		}

		close(release)
		if err := <-done; err != nil {
			t.Fatalf("first submission: %v", err)
		}
		if calls != 1 {
			t.Fatalf("expected one submission, got %d", calls)
		}
	})
}

func TestNotice(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "submit.success"},
		{ErrRateLimited, "submit.rate_limited"},
		{ErrInsertionFailed, "submit.insertion_failed"},
		{form.ErrAlreadySubmitted, "submit.already_submitted"},
		{errors.New("dial tcp: refused"), "submit.failed"},
		{&form.ValidationError{Step: form.StepName, Key: form.NoticeNameRequired}, form.NoticeNameRequired},
	}
	for _, tt := range tests {
		if got := Notice(tt.err); got != tt.want {
			t.Errorf("Notice(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
