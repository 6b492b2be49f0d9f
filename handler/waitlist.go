package handler

import (
	"context"
	"net/http"
	"time"

	tourconnect "github.com/himaSH97/tc-servey"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

type WaitlistHandler struct {
	submissions tourconnect.SubmissionService
	log         *otelzap.SugaredLogger
}

func NewWaitlistHandler(submissions tourconnect.SubmissionService, log *otelzap.SugaredLogger) *WaitlistHandler {
	return &WaitlistHandler{
		submissions: submissions,
		log:         log,
	}
}

// Count reports how many people are on the waitlist.
func (wh WaitlistHandler) Count(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	n, err := wh.submissions.Count(ctx)
	if err != nil {
		wh.log.Ctx(ctx).Errorw("Count", "error", err.Error())
		respond(ctx, rw, http.StatusInternalServerError, map[string]interface{}{
			"error":   http.StatusText(http.StatusInternalServerError),
			"success": false,
		})
		return
	}

	respond(ctx, rw, http.StatusOK, map[string]int{"count": n})
}

// StatusCheck reports whether a dependency is reachable.
type StatusCheck func(ctx context.Context) error

type HealthHandler struct {
	check   StatusCheck
	timeout time.Duration
	log     *otelzap.SugaredLogger
}

func NewHealthHandler(check StatusCheck, timeout time.Duration, log *otelzap.SugaredLogger) *HealthHandler {
	return &HealthHandler{
		check:   check,
		timeout: timeout,
		log:     log,
	}
}

// Readiness checks the database before declaring the service ready.
func (hh HealthHandler) Readiness(rw http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), hh.timeout)
	defer cancel()

	status := "ok"
	code := http.StatusOK
	if err := hh.check(ctx); err != nil {
		hh.log.Ctx(ctx).Errorw("Readiness", "error", err.Error())
		status = "db not ready"
		code = http.StatusServiceUnavailable
	}

	respond(ctx, rw, code, map[string]string{"status": status})
}
