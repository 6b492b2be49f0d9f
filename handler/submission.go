package handler

import (
	"context"
	"errors"
	"net/http"

	tourconnect "github.com/himaSH97/tc-servey"
	"github.com/himaSH97/tc-servey/form"
	"github.com/himaSH97/tc-servey/locale"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
)

// Relayer forwards a response to the record store.
type Relayer interface {
	Submit(ctx context.Context, r tourconnect.Response) (tourconnect.Submission, error)
}

type SubmissionHandler struct {
	relay    Relayer
	log      *otelzap.SugaredLogger
	validate bool
}

// NewSubmissionHandler builds the relay endpoint. With validate set, responses
// are checked the way the form checks them before they are relayed.
func NewSubmissionHandler(relay Relayer, log *otelzap.SugaredLogger, validate bool) *SubmissionHandler {
	return &SubmissionHandler{
		relay:    relay,
		log:      log,
		validate: validate,
	}
}

func (sh SubmissionHandler) Create(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var resp tourconnect.Response

	if err := decode(r, &resp); err != nil {
		sh.log.Ctx(ctx).Errorw("Create", "error", err.Error())
		respondErr(ctx, rw, http.StatusBadRequest, "relay.bad_request")
		return
	}

	if sh.validate {
		var verr *form.ValidationError
		if err := form.Validate(resp); errors.As(err, &verr) {
			sh.log.Ctx(ctx).Infow("Create", "status", "rejected", "step", verr.Step.String(), "notice", verr.Key)
			respondErr(ctx, rw, http.StatusBadRequest, verr.Key)
			return
		}
	}

	sub, err := sh.relay.Submit(ctx, resp)
	if err != nil {
		sh.log.Ctx(ctx).Errorw("Create", "error", err.Error())
		respondErr(ctx, rw, http.StatusInternalServerError, "relay.failed")
		return
	}

	sh.log.Ctx(ctx).Infow("Create", "status", "relayed", "submission_id", sub.ID, "record_id", sub.RecordID)

	respond(ctx, rw, http.StatusOK, map[string]interface{}{
		"message": locale.Printer(locale.FromContext(ctx)).Sprintf("relay.created"),
		"success": true,
	})
}
