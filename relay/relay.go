// Package relay forwards completed waitlist responses to the external record
// store.
package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	tourconnect "github.com/himaSH97/tc-servey"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type Service struct {
	store       tourconnect.RecordStore
	databaseID  string
	submissions tourconnect.SubmissionService
	log         *zap.SugaredLogger
	now         func() time.Time
}

// NewService builds a relay writing to databaseID. submissions may be nil,
// in which case relayed responses are not journalled.
func NewService(store tourconnect.RecordStore, databaseID string, submissions tourconnect.SubmissionService, log *zap.SugaredLogger) *Service {
	return &Service{
		store:       store,
		databaseID:  databaseID,
		submissions: submissions,
		log:         log,
		now:         time.Now,
	}
}

// Submit creates exactly one record for r. Calling it twice with the same
// response creates two records.
func (s *Service) Submit(ctx context.Context, r tourconnect.Response) (tourconnect.Submission, error) {
	ctx, span := otel.GetTracerProvider().Tracer("").Start(ctx, "relay.submit")
	defer span.End()

	props := Properties(r)
	span.SetAttributes(attribute.Int("relay.properties", len(props)))

	recordID, err := s.store.CreateRecord(ctx, s.databaseID, props)
	if err != nil {
		span.RecordError(err)
		return tourconnect.Submission{}, fmt.Errorf("create record: %w", err)
	}
	if recordID == "" {
		span.RecordError(tourconnect.ErrRecordNotCreated)
		return tourconnect.Submission{}, tourconnect.ErrRecordNotCreated
	}

	sub := tourconnect.Submission{
		ID:        uuid.NewString(),
		RecordID:  recordID,
		Response:  r.Clone(),
		CreatedAt: s.now().UTC(),
	}
	span.SetAttributes(attribute.String("relay.record_id", recordID))

	if s.submissions != nil {
		if err := s.submissions.Create(ctx, sub); err != nil {
			s.log.Errorw("Submit", "status", "journal write failed", "record_id", recordID, "error", err.Error())
		}
	}

	return sub, nil
}
