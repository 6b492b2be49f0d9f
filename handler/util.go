package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/himaSH97/tc-servey/locale"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// maxBodyBytes bounds a submission body. A full response is well under 16KiB.
const maxBodyBytes = 64 << 10

func decode(r *http.Request, into interface{}) error {
	rawJson, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	return json.Unmarshal(rawJson, into)
}

func respond(ctx context.Context, rw http.ResponseWriter, status int, data interface{}) {
	ctx, span := otel.GetTracerProvider().Tracer("").Start(ctx, "handler.respond")
	span.SetAttributes(attribute.Int("http.status", status))
	defer span.End()

	if status == http.StatusNoContent || data == nil {
		rw.WriteHeader(status)
		return
	}

	rawJson, err := json.Marshal(data)
	if err != nil {
		panic("respond-json-marshal:" + err.Error())
	}

	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	rw.Write(rawJson)
}

// respondErr answers with a localized error message keyed by key.
func respondErr(ctx context.Context, rw http.ResponseWriter, status int, key string) {
	respond(ctx, rw, status, map[string]interface{}{
		"error":   locale.Printer(locale.FromContext(ctx)).Sprintf(key),
		"success": false,
	})
}
