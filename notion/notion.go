// Package notion stores waitlist records as pages of a Notion database.
package notion

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tourconnect "github.com/himaSH97/tc-servey"
	"github.com/jomei/notionapi"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Config is the required properties to use the Notion API.
type Config struct {
	Token   string
	Timeout time.Duration
}

type RecordStore struct {
	client *notionapi.Client
}

// NewRecordStore knows how to build a Notion client from the configuration.
// Outbound calls are traced.
func NewRecordStore(cfg Config, opts ...notionapi.ClientOption) *RecordStore {
	httpClient := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	opts = append([]notionapi.ClientOption{notionapi.WithHTTPClient(httpClient)}, opts...)

	return &RecordStore{
		client: notionapi.NewClient(notionapi.Token(cfg.Token), opts...),
	}
}

// CreateRecord adds one page to the database and returns its id.
func (rs *RecordStore) CreateRecord(ctx context.Context, databaseID string, props []tourconnect.Property) (string, error) {
	ctx, span := otel.GetTracerProvider().Tracer("").Start(ctx, "notion.create_record")
	span.SetAttributes(attribute.String("notion.database_id", databaseID))
	defer span.End()

	properties, err := toProperties(props)
	if err != nil {
		return "", err
	}

	page, err := rs.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: notionapi.DatabaseID(databaseID),
		},
		Properties: properties,
	})
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("create page: %w", err)
	}
	if page == nil {
		return "", tourconnect.ErrRecordNotCreated
	}

	return page.ID.String(), nil
}

func toProperties(props []tourconnect.Property) (notionapi.Properties, error) {
	out := make(notionapi.Properties, len(props))
	for _, p := range props {
		switch p.Type {
		case tourconnect.PropertyTitle:
			out[p.Name] = notionapi.TitleProperty{
				Type:  notionapi.PropertyTypeTitle,
				Title: richText(p.Text),
			}
		case tourconnect.PropertyEmail:
			// Notion rejects an empty email value, so the property is left out.
			if p.Content() == "" {
				continue
			}
			out[p.Name] = notionapi.EmailProperty{
				Type:  notionapi.PropertyTypeEmail,
				Email: p.Content(),
			}
		case tourconnect.PropertyRichText:
			out[p.Name] = notionapi.RichTextProperty{
				Type:     notionapi.PropertyTypeRichText,
				RichText: richText(p.Text),
			}
		default:
			return nil, fmt.Errorf("property %q: unsupported type %q", p.Name, p.Type)
		}
	}
	return out, nil
}

func richText(segments []string) []notionapi.RichText {
	out := make([]notionapi.RichText, 0, len(segments))
	for _, s := range segments {
		out = append(out, notionapi.RichText{
			Type: notionapi.ObjectTypeText,
			Text: &notionapi.Text{Content: s},
		})
	}
	return out
}
