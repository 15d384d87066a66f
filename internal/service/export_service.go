package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/campuseventhub/campus-event-hub/internal/models"
	appErrors "github.com/campuseventhub/campus-event-hub/pkg/errors"
	"github.com/campuseventhub/campus-event-hub/pkg/export"
)

type registrationLister interface {
	ListByEvent(ctx context.Context, eventID string) ([]models.Registration, error)
}

// ExportResult is a rendered download ready to stream to the client.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders event registration rosters as CSV or PDF downloads.
type ExportService struct {
	registrations registrationLister
	events        eventFinder
	logger        *zap.Logger
}

// NewExportService constructs an ExportService instance.
func NewExportService(registrations registrationLister, events eventFinder, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{registrations: registrations, events: events, logger: logger}
}

// EventRoster renders the registration roster for one event.
func (s *ExportService) EventRoster(ctx context.Context, eventID string, format export.Format) (*ExportResult, error) {
	switch format {
	case export.FormatCSV, export.FormatPDF:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be one of: csv, pdf")
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch event")
	}

	regs, err := s.registrations.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}

	table := export.Table{
		Title:   "Registrations for " + event.Title,
		Columns: []string{"Name", "Email", "Status", "Registered At"},
		Rows:    make([][]string, 0, len(regs)),
	}
	for _, reg := range regs {
		name := ""
		if reg.UserName != nil {
			name = *reg.UserName
		}
		email := ""
		if reg.UserEmail != nil {
			email = *reg.UserEmail
		}
		table.Rows = append(table.Rows, []string{
			name,
			email,
			string(reg.Status),
			reg.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	content, err := export.Render(format, table)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	return &ExportResult{
		Content:     content,
		ContentType: format.ContentType(),
		Filename:    fmt.Sprintf("registrations-%s.%s", eventID, format),
	}, nil
}
