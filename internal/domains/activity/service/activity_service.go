package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"noteboard-backend/internal/domains/activity/model"
	"noteboard-backend/internal/domains/activity/repository"
	"noteboard-backend/internal/events"
)

const (
	DefaultFeedLimit = 50
	MaxFeedLimit     = 200
)

// ActivityService archives note events and serves the public feed.
type ActivityService interface {
	Archive(ctx context.Context, e events.Event) error
	ListRecent(ctx context.Context, limit int) ([]model.ActivityEventResponse, error)
	ExportToExcel(ctx context.Context, limit int) (*excelize.File, error)
	PurgeOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type activityService struct {
	activityRepo repository.ActivityRepository
}

func NewActivityService(activityRepo repository.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

// Archive persists one event envelope into the archive table.
func (s *activityService) Archive(ctx context.Context, e events.Event) error {
	archived, err := toArchivedEvent(e)
	if err != nil {
		return err
	}

	return s.activityRepo.Insert(ctx, archived)
}

// ListRecent returns the newest archived events, capped at MaxFeedLimit.
func (s *activityService) ListRecent(ctx context.Context, limit int) ([]model.ActivityEventResponse, error) {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}

	archived, err := s.activityRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	feed := make([]model.ActivityEventResponse, len(archived))
	for i, e := range archived {
		feed[i] = model.ToActivityEventResponse(e)
	}

	return feed, nil
}

// ExportToExcel builds an .xlsx workbook of the recent archive slice.
func (s *activityService) ExportToExcel(ctx context.Context, limit int) (*excelize.File, error) {
	// 1. Same clamp as the feed
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}

	// 2. Fetch the archived rows. The export carries the archive columns
	// the JSON feed leaves out (channels, archived_at).
	archived, err := s.activityRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list events for export: %w", err)
	}

	// 3. Build the workbook
	f, err := buildActivityExcelFile(archived)
	if err != nil {
		return nil, fmt.Errorf("build excel file: %w", err)
	}

	return f, nil
}

// PurgeOldEvents drops events past the retention window.
func (s *activityService) PurgeOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.activityRepo.PurgeOlderThan(ctx, retentionDays)
}

const exportSheetName = "Activity feed"

func buildActivityExcelFile(archived []model.ArchivedEvent) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", exportSheetName)

	// Row 1: Header
	headers := []string{
		"Event ID",
		"Type",
		"Note ID",
		"Actor ID",
		"Amount",
		"Content",
		"Channels",
		"Occurred At",
		"Archived At",
	}

	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(exportSheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
	})
	if err == nil {
		f.SetCellStyle(exportSheetName, "A1", "I1", headerStyle)
	}

	// Data rows, starting from row 2
	for i, e := range archived {
		rowNum := i + 2

		cellAt := func(col int) string {
			cell, _ := excelize.CoordinatesToCellName(col, rowNum)
			return cell
		}

		f.SetCellValue(exportSheetName, cellAt(1), e.ID.String())
		f.SetCellValue(exportSheetName, cellAt(2), e.EventType)
		f.SetCellValue(exportSheetName, cellAt(3), e.NoteID)
		if e.ActorID != nil {
			f.SetCellValue(exportSheetName, cellAt(4), e.ActorID.String())
		}
		if e.Amount != nil {
			f.SetCellValue(exportSheetName, cellAt(5), e.Amount.String())
		}
		if e.Content != nil {
			f.SetCellValue(exportSheetName, cellAt(6), *e.Content)
		}
		f.SetCellValue(exportSheetName, cellAt(7), strings.Join(e.Channels, ", "))
		f.SetCellValue(exportSheetName, cellAt(8), e.OccurredAt.Format(time.RFC3339))
		f.SetCellValue(exportSheetName, cellAt(9), e.ArchivedAt.Format(time.RFC3339))
	}

	return f, nil
}

// toArchivedEvent maps the published envelope onto archive columns and
// keeps the full envelope as the payload.
func toArchivedEvent(e events.Event) (*model.ArchivedEvent, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event payload: %w", err)
	}

	var payload model.JSONB
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("build event payload: %w", err)
	}

	var content *string
	if e.Content != "" {
		content = &e.Content
	}

	return &model.ArchivedEvent{
		ID:         e.ID,
		EventType:  e.Type,
		NoteID:     e.NoteID,
		ActorID:    e.ActorID,
		Amount:     e.Amount,
		Content:    content,
		Channels:   e.Channels,
		Payload:    payload,
		OccurredAt: e.OccurredAt,
		ArchivedAt: time.Now(),
	}, nil
}
