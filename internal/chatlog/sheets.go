package chatlog

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// sheetsAppendRange targets the first sheet; Append finds the table edge on
// its own.
const sheetsAppendRange = "A1"

// SheetsSink appends transcript rows to a Google Sheets spreadsheet, one row
// per entry.
type SheetsSink struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
}

// NewSheetsSink creates a sink for the given spreadsheet using service
// account credentials JSON.
func NewSheetsSink(ctx context.Context, spreadsheetID string, credentialsJSON []byte) (*SheetsSink, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("chatlog: create sheets service: %w", err)
	}
	return &SheetsSink{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
	}, nil
}

// Append writes one row: timestamp, session, sender, message, heat score,
// intent, industry.
func (s *SheetsSink) Append(ctx context.Context, e Entry) error {
	row := []interface{}{
		e.Timestamp.Format(time.RFC3339),
		e.SessionID,
		e.Sender,
		e.Message,
		e.HeatScore,
		e.Intent,
		e.Industry,
	}
	_, err := s.values.
		Append(s.spreadsheetID, sheetsAppendRange, &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("chatlog: sheets append: %w", err)
	}
	return nil
}
