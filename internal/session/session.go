// =============================================================================
// Shipping Order Converter - Session Store
// =============================================================================
//
// This module holds the outcome of the most recent conversion so that it can
// be merged and exported by later requests.
//
// LIFECYCLE:
//   Store   - replaces the held rows with a new conversion result
//   Merge   - collapses duplicate orders in the held rows, in place
//   Export  - writes the held rows to an upload workbook
//
// LOCKING:
//   A Session is safe for concurrent use. Requests never wait for each
//   other: a request that finds the session busy fails with types.ErrLock.
//
// =============================================================================

package session

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/ginjaninja78/shipping-order-converter/internal/converter"
	"github.com/ginjaninja78/shipping-order-converter/internal/types"
	"github.com/ginjaninja78/shipping-order-converter/internal/xlsxwriter"
)

// Session stores the rows of the last conversion.
type Session struct {
	mu sync.Mutex

	// rows is nil until the first Store.
	rows []types.ConvertedRow

	// sourcePath is the file the rows were converted from.
	sourcePath string

	logger converter.Logger
}

// New creates an empty session. A nil logger discards all messages.
func New(logger converter.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{logger: logger}
}

func (s *Session) acquire() error {
	if !s.mu.TryLock() {
		return types.ErrLock
	}
	return nil
}

// Store keeps a copy of the rows in result, replacing earlier data.
func (s *Session) Store(sourcePath string, result *types.ConversionResult) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.mu.Unlock()

	rows := []types.ConvertedRow{}
	if result != nil {
		rows = append(rows, result.Rows...)
	}
	s.rows = rows
	s.sourcePath = sourcePath
	s.logger.Debug("stored conversion", "source", sourcePath, "rows", len(rows))
	return nil
}

// Rows returns a copy of the held rows.
func (s *Session) Rows() ([]types.ConvertedRow, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if s.rows == nil {
		return nil, types.ErrNoData
	}
	return slices.Clone(s.rows), nil
}

// SourcePath returns the path of the last converted file, or "" if nothing
// has been stored.
func (s *Session) SourcePath() (string, error) {
	if err := s.acquire(); err != nil {
		return "", err
	}
	defer s.mu.Unlock()

	return s.sourcePath, nil
}

// Merge collapses duplicate orders in the held rows and keeps the merged
// rows in their place.
//
// RETURNS:
//   - The merged result.
//   - types.ErrNoData if nothing has been stored, types.ErrLock if busy.
func (s *Session) Merge() (*types.ConversionResult, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.mu.Unlock()

	if s.rows == nil {
		return nil, types.ErrNoData
	}

	before := len(s.rows)
	result := converter.MergeResult(s.rows)
	s.rows = slices.Clone(result.Rows)
	s.logger.Info("merged duplicates", "rows_before", before, "rows_after", result.TotalRows)

	return &result, nil
}

// Export writes the held rows to outputPath.
//
// RETURNS:
//   - The number of rows written.
//   - types.ErrNoData if nothing has been stored, types.ErrLock if busy,
//     or an error wrapping types.ErrWrite.
func (s *Session) Export(outputPath string) (int, error) {
	if err := s.acquire(); err != nil {
		return 0, err
	}
	defer s.mu.Unlock()

	if s.rows == nil {
		return 0, types.ErrNoData
	}

	n, err := xlsxwriter.Write(s.rows, outputPath)
	if err != nil {
		s.logger.Error("export failed", "path", outputPath, "error", err)
		return 0, err
	}
	s.logger.Info("exported orders", "path", outputPath, "rows", n)
	return n, nil
}
