package types

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the converter. All of them are terminal for the
// request that triggered them.
var (
	ErrOpen           = errors.New("cannot open spreadsheet")
	ErrNoSheet        = errors.New("spreadsheet has no worksheet")
	ErrSheetRead      = errors.New("cannot read worksheet")
	ErrNoData         = errors.New("no converted data, convert a file first")
	ErrWrite          = errors.New("cannot write spreadsheet")
	ErrLock           = errors.New("session is busy")
	ErrInvalidMapping = errors.New("invalid column mapping")
)

func NewOpenError(path string, err error) error {
	return fmt.Errorf("%w %s: %v", ErrOpen, path, err)
}

func NewSheetReadError(sheet string, err error) error {
	return fmt.Errorf("%w %q: %v", ErrSheetRead, sheet, err)
}

func NewWriteError(path string, err error) error {
	return fmt.Errorf("%w %s: %v", ErrWrite, path, err)
}
