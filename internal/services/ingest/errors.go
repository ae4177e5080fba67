package ingest

import "github.com/rotisserie/eris"

var (
	ErrUnsupportedFileType = eris.New("unsupported file type, please upload a CSV file")
	ErrEmptyFile           = eris.New("file has no header row")
)
