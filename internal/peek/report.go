package peek

// ReportWriter emits one platform report.
type ReportWriter interface {
	// WriteHeader writes the fixed column header row.
	WriteHeader() error

	// WriteRow writes one complete data row.
	WriteRow(name, regions, year, developer, genre string) error

	// Close flushes and closes the report file.
	Close() error
}

// ReportOpener creates report writers. Creating a report truncates any
// existing file at that path.
type ReportOpener interface {
	Create(path string) (ReportWriter, error)
}
