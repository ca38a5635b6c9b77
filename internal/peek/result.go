package peek

// CoreResult summarizes the scan of one core directory.
type CoreResult struct {
	Core       string
	ReportPath string

	Files      int // regular files found in the core directory
	Processed  int // files that hashed successfully
	Rows       int // rows written to the report
	Unmatched  int // hash not present in the reference database
	Unreleased int // ROM known but without a release row

	// Truncated is set when an unhashable file stopped the core's file loop.
	// StoppedAt names that file.
	Truncated bool
	StoppedAt string
}

// Skipped returns the number of files that never reached a lookup because
// the loop stopped early.
func (r *CoreResult) Skipped() int {
	return r.Files - r.Processed
}
