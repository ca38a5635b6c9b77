package testutil

// ImportCall records one Import invocation.
type ImportCall struct {
	Core       string
	ReportPath string
}

// RecordingImporter records every import and optionally fails.
type RecordingImporter struct {
	Calls []ImportCall
	Err   error
}

func (r *RecordingImporter) Import(core string, reportPath string) error {
	r.Calls = append(r.Calls, ImportCall{Core: core, ReportPath: reportPath})
	return r.Err
}
