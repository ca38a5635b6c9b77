package peek

// Importer hands a finished report to the downstream library tool.
type Importer interface {
	Import(core string, reportPath string) error
}

// NopImporter skips the import step.
type NopImporter struct{}

func (NopImporter) Import(string, string) error { return nil }
