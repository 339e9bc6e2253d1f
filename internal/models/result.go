package models

// Reference is one distinct variable path extracted from a template file,
// together with its resolution outcome against the values document. The path
// is stored without the recognized prefix (e.g. "PG.R1.DBName", not
// ".Values.PG.R1.DBName") and never contains whitespace or pipe syntax.
type Reference struct {
	Path        string `json:"Path"`
	Found       bool   `json:"Found"`
	Occurrences int    `json:"Occurrences"`
}

// FileResult holds the outcome for a single template file: its distinct
// references in first-seen order, or a read error if the file could not be
// processed. A file with a non-empty Error contributes nothing to the
// aggregate statistics.
type FileResult struct {
	Root       string      `json:"Root"`
	File       string      `json:"File"`
	References []Reference `json:"References,omitempty"`
	Error      string      `json:"Error,omitempty"`
}

// RunReport aggregates all file results of one invocation. It is plain data:
// rendering and exit-code decisions read from it, nothing writes to it after
// aggregation.
type RunReport struct {
	ValuesFile      string       `json:"ValuesFile"`
	Roots           []string     `json:"Roots"`
	FilesDiscovered int          `json:"FilesDiscovered"`
	FilesScanned    int          `json:"FilesScanned"`
	Occurrences     int          `json:"Occurrences"`
	Found           int          `json:"Found"`
	Missing         int          `json:"Missing"`
	Success         bool         `json:"Success"`
	Results         []FileResult `json:"Results,omitempty"`
}
