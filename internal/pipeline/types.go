package pipeline

// Request is one batch: files in caller order (the order assigns sequence
// numbers), the raw prefix, the first sequence number, and whether the
// folder of the first file is renamed afterwards.
type Request struct {
	Files        []string `json:"files" yaml:"files"`
	Prefix       string   `json:"prefix" yaml:"prefix"`
	StartNumber  int      `json:"start_number" yaml:"start_number"`
	RenameFolder bool     `json:"rename_folder" yaml:"rename_folder"`
	DryRun       bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty"` // Compute names only; touch nothing.
}

// FileRename is one successful rename (base names).
type FileRename struct {
	Original string `json:"original" yaml:"original"`
	New      string `json:"new" yaml:"new"`
}

// FileError is one failed file (base name) with a human-readable reason.
type FileError struct {
	File    string    `json:"file" yaml:"file"`
	Message string    `json:"error" yaml:"error"`
	Kind    ErrorKind `json:"kind" yaml:"kind"`
}

// FolderRename is the outcome of a successful folder rename.
type FolderRename struct {
	Original string `json:"original" yaml:"original"`
	New      string `json:"new" yaml:"new"`
}

// Outcome is the in-band result of a batch. FolderRenamed and
// FolderRenameError are mutually exclusive; both are nil when no folder
// rename was attempted.
type Outcome struct {
	Success           []FileRename  `json:"success" yaml:"success"`
	Errors            []FileError   `json:"error" yaml:"error"`
	FolderRenamed     *FolderRename `json:"folder_renamed" yaml:"folder_renamed"`
	FolderRenameError *string       `json:"folder_rename_error" yaml:"folder_rename_error"`

	// Batch summary.
	Prefix      string `json:"prefix" yaml:"prefix"`             // Effective (truncated) prefix.
	Date        string `json:"date" yaml:"date"`                 // YYMMDD shared by every name.
	StartNumber int    `json:"start_number" yaml:"start_number"` // Policy-adjusted start.
	EndNumber   int    `json:"end_number" yaml:"end_number"`     // Last number given to an attempted rename.
	DryRun      bool   `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
}

func (o *Outcome) fail(file string, kind ErrorKind, msg string) {
	o.Errors = append(o.Errors, FileError{File: file, Message: msg, Kind: kind})
}
