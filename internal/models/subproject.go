package models

// Subproject pairs an immediate subdirectory of the root with the project
// name stored in its sidecar file.
type Subproject struct {
	// DirName is the directory name relative to the root (a single path
	// segment). It identifies the record for one load cycle.
	DirName string `json:"dir_name"`

	// DisplayName is the human-readable project name, empty when the
	// directory carries no usable metadata.
	DisplayName string `json:"display_name"`
}

// NewSubproject creates a new Subproject instance
func NewSubproject(dirName, displayName string) Subproject {
	return Subproject{DirName: dirName, DisplayName: displayName}
}

// Label returns the display name, falling back to the directory name.
func (s Subproject) Label() string {
	if s.DisplayName == "" {
		return s.DirName
	}
	return s.DisplayName
}

// ProjectMetadata is the on-disk shape of a sidecar file.
type ProjectMetadata struct {
	Name string `json:"name"`
}
