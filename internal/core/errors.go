package core

import (
	"fmt"
)

// DataError indicates malformed or insufficient training data. It is raised
// during training only, never while serving.
type DataError struct {
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("training data error: %s", e.Reason)
}

// ArtifactFetchError indicates a network or transport failure while fetching
// a remote model artifact, or a malformed remote archive.
type ArtifactFetchError struct {
	URL string
	Err error
}

func (e *ArtifactFetchError) Error() string {
	return fmt.Sprintf("failed to fetch model artifact from %s: %v", e.URL, e.Err)
}

func (e *ArtifactFetchError) Unwrap() error {
	return e.Err
}

// ArtifactIntegrityError indicates an artifact failed structural or schema
// validation. It is fatal for that version; no partial load is kept.
type ArtifactIntegrityError struct {
	Version string
	Reason  string
}

func (e *ArtifactIntegrityError) Error() string {
	return fmt.Sprintf("model artifact %q failed integrity validation: %s", e.Version, e.Reason)
}

// ModelUnavailableError indicates a classification request arrived before
// any model artifact was loaded.
type ModelUnavailableError struct {
	State string
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("no model artifact available (store state: %s)", e.State)
}
