// Package artifact owns the model artifact lifecycle: the on-disk bundle
// layout, the release archive format, remote fetching and the serving-side
// store. An artifact is write-once; a new training run always produces a
// new version directory.
package artifact

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mikey/sms-spam-classifier/internal/classifier"
	"github.com/mikey/sms-spam-classifier/internal/core"
	"github.com/mikey/sms-spam-classifier/internal/features"
)

const (
	manifestFile   = "manifest.json"
	spaceFile      = "feature_space.json"
	classifierFile = "classifier.json"

	// ArchiveName is the release archive filename expected at the remote source
	ArchiveName = "model-release.tar.gz"
)

// manifest is the persisted artifact descriptor: metadata plus sha256
// checksums of the payload files
type manifest struct {
	core.ArtifactMetadata
	Checksums map[string]string `json:"checksums"`
}

// Save persists a trained bundle under dir/<version>/. Serialization uses
// canonical JSON (sorted map keys), so saving the same fitted model twice
// yields byte-identical files.
func Save(dir string, meta core.ArtifactMetadata, space *features.FeatureSpace, clf core.TrainableClassifier) error {
	if meta.Version == "" {
		return fmt.Errorf("artifact version must not be empty")
	}

	spaceBytes, err := json.Marshal(space)
	if err != nil {
		return fmt.Errorf("failed to encode feature space: %w", err)
	}
	clfBytes, err := clf.Serialize()
	if err != nil {
		return fmt.Errorf("failed to encode classifier: %w", err)
	}

	m := manifest{
		ArtifactMetadata: meta,
		Checksums: map[string]string{
			spaceFile:      checksum(spaceBytes),
			classifierFile: checksum(clfBytes),
		},
	}
	manifestBytes, err := json.Marshal(&m)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	versionDir := filepath.Join(dir, meta.Version)
	if err := os.MkdirAll(versionDir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}
	files := map[string][]byte{
		spaceFile:      spaceBytes,
		classifierFile: clfBytes,
		manifestFile:   manifestBytes,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(versionDir, name), data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

// Load reads and validates the bundle for a version from dir/<version>/.
// A missing bundle surfaces the underlying fs.ErrNotExist; any structural
// or schema problem is an ArtifactIntegrityError.
func Load(dir, version string) (*core.ModelArtifact, error) {
	versionDir := filepath.Join(dir, version)

	manifestBytes, err := os.ReadFile(filepath.Join(versionDir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact manifest: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(manifestBytes, &m); err != nil {
		return nil, &core.ArtifactIntegrityError{Version: version, Reason: fmt.Sprintf("malformed manifest: %v", err)}
	}

	if m.Version != version {
		return nil, &core.ArtifactIntegrityError{
			Version: version,
			Reason:  fmt.Sprintf("manifest declares version %q", m.Version),
		}
	}
	if err := validateLabelSchema(m.LabelSchema); err != nil {
		return nil, &core.ArtifactIntegrityError{Version: version, Reason: err.Error()}
	}

	spaceBytes, err := readChecked(versionDir, spaceFile, m.Checksums)
	if err != nil {
		return nil, &core.ArtifactIntegrityError{Version: version, Reason: err.Error()}
	}
	clfBytes, err := readChecked(versionDir, classifierFile, m.Checksums)
	if err != nil {
		return nil, &core.ArtifactIntegrityError{Version: version, Reason: err.Error()}
	}

	var space features.FeatureSpace
	if err := json.Unmarshal(spaceBytes, &space); err != nil {
		return nil, &core.ArtifactIntegrityError{Version: version, Reason: fmt.Sprintf("malformed feature space: %v", err)}
	}
	if err := space.Validate(); err != nil {
		return nil, &core.ArtifactIntegrityError{Version: version, Reason: err.Error()}
	}
	if m.VocabularySize != space.Size() {
		return nil, &core.ArtifactIntegrityError{
			Version: version,
			Reason: fmt.Sprintf("manifest vocabulary size %d does not match feature space size %d",
				m.VocabularySize, space.Size()),
		}
	}

	clf, err := classifier.Deserialize(m.Algorithm, clfBytes)
	if err != nil {
		return nil, &core.ArtifactIntegrityError{Version: version, Reason: err.Error()}
	}

	return &core.ModelArtifact{
		Metadata:   m.ArtifactMetadata,
		Space:      &space,
		Classifier: clf,
	}, nil
}

func readChecked(dir, name string, checksums map[string]string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("missing payload file %s: %v", name, err)
	}
	want, ok := checksums[name]
	if !ok {
		return nil, fmt.Errorf("manifest carries no checksum for %s", name)
	}
	if got := checksum(data); got != want {
		return nil, fmt.Errorf("checksum mismatch for %s: got %s want %s", name, got, want)
	}
	return data, nil
}

func validateLabelSchema(schema []core.Label) error {
	if len(schema) != 2 {
		return fmt.Errorf("label schema must contain exactly two labels, got %d", len(schema))
	}
	seen := map[core.Label]bool{}
	for _, l := range schema {
		seen[l] = true
	}
	if !seen[core.LabelSpam] || !seen[core.LabelHam] {
		return fmt.Errorf("label schema %v does not match expected {spam, ham}", schema)
	}
	return nil
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
