package artifact

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// bundleFiles is the fixed release archive layout
var bundleFiles = []string{manifestFile, spaceFile, classifierFile}

// Package writes the release archive for a persisted version. The archive
// holds the three bundle files flat at its root, matching the layout a
// remote fetch unpacks.
func Package(dir, version, outPath string) error {
	versionDir := filepath.Join(dir, version)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create archive %s: %w", outPath, err)
	}
	defer out.Close()

	gw := gzip.NewWriter(out)
	tw := tar.NewWriter(gw)

	for _, name := range bundleFiles {
		data, err := os.ReadFile(filepath.Join(versionDir, name))
		if err != nil {
			return fmt.Errorf("failed to read bundle file %s: %w", name, err)
		}
		hdr := &tar.Header{
			Name: name,
			Mode: 0o644,
			Size: int64(len(data)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("failed to write archive header for %s: %w", name, err)
		}
		if _, err := tw.Write(data); err != nil {
			return fmt.Errorf("failed to write archive entry %s: %w", name, err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}
	if err := gw.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive compression: %w", err)
	}
	return nil
}

// Unpack extracts a release archive into destDir. Only the known bundle
// files are accepted; anything else makes the archive malformed.
func Unpack(r io.Reader, destDir string) error {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return fmt.Errorf("archive is not gzip-compressed: %w", err)
	}
	defer gr.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	seen := map[string]bool{}
	tr := tar.NewReader(gr)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}

		name := filepath.Clean(hdr.Name)
		if strings.Contains(name, "..") || filepath.IsAbs(name) || !allowedBundleFile(filepath.Base(name)) {
			return fmt.Errorf("archive contains unexpected entry %q", hdr.Name)
		}
		name = filepath.Base(name)

		data, err := io.ReadAll(tr)
		if err != nil {
			return fmt.Errorf("failed to read archive entry %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(destDir, name), data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		seen[name] = true
	}

	for _, name := range bundleFiles {
		if !seen[name] {
			return fmt.Errorf("archive is missing bundle file %s", name)
		}
	}
	return nil
}

func allowedBundleFile(name string) bool {
	for _, b := range bundleFiles {
		if name == b {
			return true
		}
	}
	return false
}
