package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomarkdown/markdown"

	"cleanml/domain/core"
	"cleanml/internal/errors"
)

// Manifest records every artifact a reporting run emits.
type Manifest struct {
	RunID     core.RunID      `json:"run_id"`
	StartedAt core.Timestamp  `json:"started_at"`
	Artifacts []core.Artifact `json:"artifacts"`
}

// NewManifest starts a manifest for a fresh run.
func NewManifest() *Manifest {
	return &Manifest{
		RunID:     core.NewRunID(),
		StartedAt: core.Now(),
	}
}

// Record appends one emitted artifact.
func (m *Manifest) Record(kind core.ArtifactKind, path string) {
	m.Artifacts = append(m.Artifacts, core.Artifact{
		Kind:      kind,
		Path:      path,
		CreatedAt: core.Now(),
	})
}

// Write emits manifest.json plus a human-readable run summary in
// Markdown and its HTML rendering.
func (m *Manifest) Write(outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return errors.IOFailure("failed to create output directory "+outDir, err)
	}

	md := m.summaryMarkdown()
	mdPath := filepath.Join(outDir, "summary.md")
	if err := writeFileAtomic(mdPath, []byte(md)); err != nil {
		return err
	}
	m.Record(core.ArtifactSummary, mdPath)

	htmlPath := filepath.Join(outDir, "summary.html")
	if err := writeFileAtomic(htmlPath, markdown.ToHTML([]byte(md), nil, nil)); err != nil {
		return err
	}
	m.Record(core.ArtifactSummary, htmlPath)

	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode run manifest")
	}
	return writeFileAtomic(filepath.Join(outDir, "manifest.json"), raw)
}

func (m *Manifest) summaryMarkdown() string {
	counts := map[core.ArtifactKind]int{}
	for _, a := range m.Artifacts {
		counts[a.Kind]++
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Cleaning report run %s\n\n", m.RunID)
	fmt.Fprintf(&b, "Started at %s.\n\n", m.StartedAt)
	fmt.Fprintf(&b, "Emitted %d charts and %d workbooks.\n\n",
		counts[core.ArtifactChart], counts[core.ArtifactWorkbook])
	b.WriteString("## Artifacts\n\n")
	for _, a := range m.Artifacts {
		fmt.Fprintf(&b, "- `%s` (%s)\n", a.Path, a.Kind)
	}
	return b.String()
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".manifest-*")
	if err != nil {
		return errors.IOFailure("failed to create temp file in "+dir, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.IOFailure("failed to write "+path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.IOFailure("failed to close temp file for "+path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.IOFailure("failed to move "+path+" into place", err)
	}
	return nil
}
