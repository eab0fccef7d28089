package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/matillion/slack-channel-export/internal/jst"
)

// FileRef describes the archive file written for one run
type FileRef struct {
	Path  string `json:"path"`
	Name  string `json:"name"`
	Bytes int64  `json:"bytes"`
}

// DefaultFilename builds the output name used when the caller gives none:
// <channelID>-YYYYMMDD-HHMMSS.json, timestamped in JST.
func DefaultFilename(channelID string, now time.Time) string {
	return fmt.Sprintf("%s-%s.json", channelID, now.In(jst.Location).Format("20060102-150405"))
}

// WriteFile marshals the document and writes it in a single call, so an
// interrupted run leaves no partial file behind.
func WriteFile(path string, doc Document) (FileRef, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return FileRef{}, fmt.Errorf("failed to marshal document: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return FileRef{}, fmt.Errorf("failed to write file: %w", err)
	}

	return FileRef{
		Path:  path,
		Name:  filepath.Base(path),
		Bytes: int64(len(data)),
	}, nil
}
