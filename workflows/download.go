package workflows

import (
	"os"
	"path/filepath"
	"strings"
)

// Downloader persists a generated exam artifact locally.
type Downloader interface {
	Save(filename string, data []byte) (string, error)
}

// FileDownloader writes artifacts into a target directory.
type FileDownloader struct {
	Dir string
}

func (d FileDownloader) Save(filename string, data []byte) (string, error) {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// ExamFilename derives the download name from the course name, replacing
// spaces so the file is shell-friendly.
func ExamFilename(courseName string) string {
	return "exam_" + strings.ReplaceAll(courseName, " ", "_") + ".pdf"
}
