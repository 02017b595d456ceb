package ui

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// exportPath resolves the file an export is written to. Relative names
// land in dir, or the working directory when dir is empty.
func exportPath(filename, dir string) string {
	path := strings.TrimSpace(filename)
	if path == "" {
		path = "patterns.csv"
	}
	if !filepath.IsAbs(path) {
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				cwd = "."
			}
			dir = cwd
		}
		path = filepath.Join(dir, path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".csv") {
		path += ".csv"
	}
	return path
}

// exportTableCmd writes the header and the canonical matrix as CSV
func (m Model) exportTableCmd(filename string) tea.Cmd {
	if m.table == nil {
		return nil
	}

	cols := m.table.Columns()
	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Header
	}
	matrix := m.table.CanonicalMatrix()
	path := exportPath(filename, m.config.ExportDir)

	return func() tea.Msg {
		if err := writeCSV(path, header, matrix); err != nil {
			return ExportCompleteMsg{Err: err}
		}
		return ExportCompleteMsg{Path: path, Rows: len(matrix)}
	}
}

func writeCSV(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Close()
}
