package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/RHDSz/GmailAPI/pkg/report"
)

// saveReport writes both bodies to files named by the report's generation
// time and returns their absolute paths.
func saveReport(rep *report.Report) (txtPath, htmlPath string, err error) {
	stamp := rep.GeneratedAt.Format("20060102_150405")

	txtPath, err = writeReportFile(fmt.Sprintf("reporte_%s.txt", stamp), rep.Text)
	if err != nil {
		return "", "", err
	}

	htmlPath, err = writeReportFile(fmt.Sprintf("reporte_%s.html", stamp), rep.HTML)
	if err != nil {
		return "", "", err
	}

	return txtPath, htmlPath, nil
}

func writeReportFile(name, content string) (string, error) {
	if err := os.WriteFile(name, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return filepath.Abs(name)
}
