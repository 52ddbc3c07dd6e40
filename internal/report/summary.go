package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteSummary writes the plain-text run summary next to the CSV, one
// file per calendar day. It returns the file path.
func WriteSummary(dir string, date string, now time.Time, chains []ChainReport) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory '%s': %w", dir, err)
	}

	var b strings.Builder
	b.WriteString("MongoDB Report Summary\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format("2006-01-02 15:04:05"))

	for _, chain := range chains {
		name := chain.ChainName
		if name == "" {
			name = fmt.Sprintf("Chain %s", chain.ChainID)
		}
		fmt.Fprintf(&b, "%s (id %s): %d records, %d anomalies\n",
			name, chain.ChainID, chain.TotalRecords, len(chain.Anomalies))
		for _, anomaly := range chain.Anomalies {
			lastUpdate := "no data"
			if anomaly.LastCreateTime != nil {
				lastUpdate = anomaly.LastCreateTime.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(&b, "  - %s: last update %s\n", anomaly.Collection, lastUpdate)
		}
	}

	path := filepath.Join(dir, fmt.Sprintf("report_summary_%s.txt", date))
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("failed to write report summary '%s': %w", path, err)
	}
	return path, nil
}
