package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/stonexiaolei/tuzhan-data/pkg/models"
)

// FormatChainMessage renders one chain's statistics report as a WeChat
// markdown message. Collection display names come from the settings,
// which may be nil.
func FormatChainMessage(chain ChainReport, now time.Time, settings *models.Settings) string {
	chainName := chain.ChainName
	if chainName == "" {
		chainName = fmt.Sprintf("Chain %s", chain.ChainID)
	}

	todayDate := now.Format("2006-01-02")
	yesterdayDate := now.AddDate(0, 0, -1).Format("2006-01-02")

	var b strings.Builder
	fmt.Fprintf(&b, "# 📊 %s Data Statistics Report\n", chainName)
	fmt.Fprintf(&b, "**Date**: %s  \n", todayDate)
	fmt.Fprintf(&b, "**Total records**: %d  \n", chain.TotalRecords)

	if len(chain.Anomalies) == 0 {
		b.WriteString("\n## ✅ Data Status\nAll data is up to date.\n")
		return b.String()
	}

	b.WriteString("\n## ⚠️ Data Anomalies\n")
	fmt.Fprintf(&b, "The latest update for the following collections is not from yesterday (%s):\n\n", yesterdayDate)
	b.WriteString("| Collection | Last Update |\n")
	b.WriteString("|--------|--------------|\n")

	for _, anomaly := range chain.Anomalies {
		display := anomaly.Collection
		if settings != nil {
			display = settings.CollectionDisplayName(anomaly.Collection)
		}
		lastUpdate := "no data"
		if anomaly.LastCreateTime != nil {
			lastUpdate = anomaly.LastCreateTime.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(&b, "| %s | <font color=\"warning\">%s</font> |\n", display, lastUpdate)
	}
	return b.String()
}
