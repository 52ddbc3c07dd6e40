package validation

import (
	"fmt"
	"strings"

	"github.com/stonexiaolei/tuzhan-data/pkg/models"
)

const latestTimeLayout = "2006-01-02 15:04:05"

// RenderSummary renders a validation result as a WeChat markdown
// message. Collection display names come from the settings, which may
// be nil. Returns "" for disabled results; the caller sends nothing in
// that case.
func RenderSummary(result *models.ValidationResult, settings *models.Settings) string {
	if result == nil || !result.Enabled {
		return ""
	}

	chainName := result.ChainName
	if chainName == "" {
		chainName = fmt.Sprintf("Chain %s", result.ChainID)
	}

	var b strings.Builder

	if result.Error != "" {
		fmt.Fprintf(&b, "# ❌ %s Daily Data Validation Error\n", chainName)
		fmt.Fprintf(&b, "**Date**: %s\n", result.TodayDate)
		fmt.Fprintf(&b, "**Error**: %s\n", result.Error)
		return b.String()
	}

	var totalRecords int64
	for _, outcome := range result.Outcomes {
		if outcome.Success {
			totalRecords += outcome.TodayCount
		}
	}

	fmt.Fprintf(&b, "# 📊 %s Daily Data Report\n", chainName)
	fmt.Fprintf(&b, "**Date**: %s  \n", result.TodayDate)
	fmt.Fprintf(&b, "**Records today**: %d  \n", totalRecords)

	if result.Success != nil && *result.Success {
		b.WriteString("\n## ✅ Data Status\nAll collections have today's data.\n")
		return b.String()
	}

	b.WriteString("\n## ⚠️ Attention Needed\nThe following collections need attention:\n\n")
	for _, outcome := range result.Outcomes {
		if outcome.Success {
			continue
		}
		display := outcome.Collection
		if settings != nil {
			display = settings.CollectionDisplayName(outcome.Collection)
		}
		fmt.Fprintf(&b, "- **%s**: %s\n", display, failureReason(outcome))
	}
	return b.String()
}

func failureReason(outcome models.CollectionOutcome) string {
	if outcome.Error != "" {
		return outcome.Error
	}

	var reasons []string
	if outcome.TodayCount == 0 {
		reasons = append(reasons, "no data today")
	}
	if !outcome.IsLatestToday && outcome.LatestCreateTime != nil {
		reasons = append(reasons, fmt.Sprintf("most recent record is not from today (latest: %s)",
			outcome.LatestCreateTime.Format(latestTimeLayout)))
	}
	if len(reasons) == 0 {
		return "data anomaly"
	}
	return strings.Join(reasons, ", ")
}
