package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/stonexiaolei/tuzhan-data/internal/config"
	"github.com/stonexiaolei/tuzhan-data/internal/notify"
	"github.com/stonexiaolei/tuzhan-data/internal/report"
	"github.com/stonexiaolei/tuzhan-data/internal/validation"
	"github.com/stonexiaolei/tuzhan-data/pkg/database"
	"github.com/stonexiaolei/tuzhan-data/pkg/logger"
	"github.com/stonexiaolei/tuzhan-data/pkg/models"
)

func runValidate(opts *ValidateOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(opts.SettingsFile)
	if err != nil {
		return err
	}

	now := validation.Now()

	if settings.TargetChainID == "" {
		logger.Info("No target chain configured, daily validation disabled")
		return saveValidationResult(opts.OutputDir, now.Format("20060102"), models.DisabledResult(now))
	}

	ctx := context.Background()
	notifier := notify.NewWeChatNotifier(settings.WeChat)

	mongoClient, err := database.ConnectMongo(cfg.MongoConnString)
	if err != nil {
		// Unreachable store is the fatal path: the run still produces a
		// persisted, report-worthy result value.
		result := &models.ValidationResult{
			Enabled:        true,
			ChainID:        settings.TargetChainID,
			ChainName:      settings.ChainName(settings.TargetChainID),
			Outcomes:       []models.CollectionOutcome{},
			ValidationTime: now,
			TodayDate:      now.Format("2006-01-02"),
			Error:          err.Error(),
		}
		if saveErr := saveValidationResult(opts.OutputDir, now.Format("20060102"), result); saveErr != nil {
			logger.Errorf("Failed to save validation result: %v", saveErr)
		}
		deliverSummary(ctx, notifier, result, settings, opts.NoNotify)
		return err
	}
	defer mongoClient.Disconnect(context.Background())

	var sqlDB *sql.DB
	if cfg.SQLConnString != "" {
		sqlDB, err = database.ConnectSQL(cfg.SQLConnString)
		if err != nil {
			logger.Warnf("Chain master database unavailable, using configured names only: %v", err)
			sqlDB = nil
		} else {
			defer sqlDB.Close()
		}
	}

	store := validation.NewMongoStore(mongoClient, settings.DatabaseName)
	names := validation.NewChainDirectory(sqlDB, settings.ChainMappings)
	validator := validation.NewValidator(store, names)

	window := validation.TodayWindow(now)
	result := validator.ValidateToday(ctx, settings.TargetChainID, settings.Collections, window)

	if err := saveValidationResult(opts.OutputDir, now.Format("20060102"), result); err != nil {
		logger.Errorf("Failed to save validation result: %v", err)
	}

	deliverSummary(ctx, notifier, result, settings, opts.NoNotify)
	printValidationSummary(result)

	// A normal validation failure is a reported condition, not a CLI
	// error; only the fatal path exits nonzero.
	if result.Error != "" {
		return errors.New(result.Error)
	}
	return nil
}

func runReport(opts *ReportOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(opts.SettingsFile)
	if err != nil {
		return err
	}

	now := validation.Now()
	ctx := context.Background()

	mongoClient, err := database.ConnectMongo(cfg.MongoConnString)
	if err != nil {
		return err
	}
	defer mongoClient.Disconnect(context.Background())

	writer, err := report.NewCSVWriter(opts.OutputDir, now.Format("20060102"))
	if err != nil {
		return err
	}

	store := validation.NewMongoStore(mongoClient, settings.DatabaseName)
	generator := report.NewGenerator(store, settings, writer)

	chains, err := generator.Run(ctx, now)
	if err != nil {
		return err
	}
	logger.Infof("Report written to %s", writer.Path)

	if summaryPath, err := report.WriteSummary(opts.OutputDir, now.Format("20060102"), now, chains); err != nil {
		logger.Errorf("Failed to write report summary: %v", err)
	} else {
		logger.Infof("Report summary saved to %s", summaryPath)
	}

	if !opts.NoNotify {
		notifier := notify.NewWeChatNotifier(settings.WeChat)
		for _, chain := range chains {
			message := report.FormatChainMessage(chain, now, settings)
			if err := notifier.SendMarkdown(ctx, message); err != nil {
				logger.Errorf("Failed to deliver report for chain %s: %v", chain.ChainID, err)
			}
		}
	}

	return nil
}

func deliverSummary(ctx context.Context, notifier *notify.WeChatNotifier, result *models.ValidationResult, settings *models.Settings, noNotify bool) {
	if noNotify {
		return
	}
	summary := validation.RenderSummary(result, settings)
	if summary == "" {
		return
	}
	if err := notifier.SendMarkdown(ctx, summary); err != nil {
		logger.Errorf("Failed to deliver notification: %v", err)
	}
}

// saveValidationResult serializes the result to one JSON file per
// calendar day, named deterministically by date.
func saveValidationResult(dir string, date string, result *models.ValidationResult) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("today_validation_%s.json", date))
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode validation result: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write validation result '%s': %w", path, err)
	}

	logger.Infof("Validation result saved to %s", path)
	return nil
}

func printValidationSummary(result *models.ValidationResult) {
	fmt.Println("==================================================")
	fmt.Println("Daily Data Validation Summary")
	fmt.Println("==================================================")
	fmt.Printf("Validation time: %s\n", result.ValidationTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("Collections: %d, passed: %d, failed: %d\n",
		result.TotalCollections, result.SuccessfulCollections, result.FailedCollections)

	for _, outcome := range result.Outcomes {
		if outcome.Success {
			continue
		}
		reason := outcome.Error
		if reason == "" {
			reason = "data anomaly"
			if outcome.TodayCount == 0 {
				reason = "no data today"
			} else if !outcome.IsLatestToday {
				reason = "most recent record is not from today"
			}
		}
		fmt.Printf("  FAILED %s: %s\n", outcome.Collection, reason)
	}
	fmt.Println("==================================================")
}
