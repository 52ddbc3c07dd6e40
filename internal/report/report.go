// Package report produces the daily per-chain statistics report: for
// every configured chain and collection it records the newest
// create_time and the record count since the last full hour, appends
// the rows to a dated CSV file, and flags chains whose data has gone
// stale.
package report

import (
	"context"
	"time"

	"github.com/stonexiaolei/tuzhan-data/pkg/logger"
	"github.com/stonexiaolei/tuzhan-data/pkg/models"
	"github.com/stonexiaolei/tuzhan-data/pkg/utils"
)

type Store interface {
	LatestCreateTime(ctx context.Context, collection string, chainID int64) (*time.Time, error)
	CountSince(ctx context.Context, collection string, chainID int64, after time.Time) (int64, error)
	EstimatedCount(ctx context.Context, collection string) (int64, error)
}

// Row is one CSV line: the state of one chain in one collection. A
// failed query is recorded in Error and rendered into the CSV instead
// of the last create time.
type Row struct {
	Timestamp      time.Time
	Collection     string
	ChainID        string
	RecordCount    int64
	LastCreateTime *time.Time
	Error          string
}

// Anomaly marks a collection whose newest record for a chain is older
// than yesterday (or missing entirely).
type Anomaly struct {
	Collection     string
	LastCreateTime *time.Time
}

// ChainReport aggregates one chain's rows and anomalies.
type ChainReport struct {
	ChainID      string
	ChainName    string
	TotalRecords int64
	Anomalies    []Anomaly
}

type Generator struct {
	Store    Store
	Settings *models.Settings
	Writer   *CSVWriter
}

func NewGenerator(store Store, settings *models.Settings, writer *CSVWriter) *Generator {
	return &Generator{Store: store, Settings: settings, Writer: writer}
}

// Run walks collections in configured order and, within each, every
// configured chain. Rows are appended to the CSV as they are produced
// so a partial run still leaves a usable file. Per-chain query errors
// are logged and recorded as zero rows; the run continues.
func (g *Generator) Run(ctx context.Context, now time.Time) ([]ChainReport, error) {
	zone := now.Location()
	yesterday := now.AddDate(0, 0, -1)

	reports := make([]ChainReport, 0, len(g.Settings.ChainIDs))
	index := make(map[string]*ChainReport, len(g.Settings.ChainIDs))
	for _, chainID := range g.Settings.ChainIDs {
		reports = append(reports, ChainReport{
			ChainID:   chainID,
			ChainName: g.Settings.ChainName(chainID),
		})
		index[chainID] = &reports[len(reports)-1]
	}

	for _, collection := range g.Settings.Collections {
		logger.Infof("Processing collection: %s", collection)

		if total, err := g.Store.EstimatedCount(ctx, collection); err != nil {
			logger.Warnf("Could not get document count for %s: %v", collection, err)
		} else {
			logger.Infof("Collection %s holds about %d documents", collection, total)
		}

		for _, chainID := range g.Settings.ChainIDs {
			chain := index[chainID]
			row := g.buildRow(ctx, collection, chainID, now, zone)

			if g.Writer != nil {
				if err := g.Writer.Append(row); err != nil {
					return nil, err
				}
			}

			chain.TotalRecords += row.RecordCount

			// A chain is healthy only when its newest record is dated
			// exactly yesterday: older means the feed stalled, today
			// means yesterday's batch never closed out.
			if row.LastCreateTime == nil || !sameDate(*row.LastCreateTime, yesterday) {
				chain.Anomalies = append(chain.Anomalies, Anomaly{
					Collection:     collection,
					LastCreateTime: row.LastCreateTime,
				})
			}
		}
	}

	return reports, nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (g *Generator) buildRow(ctx context.Context, collection, chainID string, now time.Time, zone *time.Location) Row {
	row := Row{Timestamp: now, Collection: collection, ChainID: chainID}

	id, err := utils.ParseChainID(chainID)
	if err != nil {
		logger.Errorf("  %v", err)
		row.Error = err.Error()
		return row
	}

	latest, err := g.Store.LatestCreateTime(ctx, collection, id)
	if err != nil {
		logger.Errorf("  Error fetching latest create_time for chain %s in %s: %v", chainID, collection, err)
		row.Error = err.Error()
		return row
	}
	if latest == nil {
		logger.Warnf("  No documents found for chain %s in %s", chainID, collection)
		return row
	}

	local := latest.In(zone)
	row.LastCreateTime = &local

	// Count records since the last full hour of the newest record.
	roundedHour := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, zone)
	count, err := g.Store.CountSince(ctx, collection, id, roundedHour)
	if err != nil {
		logger.Errorf("  Error counting documents for chain %s in %s: %v", chainID, collection, err)
		row.Error = err.Error()
		return row
	}
	row.RecordCount = count

	logger.Infof("  Found %d records for chain %s since %s", count, chainID, roundedHour.Format("2006-01-02 15:04:05"))
	return row
}
