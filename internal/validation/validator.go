// Package validation checks that a chain's transactional records have
// landed in MongoDB within the current calendar day and aggregates the
// per-collection verdicts into a single result.
package validation

import (
	"context"
	"fmt"

	"github.com/stonexiaolei/tuzhan-data/pkg/logger"
	"github.com/stonexiaolei/tuzhan-data/pkg/models"
	"github.com/stonexiaolei/tuzhan-data/pkg/utils"
)

type Validator struct {
	Store CollectionStore
	Names NameResolver
}

func NewValidator(store CollectionStore, names NameResolver) *Validator {
	return &Validator{Store: store, Names: names}
}

// ValidateToday checks every configured collection, in order, for
// records created within the window and returns the aggregate verdict.
//
// All failure modes are encoded in the returned value: a per-collection
// query failure becomes a failing outcome and the remaining collections
// are still attempted; a malformed chain id or an unreachable store
// sets Error, leaves Success nil, and produces no outcomes. Callers
// must not invoke this with an empty chainID; when no target chain is
// configured they build the disabled result themselves.
func (v *Validator) ValidateToday(ctx context.Context, chainID string, collections []string, window models.ValidationWindow) *models.ValidationResult {
	now := Now()
	result := &models.ValidationResult{
		Enabled:        true,
		ChainID:        chainID,
		Outcomes:       []models.CollectionOutcome{},
		ValidationTime: now,
		TodayDate:      window.Start.Format("2006-01-02"),
	}

	chainIDLong, err := utils.ParseChainID(chainID)
	if err != nil {
		logger.Errorf("Validation aborted: %v", err)
		result.Error = err.Error()
		return result
	}

	if err := v.Store.Ping(ctx); err != nil {
		logger.Errorf("Validation aborted, data store unreachable: %v", err)
		result.Error = fmt.Sprintf("data store unreachable: %v", err)
		return result
	}

	// Display name is cosmetic, a failed lookup never fails the run.
	if v.Names != nil {
		name, err := v.Names.ResolveName(ctx, chainID)
		if err != nil {
			logger.Warnf("Could not resolve name for chain %s: %v", chainID, err)
		} else {
			result.ChainName = name
		}
	}

	logger.Infof("Validating today's data for chain %s across %d collections", chainID, len(collections))

	for _, collection := range collections {
		outcome := v.checkCollection(ctx, collection, chainIDLong, window)
		result.Outcomes = append(result.Outcomes, outcome)
		if outcome.Success {
			result.SuccessfulCollections++
		} else {
			result.FailedCollections++
		}
	}

	result.TotalCollections = len(result.Outcomes)
	overall := result.FailedCollections == 0
	result.Success = &overall

	if overall {
		logger.Infof("Validation passed: chain %s has today's data in all %d collections", chainID, result.TotalCollections)
	} else {
		logger.Warnf("Validation failed: chain %s has %d of %d collections without today's data", chainID, result.FailedCollections, result.TotalCollections)
	}

	return result
}

// checkCollection runs the window count and the most-recent lookup for
// one collection. Any query error yields a zeroed failing outcome so
// the caller can keep going.
func (v *Validator) checkCollection(ctx context.Context, collection string, chainID int64, window models.ValidationWindow) models.CollectionOutcome {
	todayCount, err := v.Store.CountInWindow(ctx, collection, chainID, window)
	if err != nil {
		logger.Errorf("Error checking collection %s: %v", collection, err)
		return models.CollectionOutcome{Collection: collection, Error: err.Error()}
	}

	totalCount, err := v.Store.CountTotal(ctx, collection, chainID)
	if err != nil {
		logger.Errorf("Error checking collection %s: %v", collection, err)
		return models.CollectionOutcome{Collection: collection, Error: err.Error()}
	}

	latest, err := v.Store.LatestCreateTime(ctx, collection, chainID)
	if err != nil {
		logger.Errorf("Error checking collection %s: %v", collection, err)
		return models.CollectionOutcome{Collection: collection, Error: err.Error()}
	}

	outcome := models.CollectionOutcome{
		Collection: collection,
		TodayCount: todayCount,
		TotalCount: totalCount,
	}

	if latest != nil {
		local := latest.In(window.Start.Location())
		outcome.LatestCreateTime = &local
		outcome.IsLatestToday = window.Contains(local)
	}

	// Both conditions are required: residual writes after midnight can
	// leave a nonzero window count while the true newest record is
	// older, and a boundary-rounded newest record can slip the count.
	outcome.Success = outcome.TodayCount > 0 && outcome.IsLatestToday

	if outcome.Success {
		logger.Infof("  Collection %s passed: %d records today", collection, outcome.TodayCount)
	} else if outcome.TodayCount == 0 {
		logger.Warnf("  Collection %s failed: no data today", collection)
	} else {
		logger.Warnf("  Collection %s failed: most recent record is not from today", collection)
	}

	return outcome
}
