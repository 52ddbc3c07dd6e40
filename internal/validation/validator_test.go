package validation

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stonexiaolei/tuzhan-data/pkg/models"
)

type fakeCollection struct {
	todayCount int64
	totalCount int64
	latest     *time.Time
	err        error
}

type fakeStore struct {
	pingErr     error
	collections map[string]fakeCollection
}

func (f *fakeStore) Ping(ctx context.Context) error {
	return f.pingErr
}

func (f *fakeStore) CountInWindow(ctx context.Context, collection string, chainID int64, window models.ValidationWindow) (int64, error) {
	c := f.collections[collection]
	if c.err != nil {
		return 0, c.err
	}
	return c.todayCount, nil
}

func (f *fakeStore) CountTotal(ctx context.Context, collection string, chainID int64) (int64, error) {
	c := f.collections[collection]
	if c.err != nil {
		return 0, c.err
	}
	return c.totalCount, nil
}

func (f *fakeStore) LatestCreateTime(ctx context.Context, collection string, chainID int64) (*time.Time, error) {
	c := f.collections[collection]
	if c.err != nil {
		return nil, c.err
	}
	return c.latest, nil
}

type fakeResolver struct {
	name string
	err  error
}

func (f *fakeResolver) ResolveName(ctx context.Context, chainID string) (string, error) {
	return f.name, f.err
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestValidateTodayPass(t *testing.T) {
	window := TodayWindow(Now())
	latest := window.Start.Add(14*time.Hour + 30*time.Minute)

	store := &fakeStore{collections: map[string]fakeCollection{
		"orders": {todayCount: 150, totalCount: 9000, latest: timePtr(latest)},
	}}
	validator := NewValidator(store, &fakeResolver{name: "Chain A"})

	result := validator.ValidateToday(context.Background(), "1001", []string{"orders"}, window)

	if result.Success == nil || !*result.Success {
		t.Fatalf("Expected overall success, got %+v", result)
	}
	if !result.Enabled {
		t.Error("Expected result to be enabled")
	}
	if result.ChainName != "Chain A" {
		t.Errorf("Expected chain name Chain A, got %q", result.ChainName)
	}
	if len(result.Outcomes) != 1 {
		t.Fatalf("Expected 1 outcome, got %d", len(result.Outcomes))
	}

	outcome := result.Outcomes[0]
	if outcome.Collection != "orders" || !outcome.Success {
		t.Errorf("Expected passing orders outcome, got %+v", outcome)
	}
	if outcome.TodayCount != 150 {
		t.Errorf("Expected today count 150, got %d", outcome.TodayCount)
	}
	if !outcome.IsLatestToday {
		t.Error("Expected latest record to be from today")
	}
	if result.SuccessfulCollections != 1 || result.FailedCollections != 0 {
		t.Errorf("Expected 1 successful, 0 failed, got %d/%d", result.SuccessfulCollections, result.FailedCollections)
	}
}

func TestValidateTodayStale(t *testing.T) {
	window := TodayWindow(Now())
	latest := window.Start.Add(-15 * time.Minute) // yesterday 23:45

	store := &fakeStore{collections: map[string]fakeCollection{
		"orders": {todayCount: 0, totalCount: 8000, latest: timePtr(latest)},
	}}
	validator := NewValidator(store, nil)

	result := validator.ValidateToday(context.Background(), "1001", []string{"orders"}, window)

	if result.Success == nil || *result.Success {
		t.Fatalf("Expected overall failure, got %+v", result)
	}
	outcome := result.Outcomes[0]
	if outcome.Success || outcome.TodayCount != 0 || outcome.IsLatestToday {
		t.Errorf("Expected stale failing outcome, got %+v", outcome)
	}
	if outcome.LatestCreateTime == nil || !outcome.LatestCreateTime.Equal(latest) {
		t.Errorf("Expected latest create time %v, got %v", latest, outcome.LatestCreateTime)
	}
}

func TestValidateTodayResidualWrites(t *testing.T) {
	// Nonzero window count but the newest record is older: both
	// conditions are required, so this still fails.
	window := TodayWindow(Now())
	latest := window.Start.Add(-2 * time.Hour)

	store := &fakeStore{collections: map[string]fakeCollection{
		"orders": {todayCount: 12, totalCount: 8000, latest: timePtr(latest)},
	}}
	validator := NewValidator(store, nil)

	result := validator.ValidateToday(context.Background(), "1001", []string{"orders"}, window)

	outcome := result.Outcomes[0]
	if outcome.Success {
		t.Errorf("Expected failure when latest record is not from today, got %+v", outcome)
	}
	if outcome.TodayCount != 12 || outcome.IsLatestToday {
		t.Errorf("Expected today_count=12, is_latest_today=false, got %+v", outcome)
	}
}

func TestValidateTodayMixed(t *testing.T) {
	window := TodayWindow(Now())
	latest := window.Start.Add(10 * time.Hour)

	store := &fakeStore{collections: map[string]fakeCollection{
		"orders":  {todayCount: 42, totalCount: 5000, latest: timePtr(latest)},
		"refunds": {todayCount: 0, totalCount: 300},
	}}
	validator := NewValidator(store, nil)

	result := validator.ValidateToday(context.Background(), "1001", []string{"orders", "refunds"}, window)

	if result.TotalCollections != 2 || result.SuccessfulCollections != 1 || result.FailedCollections != 1 {
		t.Fatalf("Expected counts 2/1/1, got %d/%d/%d",
			result.TotalCollections, result.SuccessfulCollections, result.FailedCollections)
	}
	if result.Success == nil || *result.Success {
		t.Error("Expected overall failure with one failing collection")
	}
	if result.Outcomes[0].Collection != "orders" || result.Outcomes[1].Collection != "refunds" {
		t.Error("Expected outcomes in configured collection order")
	}
	if result.Outcomes[1].LatestCreateTime != nil || result.Outcomes[1].IsLatestToday {
		t.Errorf("Expected empty-collection outcome without latest time, got %+v", result.Outcomes[1])
	}
}

func TestValidateTodayQueryFailureContinues(t *testing.T) {
	window := TodayWindow(Now())
	latest := window.Start.Add(9 * time.Hour)

	store := &fakeStore{collections: map[string]fakeCollection{
		"orders":  {err: errors.New("connection reset")},
		"refunds": {todayCount: 7, totalCount: 300, latest: timePtr(latest)},
	}}
	validator := NewValidator(store, nil)

	result := validator.ValidateToday(context.Background(), "1001", []string{"orders", "refunds"}, window)

	if len(result.Outcomes) != 2 {
		t.Fatalf("Expected both collections attempted, got %d outcomes", len(result.Outcomes))
	}

	failed := result.Outcomes[0]
	if failed.Success || failed.Error == "" || failed.TodayCount != 0 || failed.LatestCreateTime != nil {
		t.Errorf("Expected zeroed failing outcome with recorded error, got %+v", failed)
	}
	if !result.Outcomes[1].Success {
		t.Errorf("Expected second collection to still pass, got %+v", result.Outcomes[1])
	}
	if result.Success == nil || *result.Success {
		t.Error("Expected overall failure")
	}
}

func TestValidateTodayUnreachableStore(t *testing.T) {
	window := TodayWindow(Now())
	store := &fakeStore{pingErr: errors.New("server selection timeout")}
	validator := NewValidator(store, nil)

	result := validator.ValidateToday(context.Background(), "1001", []string{"orders"}, window)

	if result.Error == "" {
		t.Fatal("Expected error to be set for unreachable store")
	}
	if result.Success != nil {
		t.Errorf("Expected nil success on fatal failure, got %v", *result.Success)
	}
	if len(result.Outcomes) != 0 {
		t.Errorf("Expected no outcomes, got %d", len(result.Outcomes))
	}
}

func TestValidateTodayInvalidChainID(t *testing.T) {
	window := TodayWindow(Now())
	store := &fakeStore{collections: map[string]fakeCollection{}}
	validator := NewValidator(store, nil)

	result := validator.ValidateToday(context.Background(), "not-a-number", []string{"orders"}, window)

	if result.Error == "" || result.Success != nil || len(result.Outcomes) != 0 {
		t.Errorf("Expected fatal result for malformed chain id, got %+v", result)
	}
}

func TestValidateTodayEmptyCollections(t *testing.T) {
	window := TodayWindow(Now())
	store := &fakeStore{collections: map[string]fakeCollection{}}
	validator := NewValidator(store, nil)

	result := validator.ValidateToday(context.Background(), "1001", nil, window)

	if result.Success == nil || !*result.Success {
		t.Error("Expected vacuous success for empty collection list")
	}
	if result.TotalCollections != 0 {
		t.Errorf("Expected 0 collections, got %d", result.TotalCollections)
	}
}

func TestValidateTodayNameResolutionDegrades(t *testing.T) {
	window := TodayWindow(Now())
	latest := window.Start.Add(8 * time.Hour)

	store := &fakeStore{collections: map[string]fakeCollection{
		"orders": {todayCount: 3, totalCount: 100, latest: timePtr(latest)},
	}}
	validator := NewValidator(store, &fakeResolver{err: errors.New("lookup failed")})

	result := validator.ValidateToday(context.Background(), "1001", []string{"orders"}, window)

	if result.ChainName != "" {
		t.Errorf("Expected empty chain name on resolver failure, got %q", result.ChainName)
	}
	if result.Success == nil || !*result.Success {
		t.Error("Expected name resolution failure not to affect success")
	}
}

func TestValidateTodayIdempotent(t *testing.T) {
	window := TodayWindow(Now())
	latest := window.Start.Add(11 * time.Hour)

	store := &fakeStore{collections: map[string]fakeCollection{
		"orders":  {todayCount: 20, totalCount: 1000, latest: timePtr(latest)},
		"refunds": {todayCount: 0, totalCount: 50},
	}}
	validator := NewValidator(store, nil)

	first := validator.ValidateToday(context.Background(), "1001", []string{"orders", "refunds"}, window)
	second := validator.ValidateToday(context.Background(), "1001", []string{"orders", "refunds"}, window)

	first.ValidationTime = second.ValidationTime
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical results modulo validation time:\n%+v\n%+v", first, second)
	}
}

func TestDisabledResult(t *testing.T) {
	result := models.DisabledResult(Now())

	if result.Enabled {
		t.Error("Expected disabled result")
	}
	if result.Success != nil {
		t.Error("Expected nil success when disabled")
	}
	if len(result.Outcomes) != 0 || result.TotalCollections != 0 {
		t.Errorf("Expected empty disabled result, got %+v", result)
	}
}
