package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/livp123/suriwatch/internal/eve"
	xerrors "github.com/livp123/suriwatch/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAlerts() []eve.Alert {
	return []eve.Alert{
		{
			Signature:          "ET SCAN Potential SSH Scan",
			SourceAddress:      "10.0.0.5",
			DestinationAddress: "10.0.0.1",
			RawTimestamp:       "2024-01-02T10:00:00Z",
			FormattedTimestamp: "02 January 2024, 10:00:00",
			DateOnly:           "2024-01-02",
			Severity:           2,
		},
		{
			Signature:          eve.UnknownSignature,
			RawTimestamp:       "garbage",
			FormattedTimestamp: "garbage",
			DateOnly:           eve.UnknownDate,
		},
	}
}

// TestFileStore_RoundTrip tests that a saved snapshot loads back field for field
// TestFileStore_RoundTrip 测试保存的快照逐字段读回
func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "index", "mini_eve.json"))

	built := time.Date(2024, 1, 2, 11, 0, 0, 0, time.UTC)
	snap := &Snapshot{BuiltAt: built, Source: "/var/log/suricata/eve.json", Alerts: sampleAlerts()}
	require.NoError(t, store.Save(ctx, snap))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, built.Equal(loaded.BuiltAt))
	assert.Equal(t, snap.Source, loaded.Source)
	assert.Equal(t, snap.Alerts, loaded.Alerts)
	assert.Equal(t, []string{"2024-01-02"}, loaded.Dates())
}

// TestFileStore_Missing tests that a missing snapshot is empty
// TestFileStore_Missing 测试缺失的快照视为空
func TestFileStore_Missing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Alerts)
	assert.NotNil(t, snap.Alerts)
}

// TestFileStore_LegacyArray tests the bare array format
// TestFileStore_LegacyArray 测试纯数组格式
func TestFileStore_LegacyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini_eve.json")
	legacy := `[{"signature":"X","src_ip":"1.1.1.1","dest_ip":"2.2.2.2","timestamp":"2024-01-01T10:00:00Z","formatted_time":"01 January 2024, 10:00:00","date_only":"2024-01-01"}]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0644))

	snap, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Alerts, 1)
	assert.Equal(t, "X", snap.Alerts[0].Signature)
	assert.Equal(t, "2024-01-01", snap.Alerts[0].DateOnly)
	assert.True(t, snap.BuiltAt.IsZero())

	require.NoError(t, os.WriteFile(path, []byte("[]"), 0644))
	snap, err = NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Alerts)
}

// TestFileStore_Corrupt tests that corrupt content is a persistence error
// TestFileStore_Corrupt 测试损坏的内容是持久化错误
func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini_eve.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"alerts":[{"signature":`), 0644))

	_, err := NewFileStore(path).Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerrors.ErrPersistence))
}

// TestFileStore_SaveEmpty tests that an empty snapshot is written as an empty list
func TestFileStore_SaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mini_eve.json")
	store := NewFileStore(path)

	require.NoError(t, store.Save(context.Background(), &Snapshot{}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"alerts": []`)
}

// TestFileStore_Canceled tests context cancellation
func TestFileStore_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewFileStore(filepath.Join(t.TempDir(), "x.json"))

	assert.ErrorIs(t, store.Save(ctx, &Snapshot{}), context.Canceled)
	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestSnapshot_NilDates tests Dates on a nil snapshot
func TestSnapshot_NilDates(t *testing.T) {
	var snap *Snapshot
	assert.Equal(t, []string{}, snap.Dates())
}
