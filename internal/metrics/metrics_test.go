package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"micrometa/internal/dataset"
	"micrometa/internal/extract"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"PipelineRunsTotal", PipelineRunsTotal},
		{"StageDuration", StageDuration},
		{"PipelineRowsOutput", PipelineRowsOutput},
		{"DiscoveryFilesTotal", DiscoveryFilesTotal},
		{"DiscoverySkippedTotal", DiscoverySkippedTotal},
		{"DiscoveryErrors", DiscoveryErrors},
		{"ExtractionDecisionsTotal", ExtractionDecisionsTotal},
		{"EncoderVocabularySize", EncoderVocabularySize},
		{"EncoderFeatureWidth", EncoderFeatureWidth},
		{"EncoderUnseenTotal", EncoderUnseenTotal},
		{"ImageLoadsTotal", ImageLoadsTotal},
		{"ImageLoadDuration", ImageLoadDuration},
		{"ImagesConstrainedTotal", ImagesConstrainedTotal},
		{"ImageLoaderWorkers", ImageLoaderWorkers},
		{"MemoryUsageRatio", MemoryUsageRatio},
		{"MemoryPaused", MemoryPaused},
		{"MemoryGCPauses", MemoryGCPauses},
		{"AppInfo", AppInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestFilesystemObserver(t *testing.T) {
	obs := NewFilesystemObserver()
	op := "test_observer_op"

	obs.ObserveRetryAttempt(op)
	obs.ObserveRetryAttempt(op)
	obs.ObserveRetrySuccess(op)
	obs.ObserveRetryFailure(op)
	obs.ObserveStaleError(op)
	obs.ObserveRetryDuration(op, 0.25)

	assert.Equal(t, 2.0, testutil.ToFloat64(FilesystemRetryAttempts.WithLabelValues(op)))
	assert.Equal(t, 1.0, testutil.ToFloat64(FilesystemRetrySuccess.WithLabelValues(op)))
	assert.Equal(t, 1.0, testutil.ToFloat64(FilesystemRetryFailures.WithLabelValues(op)))
	assert.Equal(t, 1.0, testutil.ToFloat64(FilesystemStaleErrors.WithLabelValues(op)))
}

func TestExtractionObserverCountsByFieldAndOutcome(t *testing.T) {
	obs := NewExtractionObserver()
	slide := ExtractionDecisionsTotal.WithLabelValues(dataset.ColumnSlide, extract.KindNumeric)
	before := testutil.ToFloat64(slide)

	obs.ObserveDecision("s01.tif", extract.Decision{Field: dataset.FieldSlide, Kind: extract.KindNumeric})
	obs.ObserveDecision("s02.tif", extract.Decision{Field: dataset.FieldSlide, Kind: extract.KindNumeric})

	assert.Equal(t, before+2, testutil.ToFloat64(slide))
}

func TestInitializeMetricsCreatesSeries(t *testing.T) {
	InitializeMetrics([]string{"init_test_field"})

	assert.Equal(t, 0.0, testutil.ToFloat64(ExtractionDecisionsTotal.WithLabelValues("init_test_field", "none")))
	assert.Positive(t, testutil.CollectAndCount(ImageLoadsTotal))
}

func TestWriteTextfile(t *testing.T) {
	SetAppInfo("test", "abc123", "go1.25")
	path := filepath.Join(t.TempDir(), "micrometa.prom")

	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, "micrometa_app_info"), "textfile should carry app info")
	assert.Contains(t, text, `commit="abc123"`)
}

func TestWriteTextfileBadDirectory(t *testing.T) {
	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "out.prom"))
	assert.Error(t, err)
}
