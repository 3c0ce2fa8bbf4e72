package metrics

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)
	assert.NotNil(t, r.registry)
	assert.NotNil(t, r.AnalysesTotal)
	assert.NotNil(t, r.AnalysisDuration)
	assert.NotNil(t, r.PathsFound)
	assert.NotNil(t, r.PathLimitHits)
	assert.NotNil(t, r.BulbsLit)
}

func TestRecordAnalysis(t *testing.T) {
	r := NewRegistry()

	r.RecordAnalysis(OutcomeLit, 2*time.Millisecond, 2, 2, false)
	r.RecordAnalysis(OutcomeLit, time.Millisecond, 1, 1, false)
	r.RecordAnalysis(OutcomeSwitchOpen, time.Millisecond, 1, 0, true)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.AnalysesTotal.WithLabelValues(OutcomeLit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.AnalysesTotal.WithLabelValues(OutcomeSwitchOpen)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.AnalysesTotal.WithLabelValues(OutcomeNoBattery)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.PathLimitHits))
}

func TestWriteText(t *testing.T) {
	r := NewRegistry()
	r.RecordAnalysis(OutcomeUnlit, time.Millisecond, 1, 0, false)

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, `circuitq_analyses_total{outcome="unlit"} 1`)
	assert.Contains(t, out, "circuitq_paths_found_count 1")
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := NewRegistry(), NewRegistry()
	a.RecordAnalysis(OutcomeOpen, time.Millisecond, 0, 0, false)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.AnalysesTotal.WithLabelValues(OutcomeOpen)))
	n, err := testutil.GatherAndCount(a.Gatherer(), "circuitq_analyses_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
