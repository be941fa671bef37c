package archive

import (
	"context"
	"testing"

	"github.com/mikey/llm-scam-honeypot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryArchiveStoresReports(t *testing.T) {
	a := NewMemoryArchive(zap.NewNop())
	ctx := context.Background()

	require.NoError(t, a.Store(ctx, &core.EngagementReport{ReportID: "r-1"}))
	require.NoError(t, a.Store(ctx, &core.EngagementReport{ReportID: "r-2"}))

	reports := a.Reports()
	require.Len(t, reports, 2)
	assert.Equal(t, "r-1", reports[0].ReportID)
	assert.Equal(t, "r-2", reports[1].ReportID)
}

func TestMemoryArchiveReportsIsSnapshot(t *testing.T) {
	a := NewMemoryArchive(zap.NewNop())
	require.NoError(t, a.Store(context.Background(), &core.EngagementReport{ReportID: "r-1"}))

	snapshot := a.Reports()
	snapshot[0] = nil

	assert.Equal(t, "r-1", a.Reports()[0].ReportID)
}
