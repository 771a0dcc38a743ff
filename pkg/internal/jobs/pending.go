package jobs

import (
	"context"

	ctxPkg "github.com/yeisme/artvault/pkg/context"
	"github.com/yeisme/artvault/pkg/internal/model"
	"github.com/yeisme/artvault/pkg/internal/service"
	"github.com/yeisme/artvault/pkg/log"
	"github.com/yeisme/artvault/pkg/metrics"
)

// RefreshPendingGauge 刷新待审核队列长度指标.
func RefreshPendingGauge(ctx context.Context) {
	logger := log.Logger()

	dbc := ctxPkg.GetDBClient(ctx)
	if dbc == nil {
		logger.Warn().Msg("pending gauge: db client not available")
		return
	}

	store := service.NewSubmissionStore(dbc.DB)

	n, err := store.CountByStatus(ctx, model.StatusPending)
	if err != nil {
		logger.Error().Err(err).Msg("pending gauge: count failed")
		return
	}

	metrics.PendingSubmissions.Set(float64(n))
}
