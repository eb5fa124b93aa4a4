package domain

import (
	"context"

	"github.com/ripple-lab/backend/pkg/xcontext"
)

func checkPagination(ctx context.Context, offset, limit int) (int, int) {
	cfg := xcontext.Configs(ctx).ApiServer
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}

	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}

	if offset < 0 {
		offset = 0
	}

	return offset, limit
}
