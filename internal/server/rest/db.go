package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
)

func NewDBInfoHandler(log logging.Logger, store repomanager.RepositoryManager, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		info, err := store.Info(ctx)
		if err != nil {
			WriteErr(w, r, log, err)
			return
		}
		log.Debug(r.Context(), "database info retrieved", "mode", store.Mode(), "tables", len(info.Tables))
		Json(w, info, http.StatusOK)
	}
}

func NewDescribeTableHandler(log logging.Logger, store repomanager.RepositoryManager, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		desc, err := store.Describe(ctx, r.PathValue("table"))
		if err != nil {
			WriteErr(w, r, log, err)
			return
		}
		log.Debug(r.Context(), "table described", "table", desc.Table, "columns", len(desc.Columns))
		Json(w, desc, http.StatusOK)
	}
}
