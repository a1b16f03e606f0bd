package handlers

import (
	"net/http"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/storage"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// StorageHealth probes the object store by listing buckets.
func StorageHealth(store *storage.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			utils.JSON(w, http.StatusOK, map[string]string{"storage": "disabled"})
			return
		}
		if _, err := store.ListBuckets(r.Context()); err != nil {
			utils.Error(w, http.StatusServiceUnavailable, "storage unreachable")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]string{"storage": "ok"})
	}
}
