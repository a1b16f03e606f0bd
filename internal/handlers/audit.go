package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/middleware"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/models"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/repository"
	"github.com/carlo-spada/yrinmobiliaria-sub000/internal/utils"
)

// Auditor appends one audit row per successful admin mutation. Append
// failures are logged, never surfaced: the mutation already happened.
type Auditor struct {
	repo repository.AuditRepository
	log  zerolog.Logger
}

func NewAuditor(repo repository.AuditRepository, log zerolog.Logger) *Auditor {
	return &Auditor{repo: repo, log: log}
}

func (a *Auditor) record(r *http.Request, action, table, recordID string, changes any) {
	actor, _ := utils.GetString(r.Context(), middleware.CtxUserID)
	entry := &models.AuditLogEntry{
		ActorID:  actor,
		Action:   action,
		Table:    table,
		RecordID: recordID,
	}
	if changes != nil {
		if b, err := json.Marshal(changes); err == nil {
			entry.Changes = b
		}
	}
	if err := a.repo.Append(r.Context(), entry); err != nil {
		a.log.Error().Err(err).Str("table", table).Str("record", recordID).Msg("audit append failed")
	}
}
