package handler

import (
	"context"
	"io"
	"sort"
	"strings"

	"patient-register/internal/usecase"
	"patient-register/pkg/response"

	"github.com/spf13/cobra"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{auditLogUsecase: auditLogUsecase}
}

// GetAll handles `audit`
func (h *AuditLogHandler) GetAll(cmd *cobra.Command, args []string) error {
	return h.getAll(cmd.Context(), cmd.OutOrStdout())
}

func (h *AuditLogHandler) GetAllInteractive(ctx context.Context, p *Prompter) error {
	_ = h.getAll(ctx, p.Out())
	return nil
}

func (h *AuditLogHandler) getAll(ctx context.Context, w io.Writer) error {
	resp, err := h.auditLogUsecase.GetAllAuditLogs(ctx)
	if resp != nil {
		if resp.Total == 0 && err == nil {
			response.Success(w, "Audit trail is empty.")
		}
		for _, log := range resp.Logs {
			response.Line(w, "%s  %-18s %s", log.CreatedAt.Format(timestampLayout), log.Action, formatMetadata(log.Metadata))
		}
	}
	if err != nil {
		return writeError(w, err, "Failed to read the whole audit trail")
	}
	return nil
}

func formatMetadata(metadata map[string]string) string {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + metadata[k]
	}
	return strings.Join(parts, " ")
}
