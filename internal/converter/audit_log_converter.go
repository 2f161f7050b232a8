package converter

import (
	"sort"
	"strings"

	"patient-register/internal/delivery/dto"
	"patient-register/internal/domain/entity"

	"github.com/spf13/cast"
)

// AuditLogToResponse converts a AuditLog entity to AuditLogResponse DTO
func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	return &dto.AuditLogResponse{
		ID:        log.ID,
		Action:    log.Action,
		Metadata:  metadataToStrings(log.Metadata),
		CreatedAt: log.CreatedAt,
	}
}

// AuditLogsToResponses converts a slice of AuditLog entities to slice of AuditLogResponse DTOs
func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i := range logs {
		responses[i] = *AuditLogToResponse(&logs[i])
	}
	return responses
}

// metadataToStrings flattens decoded JSON values. Nested objects are
// rendered as sorted key=value pairs.
func metadataToStrings(metadata entity.JSON) map[string]string {
	out := make(map[string]string, len(metadata))
	for k, v := range metadata {
		if v == nil {
			continue
		}
		if nested, ok := v.(map[string]interface{}); ok {
			out[k] = joinPairs(cast.ToStringMapString(nested))
			continue
		}
		out[k] = cast.ToString(v)
	}
	return out
}

func joinPairs(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + m[k]
	}
	return strings.Join(pairs, " ")
}
