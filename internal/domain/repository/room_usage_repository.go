package repository

import (
	"context"

	"patient-register/internal/domain/entity"
)

type RoomUsageRepository interface {
	Append(ctx context.Context, room int) error
	LoadCounts(ctx context.Context) (*entity.RoomUsage, error)
}
