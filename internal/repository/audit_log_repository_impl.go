package repository

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"patient-register/internal/domain/entity"
	domainRepo "patient-register/internal/domain/repository"

	"github.com/spf13/afero"
)

// auditLogRepository stores one JSON document per line.
type auditLogRepository struct {
	fs   afero.Fs
	path string
}

func NewAuditLogRepository(fs afero.Fs, path string) domainRepo.AuditLogRepository {
	return &auditLogRepository{fs: fs, path: path}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	line, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode audit log: %w", err)
	}
	if err := appendBytes(r.fs, r.path, append(line, '\n')); err != nil {
		return fmt.Errorf("append to %s: %w", r.path, err)
	}
	return nil
}

func (r *auditLogRepository) FindAll(ctx context.Context) ([]entity.AuditLog, error) {
	f, err := openIfExists(r.fs, r.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", r.path, err)
	}
	if f == nil {
		return nil, nil
	}
	defer f.Close()

	var logs []entity.AuditLog
	scanner := bufio.NewScanner(f)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var log entity.AuditLog
		if err := json.Unmarshal(scanner.Bytes(), &log); err != nil {
			return logs, fmt.Errorf("%s line %d: %w", r.path, lineNo, err)
		}
		logs = append(logs, log)
	}
	if err := scanner.Err(); err != nil {
		return logs, fmt.Errorf("read %s: %w", r.path, err)
	}
	return logs, nil
}
