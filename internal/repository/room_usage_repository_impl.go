package repository

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"patient-register/internal/domain/entity"
	domainRepo "patient-register/internal/domain/repository"

	"github.com/spf13/afero"
)

type roomUsageRepository struct {
	fs      afero.Fs
	path    string
	minRoom int
	maxRoom int
}

func NewRoomUsageRepository(fs afero.Fs, path string, minRoom, maxRoom int) domainRepo.RoomUsageRepository {
	return &roomUsageRepository{
		fs:      fs,
		path:    path,
		minRoom: minRoom,
		maxRoom: maxRoom,
	}
}

func (r *roomUsageRepository) Append(ctx context.Context, room int) error {
	if err := appendBytes(r.fs, r.path, []byte(strconv.Itoa(room)+"\n")); err != nil {
		return fmt.Errorf("append to %s: %w", r.path, err)
	}
	return nil
}

// LoadCounts tallies the log. Lines that are not integers, or are outside
// the room range, are listed as invalid and skipped.
func (r *roomUsageRepository) LoadCounts(ctx context.Context) (*entity.RoomUsage, error) {
	usage := entity.NewRoomUsage()

	f, err := openIfExists(r.fs, r.path)
	if err != nil {
		return usage, fmt.Errorf("open %s: %w", r.path, err)
	}
	if f == nil {
		return usage, nil
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		usage.TotalEntries++

		room, err := strconv.Atoi(line)
		if err != nil || room < r.minRoom || room > r.maxRoom {
			usage.InvalidEntries = append(usage.InvalidEntries, line)
			continue
		}
		usage.Counts[room]++
		usage.ValidEntries++
	}
	if err := scanner.Err(); err != nil {
		return usage, fmt.Errorf("read %s: %w", r.path, err)
	}
	return usage, nil
}
