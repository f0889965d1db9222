package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"mockmate/interview-api/internal/models"
)

// EventLogService appends client-reported events to an access log,
// one JSON object per line.
type EventLogService interface {
	Append(entry models.ClientLogEntry) error
}

type eventLogService struct {
	dir string
	mu  sync.Mutex
}

func NewEventLogService(dir string) EventLogService {
	return &eventLogService{dir: dir}
}

func (s *eventLogService) Append(entry models.ClientLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(s.dir, "access.log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open access log: %w", err)
	}
	defer f.Close()

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode log entry: %w", err)
	}

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write log entry: %w", err)
	}

	return nil
}
