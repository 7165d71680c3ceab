package sender

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// AuditSender is a stub email sender. It never performs real delivery; each
// send appends a timestamped, delimited record to a local audit log.
type AuditSender struct {
	path string
	mu   sync.Mutex
}

// NewAuditSender creates a send stub writing to the given audit log path
func NewAuditSender(path string) *AuditSender {
	return &AuditSender{path: path}
}

// Send appends one record for the given destination and body. The parent
// directory and the log file are created on demand.
func (s *AuditSender) Send(toAddress, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create audit log directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	record := fmt.Sprintf("TO: %s\nTIME: %s\n\n%s\n%s\n",
		toAddress, time.Now().UTC().Format(time.RFC3339), body, strings.Repeat("-", 60))

	if _, err := f.WriteString(record); err != nil {
		return fmt.Errorf("failed to write audit log record: %w", err)
	}

	logrus.Infof("Send stub recorded message to %s", toAddress)
	return nil
}
