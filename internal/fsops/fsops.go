package fsops

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	"github.com/felixgeelhaar/greenlight/internal/engine"
	"github.com/felixgeelhaar/greenlight/internal/errors"
)

// Local is the default FileOps collaborator: plain filesystem writes with a
// content-addressed backup policy. Overwritten files are copied aside first;
// backup names carry a short blake3 digest of the old content, so repeated
// overwrites of identical content share one backup.
type Local struct {
	// backupDir receives pre-overwrite copies; empty disables backups
	backupDir string
}

// NewLocal creates a Local FileOps. backupDir may be empty to disable backups.
func NewLocal(backupDir string) *Local {
	return &Local{backupDir: backupDir}
}

// Write writes content to a file, creating parent directories and backing up
// any existing file first
func (l *Local) Write(path, content string) engine.Outcome {
	if existing, err := os.ReadFile(path); err == nil {
		if err := l.backup(path, existing); err != nil {
			return engine.Failed(fmt.Sprintf("backup before overwrite failed: %v", err))
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return engine.Failed(fmt.Sprintf("create parent directory: %v", err))
	}

	if err := os.WriteFile(path, []byte(content), 0640); err != nil {
		return engine.Failed(fmt.Sprintf("write file: %v", err))
	}

	return engine.Ok()
}

// Mkdir creates a directory idempotently, creating parents
func (l *Local) Mkdir(path string) engine.Outcome {
	if err := os.MkdirAll(path, 0750); err != nil {
		return engine.Failed(fmt.Sprintf("create directory: %v", err))
	}
	return engine.Ok()
}

// Read returns a file's content
func (l *Local) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New(errors.ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path))
		}
		return "", errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("read %s", path), err)
	}
	return string(data), nil
}

// backup copies the current content of path into the backup directory
func (l *Local) backup(path string, content []byte) error {
	if l.backupDir == "" {
		return nil
	}

	sum := blake3.Sum256(content)
	digest := hex.EncodeToString(sum[:4])
	name := fmt.Sprintf("%s.%s.bak", filepath.Base(path), digest)
	backupPath := filepath.Join(l.backupDir, name)

	// Identical content was already backed up.
	if _, err := os.Stat(backupPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(l.backupDir, 0750); err != nil {
		return err
	}
	return os.WriteFile(backupPath, content, 0640)
}
