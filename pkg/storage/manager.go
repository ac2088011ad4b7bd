package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/voucherhub/config"
	"github.com/shashiranjanraj/voucherhub/pkg/logger"
)

// Manager holds the configured disks.
type Manager struct {
	mu          sync.RWMutex
	disks       map[string]Disk
	defaultDisk string
}

// NewManager boots the local disk, plus the s3 disk when S3_BUCKET is set.
// It fails only when STORAGE_DISK names a disk that could not be booted.
func NewManager(ctx context.Context) (*Manager, error) {
	m := &Manager{
		disks:       map[string]Disk{"local": NewLocalDisk(config.Get("STORAGE_LOCAL_ROOT", "storage"))},
		defaultDisk: config.Get("STORAGE_DISK", "local"),
	}

	if config.Get("S3_BUCKET", "") != "" {
		d, err := NewS3Disk(ctx, S3ConfigFromEnv())
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			m.disks["s3"] = d
		}
	}

	if _, ok := m.disks[m.defaultDisk]; !ok {
		return nil, fmt.Errorf("storage: default disk %q is not configured", m.defaultDisk)
	}
	return m, nil
}

// Register adds or replaces a disk.
func (m *Manager) Register(name string, d Disk) {
	m.mu.Lock()
	m.disks[name] = d
	m.mu.Unlock()
}

// Use returns the named disk.
func (m *Manager) Use(name string) (Disk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.disks[name]
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Default returns the STORAGE_DISK disk.
func (m *Manager) Default() Disk {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.disks[m.defaultDisk]
}
