// Package backup snapshots the SQLite preferences database
package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/logger"
)

const (
	// MaxBackups is the number of snapshots kept after rotation
	MaxBackups = 10
	// DirName is the backup directory, created next to the database
	DirName = "backups"

	filePrefix  = constants.AppName + "-prefs-"
	fileSuffix  = ".db"
	stampLayout = "20060102-150405"
)

// Info describes one snapshot on disk
type Info struct {
	Path      string
	CreatedAt time.Time
	Size      int64
}

// Name is the snapshot's file name
func (i Info) Name() string {
	return filepath.Base(i.Path)
}

type Manager struct {
	dbPath string
	dir    string
	now    func() time.Time
}

func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath: dbPath,
		dir:    filepath.Join(filepath.Dir(dbPath), DirName),
		now:    time.Now,
	}
}

// Dir returns the backup directory
func (m *Manager) Dir() string {
	return m.dir
}

// Create snapshots the database and rotates old snapshots
func (m *Manager) Create() (Info, error) {
	info, err := m.create()
	if err != nil {
		return Info{}, err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("Failed to rotate preference backups", "dir", m.dir, "error", err)
	}
	return info, nil
}

func (m *Manager) create() (Info, error) {
	if _, err := os.Stat(m.dbPath); err != nil {
		return Info{}, fmt.Errorf("preferences database not found: %s", m.dbPath)
	}
	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return Info{}, fmt.Errorf("failed to create backup directory: %w", err)
	}

	path, err := m.nextPath()
	if err != nil {
		return Info{}, err
	}
	if err := snapshot(m.dbPath, path); err != nil {
		return Info{}, fmt.Errorf("failed to back up preferences: %w", err)
	}

	st, err := os.Stat(path)
	if err != nil {
		return Info{}, err
	}
	logger.Info("Preferences backed up", "path", path)
	return Info{Path: path, CreatedAt: st.ModTime(), Size: st.Size()}, nil
}

// nextPath picks an unused file name for the current second
func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(stampLayout)
	path := filepath.Join(m.dir, filePrefix+stamp+fileSuffix)
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if n > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", filePrefix, stamp, n, fileSuffix))
	}
}

// snapshot copies a live database with VACUUM INTO, falling back to a file copy
func snapshot(src, dst string) error {
	db, err := sql.Open("sqlite", src+"?mode=ro")
	if err != nil {
		return err
	}
	defer db.Close()

	if err := verify(db); err != nil {
		return fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.Exec("VACUUM INTO ?", dst); err != nil {
		logger.Debug("VACUUM INTO failed, copying file", "error", err)
		db.Close()
		return copyFile(src, dst)
	}
	return nil
}

// List returns the snapshots, newest first. Files that do not follow the
// naming scheme are ignored.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if os.IsNotExist(err) {
		return []Info{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []Info{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		created, ok := parseName(e.Name())
		if !ok {
			continue
		}
		st, err := e.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.dir, e.Name()),
			CreatedAt: created,
			Size:      st.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].CreatedAt.Equal(backups[j].CreatedAt) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

func parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	if len(stamp) < len(stampLayout) {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(stampLayout, stamp[:len(stampLayout)], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for _, b := range backups[min(len(backups), MaxBackups):] {
		if err := os.Remove(b.Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", b.Name(), err)
		}
	}
	return nil
}

// Resolve finds a snapshot by path or by file name inside the backup directory
func (m *Manager) Resolve(ref string) (string, error) {
	if _, err := os.Stat(ref); err == nil {
		return filepath.Abs(ref)
	}
	if !filepath.IsAbs(ref) {
		candidate := filepath.Join(m.dir, ref)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("backup not found: tried %s and %s", ref, m.dir)
}

// Restore replaces the database with the snapshot at path. The current
// database is snapshotted first and that snapshot is returned. Callers must
// close their connection before restoring.
func (m *Manager) Restore(path string) (Info, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Info{}, err
	}
	err = verify(db)
	db.Close()
	if err != nil {
		return Info{}, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var safety Info
	if _, err := os.Stat(m.dbPath); err == nil {
		if safety, err = m.create(); err != nil {
			return Info{}, fmt.Errorf("failed to back up current preferences before restore: %w", err)
		}
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(path, tmp); err != nil {
		return Info{}, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("Failed to remove temporary restore file", "path", tmp, "error", rmErr)
		}
		return Info{}, fmt.Errorf("failed to restore preferences: %w", err)
	}

	logger.Info("Preferences restored", "from", path)
	return safety, nil
}

func verify(db *sql.DB) error {
	var count int
	return db.QueryRow("SELECT COUNT(*) FROM sqlite_master").Scan(&count)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(in); err != nil {
		return err
	}
	return out.Sync()
}
