// Package storage reads and writes the two markdown documents a roadmap
// lives in: the active roadmap and the achievements log.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultRoadmapFile is the roadmap document name in the working directory.
	DefaultRoadmapFile = "roadmap.md"
	// DefaultAchievementsFile is the achievements log name in the working directory.
	DefaultAchievementsFile = "achievements.md"
	// BackupSuffix is appended to the roadmap path for its single backup.
	BackupSuffix = ".bak"
)

// Documents defines the persistence interface for the two documents.
// Abstracted for testability (DIP).
type Documents interface {
	ReadRoadmap() (string, error)
	WriteRoadmap(content string) error
	ReadAchievements() (string, error)
	WriteAchievements(content string) error
	AppendAchievement(entry string) error
}

// FileStore implements Documents on the local filesystem.
type FileStore struct {
	roadmapPath      string
	achievementsPath string
}

// NewFileStore creates a filesystem-backed document store. Empty paths
// fall back to the defaults in the working directory.
func NewFileStore(roadmapPath, achievementsPath string) *FileStore {
	if roadmapPath == "" {
		roadmapPath = DefaultRoadmapFile
	}
	if achievementsPath == "" {
		achievementsPath = DefaultAchievementsFile
	}
	return &FileStore{roadmapPath: roadmapPath, achievementsPath: achievementsPath}
}

// RoadmapPath returns the path of the active roadmap document.
func (fs *FileStore) RoadmapPath() string {
	return fs.roadmapPath
}

// AchievementsPath returns the path of the achievements log.
func (fs *FileStore) AchievementsPath() string {
	return fs.achievementsPath
}

// BackupPath returns the path of the roadmap's single backup.
func (fs *FileStore) BackupPath() string {
	return fs.roadmapPath + BackupSuffix
}

// ReadRoadmap returns the roadmap content, creating an empty document
// when none exists yet.
func (fs *FileStore) ReadRoadmap() (string, error) {
	return readOrCreate(fs.roadmapPath)
}

// ReadAchievements returns the achievements log, creating an empty
// document when none exists yet.
func (fs *FileStore) ReadAchievements() (string, error) {
	return readOrCreate(fs.achievementsPath)
}

// WriteRoadmap replaces the roadmap. The previous content is copied to
// BackupPath first; only one generation is kept.
func (fs *FileStore) WriteRoadmap(content string) error {
	prev, err := os.ReadFile(fs.roadmapPath)
	switch {
	case err == nil:
		if err := os.WriteFile(fs.BackupPath(), prev, 0o644); err != nil {
			return fmt.Errorf("writing roadmap backup: %w", err)
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("reading roadmap for backup: %w", err)
	}
	return writeFile(fs.roadmapPath, content, "roadmap")
}

// WriteAchievements replaces the achievements log.
func (fs *FileStore) WriteAchievements(content string) error {
	return writeFile(fs.achievementsPath, content, "achievements")
}

// AppendAchievement adds one entry to the end of the achievements log,
// separated from earlier entries by a blank line.
func (fs *FileStore) AppendAchievement(entry string) error {
	existing, err := fs.ReadAchievements()
	if err != nil {
		return err
	}
	existing = strings.TrimRight(existing, "\n")
	if existing != "" {
		existing += "\n\n"
	}
	return fs.WriteAchievements(existing + entry)
}

func readOrCreate(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if err := writeFile(path, "", filepath.Base(path)); err != nil {
		return "", err
	}
	return "", nil
}

func writeFile(path, content, what string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s directory: %w", what, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", what, err)
	}
	return nil
}
