package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/bnema/halo-bridge/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	classesFileMode = 0o600
	classesDirMode  = 0o700
	tempFilePattern = ".classes-*.toml.tmp"
)

// Repository persists the class directory as a TOML file.
type Repository struct {
	classesPath string
	mu          *sync.RWMutex
	clock       ports.Clock
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.ClassRepository = (*Repository)(nil)

func NewRepository(path string, clock ports.Clock) (*Repository, error) {
	if path == "" {
		return nil, errors.New("classes path is empty")
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	classesPath, err := normalizeClassesPath(path)
	if err != nil {
		return nil, err
	}

	return &Repository{classesPath: classesPath, mu: lockForPath(classesPath), clock: clock}, nil
}

func (r *Repository) Path() string {
	return r.classesPath
}

// ReplaceAll overwrites the directory. The server listing is authoritative, so stale classes are dropped.
func (r *Repository) ReplaceAll(ctx context.Context, classes []domain.Class) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	file.Classes = make([]classSchema, 0, len(classes))
	for _, class := range classes {
		file.Classes = append(file.Classes, toSchema(class))
	}
	file.UpdatedAt = r.clock.Now().UTC().Format(time.RFC3339)

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) List(ctx context.Context) ([]domain.Class, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	classes := make([]domain.Class, 0, len(file.Classes))
	for _, entry := range file.Classes {
		classes = append(classes, fromSchema(entry))
	}

	return classes, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.classesPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read classes file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode classes file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.classesPath), classesDirMode); err != nil {
		return fmt.Errorf("create classes directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode classes file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.classesPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp classes file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp classes file: %w", err)
	}

	if err := tempFile.Chmod(classesFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp classes file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp classes file: %w", err)
	}

	if err := os.Rename(tempName, r.classesPath); err != nil {
		return fmt.Errorf("replace classes file: %w", err)
	}

	cleanup = false

	return nil
}

func normalizeClassesPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve classes path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(class domain.Class) classSchema {
	return classSchema{
		ID:         class.ID,
		Slug:       class.Slug,
		Name:       class.Name,
		CourseCode: class.CourseCode,
		Stage:      class.Stage,
	}
}

func fromSchema(entry classSchema) domain.Class {
	return domain.Class{
		ID:         entry.ID,
		Slug:       entry.Slug,
		Name:       entry.Name,
		CourseCode: entry.CourseCode,
		Stage:      entry.Stage,
	}
}
