// Package loader discovers module descriptor files under search directories
// and decodes them into domain modules.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/aridclown/defold-annotations/internal/domain"
)

// Service loads module descriptors from the filesystem.
type Service struct {
	excludes   map[string]struct{}
	extensions map[string]struct{}
	debug      Debugger
}

// Debugger is the interface for debug logging.
type Debugger interface {
	Printf(format string, v ...interface{})
}

type noOpDebugger struct{}

func (noOpDebugger) Printf(string, ...interface{}) {}

// Option configures a loader service.
type Option func(*Service)

// NewService creates a new loader service with optional configuration.
func NewService(options ...Option) *Service {
	s := &Service{
		excludes: make(map[string]struct{}),
		extensions: map[string]struct{}{
			".json": {},
			".yaml": {},
			".yml":  {},
		},
		debug: noOpDebugger{},
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// WithExcludes sets directory and file exclusion names.
func WithExcludes(excludes map[string]struct{}) Option {
	return func(s *Service) {
		s.excludes = excludes
	}
}

// WithExtensions restricts the descriptor file extensions to load.
func WithExtensions(extensions ...string) Option {
	return func(s *Service) {
		s.extensions = make(map[string]struct{}, len(extensions))
		for _, ext := range extensions {
			s.extensions[ext] = struct{}{}
		}
	}
}

// WithDebugger sets the debug logger.
func WithDebugger(debug Debugger) Option {
	return func(s *Service) {
		if debug != nil {
			s.debug = debug
		}
	}
}

// LoadSearchDirs walks the search directories and decodes every descriptor
// file found, in sorted path order so repeated runs see the same input
// sequence.
func (s *Service) LoadSearchDirs(dirs []string) ([]*domain.Module, error) {
	var paths []string

	for _, searchDir := range dirs {
		absDir, err := filepath.Abs(searchDir)
		if err != nil {
			return nil, err
		}

		err = filepath.Walk(absDir, func(path string, info os.FileInfo, walkErr error) error {
			if walkErr != nil {
				return fmt.Errorf("failed to access path %q: %w", path, walkErr)
			}
			if _, excluded := s.excludes[info.Name()]; excluded {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if info.IsDir() {
				return nil
			}
			if _, ok := s.extensions[strings.ToLower(filepath.Ext(path))]; !ok {
				return nil
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(paths)

	modules := make([]*domain.Module, 0, len(paths))
	for _, path := range paths {
		module, err := s.loadFile(path)
		if err != nil {
			return nil, err
		}
		modules = append(modules, module)
	}

	s.debug.Printf("loader: loaded %d descriptors from %d search dirs", len(modules), len(dirs))

	return modules, nil
}

// loadFile decodes one descriptor file. YAML and JSON both decode through
// the same path.
func (s *Service) loadFile(path string) (*domain.Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read descriptor %s: %w", path, err)
	}

	var module domain.Module
	if err := yaml.Unmarshal(data, &module); err != nil {
		return nil, fmt.Errorf("could not parse descriptor %s: %w", path, err)
	}
	if module.Namespace == "" {
		return nil, fmt.Errorf("descriptor %s declares no namespace", path)
	}

	return &module, nil
}
