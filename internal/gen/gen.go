// Package gen drives an end-to-end generation: it loads descriptors, runs
// the pipeline, and writes one annotation file per namespace plus an index.
package gen

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"sigs.k8s.io/yaml"

	"github.com/aridclown/defold-annotations/internal/config"
	"github.com/aridclown/defold-annotations/internal/console"
	"github.com/aridclown/defold-annotations/internal/emitter"
	"github.com/aridclown/defold-annotations/internal/loader"
	"github.com/aridclown/defold-annotations/internal/orchestrator"
)

var open = os.Open

// Version of the generator.
const Version = "v1.0.0"

// DefaultOverridesFile is the location the generator will look for type
// overrides.
const DefaultOverridesFile = ".defold-annotations"

// IndexFileName is the per-run API index written next to the units.
const IndexFileName = "api.yaml"

// Debugger is the interface that wraps the basic Printf method.
type Debugger interface {
	Printf(format string, v ...interface{})
}

// Gen presents the annotation generation tool.
type Gen struct {
	debug Debugger
}

// New creates a new Gen.
func New() *Gen {
	return &Gen{
		debug: log.New(os.Stdout, "", log.LstdFlags),
	}
}

// Config presents Gen configurations.
type Config struct {
	Debugger Debugger

	// SearchDir the generator would parse, comma separated if multiple
	SearchDir string

	// excludes dirs and files in SearchDir, comma separated
	Excludes string

	// OutputDir represents the output directory for all the generated files
	OutputDir string

	// ConfigFile is an optional YAML file merged over the default tables
	ConfigFile string

	// OverridesFile defines type replacement and namespace skip overrides
	OverridesFile string

	// Strict aborts generation on the first unknown type token
	Strict bool
}

// indexEntry is one namespace record in the generated index file.
type indexEntry struct {
	Namespace string `json:"namespace"`
	Title     string `json:"title"`
	Brief     string `json:"brief,omitempty"`
	File      string `json:"file"`
}

// Build generates annotation files for the given search directories.
func (g *Gen) Build(cfg *Config) error {
	if cfg.Debugger != nil {
		g.debug = cfg.Debugger
	}

	searchDirs := strings.Split(cfg.SearchDir, ",")
	for _, searchDir := range searchDirs {
		if _, err := os.Stat(searchDir); os.IsNotExist(err) {
			return fmt.Errorf("dir: %s does not exist", searchDir)
		}
	}

	tables, err := config.Load(cfg.ConfigFile)
	if err != nil {
		return err
	}
	tables.Strict = tables.Strict || cfg.Strict

	if cfg.OverridesFile != "" {
		overridesFile, err := open(cfg.OverridesFile)
		if err != nil {
			// Don't bother reporting if the default file is missing; assume there are no overrides
			if !(cfg.OverridesFile == DefaultOverridesFile && os.IsNotExist(err)) {
				return fmt.Errorf("could not open overrides file: %w", err)
			}
		} else {
			console.Logger.Debug("Using overrides from %s", cfg.OverridesFile)

			err = applyOverrides(overridesFile, tables)
			overridesFile.Close()
			if err != nil {
				return err
			}
		}
	}

	console.Logger.Debug("Generate annotations....")

	loaderService := loader.NewService(
		loader.WithExcludes(parseExcludes(cfg.Excludes)),
		loader.WithDebugger(g.debug),
	)

	modules, err := loaderService.LoadSearchDirs(searchDirs)
	if err != nil {
		return fmt.Errorf("failed to load search directories: %w", err)
	}

	pipeline := orchestrator.New(&orchestrator.Config{
		Tables:  tables,
		Emitter: emitter.New(),
		Debug:   g.debug,
	})

	units, err := pipeline.Run(modules)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, os.ModePerm); err != nil {
		return err
	}

	// Units are independent once the run is over; only the writes fan out.
	var group errgroup.Group
	for _, unit := range units {
		unit := unit
		group.Go(func() error {
			fileName := path.Join(cfg.OutputDir, unitFileName(unit.Namespace))
			if err := g.writeFile([]byte(unit.Content), fileName); err != nil {
				return err
			}
			console.Logger.Debug("create %s", fileName)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	return g.writeIndex(cfg, units)
}

// writeIndex records every generated unit in api.yaml.
func (g *Gen) writeIndex(cfg *Config, units []orchestrator.Unit) error {
	title := cases.Title(language.English)

	entries := make([]indexEntry, 0, len(units))
	for _, unit := range units {
		entries = append(entries, indexEntry{
			Namespace: unit.Namespace,
			Title:     title.String(strings.ReplaceAll(unit.Namespace, ".", " ")),
			File:      unitFileName(unit.Namespace),
		})
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("cannot render index: %w", err)
	}

	indexFileName := path.Join(cfg.OutputDir, IndexFileName)
	if err := g.writeFile(data, indexFileName); err != nil {
		return err
	}
	console.Logger.Debug("create %s", indexFileName)

	return nil
}

func (g *Gen) writeFile(b []byte, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	defer f.Close()

	_, err = f.Write(b)

	return err
}

// unitFileName maps a namespace to its output file; dots become
// underscores so multi-level namespaces stay one file each.
func unitFileName(namespace string) string {
	return strings.ReplaceAll(namespace, ".", "_") + ".lua"
}

// applyOverrides reads the overrides file and folds it into the tables.
// Lines are `replace OLD NEW` or `skip NAMESPACE`; `//` starts a comment.
func applyOverrides(r io.Reader, tables *config.Config) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()

		// Skip comments
		if len(line) > 1 && line[0:2] == "//" {
			continue
		}

		parts := strings.Fields(line)

		switch len(parts) {
		case 0:
			// only whitespace
			continue
		case 2:
			// either a skip or malformed
			if parts[0] != "skip" {
				return fmt.Errorf("could not parse override: '%s'", line)
			}

			tables.IgnoredNamespaces[parts[1]] = struct{}{}
		case 3:
			// either a replace or malformed
			if parts[0] != "replace" {
				return fmt.Errorf("could not parse override: '%s'", line)
			}

			tables.GlobalReplacements["^"+regexp.QuoteMeta(parts[1])+"$"] = parts[2]
		default:
			return fmt.Errorf("could not parse override: '%s'", line)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading overrides file: %w", err)
	}

	return nil
}

// parseExcludes converts comma-separated exclude string to map.
func parseExcludes(excludes string) map[string]struct{} {
	result := make(map[string]struct{})
	if excludes == "" {
		return result
	}

	for _, exclude := range strings.Split(excludes, ",") {
		exclude = strings.TrimSpace(exclude)
		if exclude != "" {
			result[exclude] = struct{}{}
		}
	}
	return result
}
