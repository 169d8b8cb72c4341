// Package catalog serves the newsroom taxonomy: the sections, publishing
// platforms, and editorial statuses a production entry can carry. The
// built-in catalog is embedded; deployments override it with a YAML file
// via NEWSROOM_CATALOG_YAML.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/presslog/newsroom-backend/internal/platform/logger"
)

const catalogPathEnv = "NEWSROOM_CATALOG_YAML"

//go:embed newsroom.yaml
var catalogFS embed.FS

// Entry is one selectable value. Label is only set for statuses.
type Entry struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Label string `yaml:"label,omitempty" json:"label,omitempty"`
}

type Catalog struct {
	Sections  []Entry `yaml:"sections" json:"sections"`
	Platforms []Entry `yaml:"platforms" json:"platforms"`
	Statuses  []Entry `yaml:"statuses" json:"statuses"`

	sectionNames  map[string]bool
	platformNames map[string]bool
	statusNames   map[string]bool
}

type yamlCatalog struct {
	Catalog   string  `yaml:"catalog"`
	Version   int     `yaml:"version"`
	Sections  []Entry `yaml:"sections"`
	Platforms []Entry `yaml:"platforms"`
	Statuses  []Entry `yaml:"statuses"`
}

var loadOnce sync.Once
var cached *Catalog
var loadErr error

// Load returns the process-wide catalog. A broken override file falls back
// to the embedded catalog with a warning rather than failing startup.
func Load(log *logger.Logger) *Catalog {
	loadOnce.Do(func() {
		cached, loadErr = load()
	})
	if loadErr != nil {
		if log != nil {
			log.Warn("newsroom catalog load failed; using embedded defaults", "error", loadErr)
		}
		embedded, err := loadEmbedded()
		if err != nil {
			// the embedded file is part of the binary; this cannot happen
			// short of a broken build
			panic(fmt.Sprintf("embedded newsroom catalog: %v", err))
		}
		return embedded
	}
	return cached
}

func load() (*Catalog, error) {
	if path := strings.TrimSpace(os.Getenv(catalogPathEnv)); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return parse(data)
	}
	return loadEmbedded()
}

func loadEmbedded() (*Catalog, error) {
	data, err := catalogFS.ReadFile("newsroom.yaml")
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var raw yamlCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw.Catalog) != "newsroom" {
		return nil, fmt.Errorf("unexpected catalog: %q", raw.Catalog)
	}
	if len(raw.Sections) == 0 || len(raw.Platforms) == 0 || len(raw.Statuses) == 0 {
		return nil, errors.New("catalog must define sections, platforms and statuses")
	}
	c := &Catalog{
		Sections:  raw.Sections,
		Platforms: raw.Platforms,
		Statuses:  raw.Statuses,
	}
	var err error
	if c.sectionNames, err = nameSet("section", raw.Sections); err != nil {
		return nil, err
	}
	if c.platformNames, err = nameSet("platform", raw.Platforms); err != nil {
		return nil, err
	}
	if c.statusNames, err = nameSet("status", raw.Statuses); err != nil {
		return nil, err
	}
	return c, nil
}

func nameSet(kind string, entries []Entry) (map[string]bool, error) {
	set := make(map[string]bool, len(entries))
	for _, e := range entries {
		id := strings.TrimSpace(e.ID)
		name := strings.TrimSpace(e.Name)
		if id == "" || name == "" {
			return nil, fmt.Errorf("%s entry needs both id and name: %+v", kind, e)
		}
		if set[name] {
			return nil, fmt.Errorf("duplicate %s name: %s", kind, name)
		}
		set[name] = true
	}
	return set, nil
}

// Entries are matched by display name because production rows store the
// display name, not the id.

func (c *Catalog) ValidSection(name string) bool  { return c.sectionNames[strings.TrimSpace(name)] }
func (c *Catalog) ValidPlatform(name string) bool { return c.platformNames[strings.TrimSpace(name)] }
func (c *Catalog) ValidStatus(name string) bool   { return c.statusNames[strings.TrimSpace(name)] }
