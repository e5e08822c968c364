package rack

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"patchbay/plugin"
)

// Patch files live under ~/.config/patchbay/patches, one JSON document
// per named patch.

// PatchesDir returns the patches directory path.
func PatchesDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "patchbay", "patches"), nil
}

// ListPatches returns all saved patch names, sorted.
func ListPatches() ([]string, error) {
	dir, err := PatchesDir()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// SavePatch serializes the graph to <patches dir>/<name>.json.
func SavePatch(g *Graph, name string) error {
	if name == "" {
		name = "untitled"
	}
	dir, err := PatchesDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := Serialize(g)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, sanitizeName(name)+".json"), data, 0644)
}

// LoadPatch reads and deserializes a named patch into a fresh graph.
func LoadPatch(catalog *plugin.Catalog, layout *Layout, name string, log zerolog.Logger) (*Graph, []LoadWarning, error) {
	dir, err := PatchesDir()
	if err != nil {
		return nil, nil, err
	}
	path := filepath.Join(dir, sanitizeName(name)+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load patch %s: %w", name, err)
	}
	return Deserialize(data, catalog, layout, log)
}

// DeletePatch removes a saved patch file.
func DeletePatch(name string) error {
	dir, err := PatchesDir()
	if err != nil {
		return err
	}
	return os.Remove(filepath.Join(dir, sanitizeName(name)+".json"))
}

// sanitizeName strips characters that are problematic in filenames.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, " ", "-")
	for _, bad := range []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"} {
		name = strings.ReplaceAll(name, bad, "")
	}
	return name
}
