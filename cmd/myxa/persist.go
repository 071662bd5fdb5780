package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gregorybchris/myxa/index"
	"github.com/gregorybchris/myxa/internal/config"
	"github.com/gregorybchris/myxa/schema"
	"github.com/gregorybchris/myxa/version"
)

const draftFileName = "myxa-package.json"

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.Load(cmd)
}

// loadIndex reads the index file into memory, or returns a fresh empty
// index if the file doesn't exist yet — the core never touches disk
// itself (spec.md §1, §5); this read-modify-write cycle is entirely a
// CLI concern (SPEC_FULL.md §10.4).
func loadIndex(path string) (*index.Index, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return index.New(), nil
	}
	if err != nil {
		return nil, err
	}
	return index.FromJSON(data)
}

// saveIndex writes idx to path atomically: write to a temp file in the
// same directory, then rename over the destination.
func saveIndex(path string, idx *index.Index) error {
	data, err := idx.ToJSON()
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

func loadDraft(path string) (*schema.Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("no working package found at %s, run \"myxa init\" first: %w", path, err)
	}
	return schema.UnmarshalPackage(data)
}

func saveDraft(path string, pkg *schema.Package) error {
	data, err := schema.MarshalPackage(pkg)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// comparisonBase resolves the --version flag shared by check/diff/info:
// an explicit version if given, else the index's latest for name.
func comparisonBase(idx *index.Index, name, versionFlag string) (*schema.Package, error) {
	if versionFlag == "" {
		return idx.Latest(name)
	}
	v, err := version.Parse(versionFlag)
	if err != nil {
		return nil, err
	}
	return idx.GetVersion(name, v)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".myxa-tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
