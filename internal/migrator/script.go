package migrator

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"officeBooker/internal/lib/errs"
	"officeBooker/internal/models"
)

const (
	UpMarker   = "-- +migrate Up"
	DownMarker = "-- +migrate Down"

	scriptExt = ".sql"
)

// ParseScript splits content on the down marker. The up marker is optional
// and stripped; any repetition of either marker is rejected.
func ParseScript(version, content string) (models.MigrationScript, error) {
	file := version + scriptExt

	parts := strings.Split(content, DownMarker)
	if len(parts) != 2 {
		return models.MigrationScript{}, &errs.MigrationFileError{
			Path: file,
			Err:  fmt.Errorf("expected exactly one %q marker, found %d", DownMarker, len(parts)-1),
		}
	}

	if n := strings.Count(parts[0], UpMarker); n > 1 {
		return models.MigrationScript{}, &errs.MigrationFileError{
			Path: file,
			Err:  fmt.Errorf("expected at most one %q marker, found %d", UpMarker, n),
		}
	}

	if strings.Contains(parts[1], UpMarker) {
		return models.MigrationScript{}, &errs.MigrationFileError{
			Path: file,
			Err:  fmt.Errorf("%q marker after %q", UpMarker, DownMarker),
		}
	}

	return models.MigrationScript{
		Version: version,
		Up:      strings.TrimSpace(strings.Replace(parts[0], UpMarker, "", 1)),
		Down:    strings.TrimSpace(parts[1]),
	}, nil
}

// Discover lists the versions found in fsys in ascending order.
func Discover(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, &errs.MigrationFileError{Path: ".", Err: err}
	}

	var versions []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != scriptExt {
			continue
		}
		versions = append(versions, strings.TrimSuffix(e.Name(), scriptExt))
	}

	sort.Strings(versions)

	return versions, nil
}

func readScript(fsys fs.FS, version string) (models.MigrationScript, error) {
	content, err := fs.ReadFile(fsys, version+scriptExt)
	if err != nil {
		return models.MigrationScript{}, &errs.MigrationFileError{Path: version + scriptExt, Err: err}
	}

	return ParseScript(version, string(content))
}
