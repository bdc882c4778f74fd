// Package loader parses raw definition files (Grasshopper .ghx XML or
// Dynamo .dyn JSON) into the generic node/connection model. Unknown
// component types are retained generically: new component kinds appear
// constantly in the source ecosystems and must not break analysis.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sonomirco/defgraph/internal/ctxlog"
	"github.com/sonomirco/defgraph/internal/graph"
)

// Format selects the codec used to parse a definition file.
type Format string

const (
	// FormatGHX is the Grasshopper XML archive format (.ghx, .xml).
	FormatGHX Format = "ghx"
	// FormatDYN is the Dynamo JSON format (.dyn).
	FormatDYN Format = "dyn"
)

// DetectFormat picks a codec from the file extension. Binary .gh archives
// are rejected explicitly: they must be re-saved as .ghx first.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ghx", ".xml":
		return FormatGHX, nil
	case ".dyn":
		return FormatDYN, nil
	case ".gh":
		return "", fmt.Errorf("binary .gh archives are not supported, re-save %s as .ghx", filepath.Base(path))
	default:
		return "", fmt.Errorf("unsupported definition extension %q", filepath.Ext(path))
	}
}

// Load reads the file at path and parses it with the codec selected from
// its extension.
func Load(ctx context.Context, path string) (*graph.Graph, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definition %s: %w", path, err)
	}
	return Parse(ctx, path, data, format)
}

// Parse decodes raw definition bytes with the given format codec. A file
// that is not well-formed XML/JSON at all yields a *MalformedInputError;
// structural problems inside a well-formed file become warnings on the
// returned graph instead.
func Parse(ctx context.Context, path string, data []byte, format Format) (*graph.Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loader started.", "path", path, "format", string(format), "bytes", len(data))

	var (
		g   *graph.Graph
		err error
	)
	switch format {
	case FormatGHX:
		g, err = parseGHX(data)
	case FormatDYN:
		g, err = parseDYN(data)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return nil, &MalformedInputError{Path: path, Format: format, Err: err}
	}

	logger.Debug("Loader finished.",
		"nodes", g.Len(),
		"connections", len(g.Connections()),
		"warnings", len(g.Warnings()),
	)
	return g, nil
}

// canonicalID lower-cases parseable GUIDs into their canonical form so the
// same node id compares equal regardless of how the authoring tool cased
// it. Non-GUID ids pass through untouched.
func canonicalID(raw string) string {
	raw = strings.TrimSpace(raw)
	if id, err := uuid.Parse(raw); err == nil {
		return id.String()
	}
	return raw
}
