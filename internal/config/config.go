// Package config loads the optional analyzer configuration file. The
// format is HCL; everything has a built-in default so the analyzer runs
// without any configuration at all.
package config

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/sonomirco/defgraph/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// defaultTokens is the built-in reference-token set scanned for inside
// script code. It covers the namespaces of the host authoring ecosystems
// (RhinoCommon/Grasshopper for .ghx, Dynamo/Revit for .dyn). The exact
// list is environment-specific, which is why it is configurable.
var defaultTokens = []string{
	"rhinoscriptsyntax",
	"Rhino.Geometry",
	"RhinoCommon",
	"Grasshopper",
	"GhPython",
	"Autodesk.DesignScript",
	"Autodesk.Revit.DB",
	"RevitAPI",
	"RevitServices",
	"ProtoGeometry",
	"TransactionManager",
	"FilteredElementCollector",
	"clr.AddReference",
}

// Config carries the tunable knobs of an analysis run.
type Config struct {
	// Tokens is the reference-token set used for dependency detection.
	Tokens []string
	// PathElide is the number of nodes shown on the primary flow line
	// before the middle of the path is elided.
	PathElide int
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Tokens:    append([]string(nil), defaultTokens...),
		PathElide: 12,
	}
}

// fileRoot decodes the top-level blocks of a config file.
type fileRoot struct {
	Tokens *tokensBlock `hcl:"tokens,block"`
	Report *reportBlock `hcl:"report,block"`
}

type tokensBlock struct {
	// Replace drops the built-in token set instead of extending it.
	Replace bool     `hcl:"replace,optional"`
	Extra   []string `hcl:"extra,optional"`
}

type reportBlock struct {
	Remain hcl.Body `hcl:",remain"`
}

// Load parses the HCL config at path and merges it over the defaults. An
// empty path returns the defaults unchanged.
func Load(ctx context.Context, path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	logger := ctxlog.FromContext(ctx)

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, diags)
	}

	if root.Tokens != nil {
		if root.Tokens.Replace {
			cfg.Tokens = nil
		}
		cfg.Tokens = append(cfg.Tokens, root.Tokens.Extra...)
	}
	if root.Report != nil {
		if err := decodeReportBlock(root.Report.Remain, cfg); err != nil {
			return nil, fmt.Errorf("invalid report block in %s: %w", path, err)
		}
	}

	logger.Debug("Config loaded.", "path", path, "tokens", len(cfg.Tokens), "path_elide", cfg.PathElide)
	return cfg, nil
}

// decodeReportBlock reads the report attributes by hand so unknown keys
// fail loudly with their source range instead of being ignored.
func decodeReportBlock(body hcl.Body, cfg *Config) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return diags
	}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return diags
		}
		switch name {
		case "path_elide":
			num, err := convert.Convert(val, cty.Number)
			if err != nil {
				return fmt.Errorf("path_elide at %s: %w", attr.Range, err)
			}
			elide, _ := num.AsBigFloat().Int64()
			if elide < 3 {
				return fmt.Errorf("path_elide at %s: must be at least 3", attr.Range)
			}
			cfg.PathElide = int(elide)
		default:
			return fmt.Errorf("unsupported report attribute %q at %s", name, attr.Range)
		}
	}
	return nil
}
