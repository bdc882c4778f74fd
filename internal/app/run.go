package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sonomirco/defgraph/internal/ctxlog"
	"github.com/sonomirco/defgraph/internal/fsutil"
	"github.com/sonomirco/defgraph/internal/loader"
	"github.com/sonomirco/defgraph/internal/render"
	"github.com/sonomirco/defgraph/internal/report"
	"github.com/sonomirco/defgraph/internal/script"
	"github.com/sonomirco/defgraph/internal/topology"
)

// Run executes the analysis pipeline for every definition file under the
// configured input path.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	files, err := fsutil.FindDefinitionFiles(a.appConfig.InputPath)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no definition files found under %s", a.appConfig.InputPath)
	}
	a.logger.Debug("Discovered definition files.", "count", len(files))

	for _, file := range files {
		if err := a.analyzeOne(ctx, file); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// analyzeOne runs the pipeline for a single definition file. The loader
// must finish first; the classifier and extractor have no data dependency
// on each other, so they run concurrently over the immutable graph, and
// the report builder joins both.
func (a *App) analyzeOne(ctx context.Context, path string) error {
	a.logger.Info("Analyzing definition.", "path", path)

	g, err := loader.Load(ctx, path)
	if err != nil {
		return err
	}

	var (
		wg      sync.WaitGroup
		topo    *topology.Report
		scripts []script.Record
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		topo = topology.Classify(ctx, g)
	}()
	go func() {
		defer wg.Done()
		scripts = script.Extract(ctx, g, a.analyzer.Tokens)
	}()
	wg.Wait()

	rep := report.Build(filepath.Base(path), g, topo, scripts)
	doc := render.Markdown(rep, a.analyzer.PathElide)

	if a.appConfig.ToStdout {
		fmt.Fprint(a.outW, doc)
		return nil
	}

	artifact := render.ArtifactPath(path)
	if err := os.WriteFile(artifact, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", artifact, err)
	}
	a.logger.Info("Report written.", "path", artifact, "nodes", rep.Summary.Nodes, "scripts", rep.Summary.Scripts)
	fmt.Fprintf(a.outW, "Saved: %s\n", artifact)
	return nil
}
