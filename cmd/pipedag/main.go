// Command pipedag converts a pipeline document into a dependency
// graph, runs the configured filter passes over it, and writes the
// result as DOT, GraphML, or GEXF.
//
// Usage:
//
//	pipedag [flags] pipeline.json [output.dot]
//
// A .env file in the working directory may set PIPEDAG_* defaults
// (PIPEDAG_LOG, PIPEDAG_DATA_TYPE, PIPEDAG_SINK_PATTERNS).
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/pipedag/pipedag/dag"
	"github.com/pipedag/pipedag/export"
	"github.com/pipedag/pipedag/filter"
	"github.com/pipedag/pipedag/pipeline"
	"github.com/pipedag/pipedag/pkg/log"
)

type cliConfig struct {
	pipelinePath string
	outputPath   string

	dependencyGraph bool
	includeDisabled bool
	dataType        string

	rootNodes     string
	sourceModules string
	loaderModule  string

	removeUnusedImages       bool
	removeUnusedObjects      bool
	removeUnusedMeasurements bool
	excludeModuleTypes       string

	highlightFiltered  bool
	noParentResolution bool
	trackLiveness      bool

	rankNodes          bool
	rankIgnoreFiltered bool
	sinkPatterns       string

	ultraMinimal bool
	noFormatting bool
	noModuleInfo bool
	explainIDs   bool
	quiet        bool
	verbose      bool
}

func main() {
	// Missing .env is fine; it only supplies optional defaults.
	_ = godotenv.Load()

	cfg := parseFlags()
	logger := log.New()
	if cfg.verbose {
		*logger = logger.Level(zerolog.DebugLevel)
	} else {
		*logger = logger.Level(zerolog.InfoLevel)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func parseFlags() cliConfig {
	var cfg cliConfig

	flag.BoolVar(&cfg.dependencyGraph, "dependency-graph", false, "input is a pre-resolved dependency document")
	flag.BoolVar(&cfg.includeDisabled, "include-disabled", false, "include disabled modules in the graph")
	flag.StringVar(&cfg.dataType, "data-type", envDefault("PIPEDAG_DATA_TYPE", "all"), "data types to include: all, images_only, objects_only, no_lists")

	flag.StringVar(&cfg.rootNodes, "root-nodes", "", "comma-separated root data item names for the reachability filter")
	flag.StringVar(&cfg.sourceModules, "source-modules", "", "comma-separated loader module names; roots are data items fed solely by them")
	flag.StringVar(&cfg.loaderModule, "loader-module", "", "module that implicitly produces all otherwise unproduced data items")

	flag.BoolVar(&cfg.removeUnusedImages, "remove-unused-images", false, "filter image data nothing consumes")
	flag.BoolVar(&cfg.removeUnusedObjects, "remove-unused-objects", false, "filter object data nothing consumes")
	flag.BoolVar(&cfg.removeUnusedMeasurements, "remove-unused-measurements", false, "filter measurement data nothing consumes")
	flag.StringVar(&cfg.excludeModuleTypes, "exclude-module-types", "", "comma-separated module names to filter out")

	flag.BoolVar(&cfg.highlightFiltered, "highlight-filtered", false, "gray out filtered elements instead of removing them")
	flag.BoolVar(&cfg.noParentResolution, "no-parent-resolution", false, "keep all producers of multi-parent data items")
	flag.BoolVar(&cfg.trackLiveness, "track-liveness", false, "color edges by liveness annotations (dependency documents only)")

	flag.BoolVar(&cfg.rankNodes, "rank-nodes", false, "emit source/sink rank hints for layout")
	flag.BoolVar(&cfg.rankIgnoreFiltered, "rank-ignore-filtered", false, "leave filtered nodes out of rank hints")
	flag.StringVar(&cfg.sinkPatterns, "sink-patterns", envDefault("PIPEDAG_SINK_PATTERNS", "Export*,Save*"), "comma-separated globs for bottom-ranked module names")

	flag.BoolVar(&cfg.ultraMinimal, "ultra-minimal", false, "strip output to node types and bare edges for exact diffing")
	flag.BoolVar(&cfg.noFormatting, "no-formatting", false, "skip colors and shapes in the output")
	flag.BoolVar(&cfg.noModuleInfo, "no-module-info", false, "omit edge type annotations from the output")
	flag.BoolVar(&cfg.explainIDs, "explain-ids", false, "print the stable ID mapping")
	flag.BoolVar(&cfg.quiet, "quiet", false, "suppress the console summary")
	flag.BoolVar(&cfg.verbose, "verbose", false, "enable debug logging")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] pipeline.json [output.{dot,graphml,gexf}]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	cfg.pipelinePath = flag.Arg(0)
	if flag.NArg() > 1 {
		cfg.outputPath = flag.Arg(1)
	}
	return cfg
}

func run(cfg cliConfig, logger *zerolog.Logger) error {
	records, hasLiveness, err := loadRecords(cfg)
	if err != nil {
		return err
	}
	if cfg.trackLiveness && !hasLiveness {
		return filter.ErrNoLivenessData
	}

	policy, err := policyFor(cfg.dataType)
	if err != nil {
		return err
	}

	buildOpts := []dag.BuildOption{dag.WithPolicy(policy)}
	if cfg.includeDisabled {
		buildOpts = append(buildOpts, dag.WithDisabled())
	}
	g := dag.Build(records, buildOpts...)
	logger.Debug().Int("nodes", g.NodeCount()).Int("edges", g.EdgeCount()).Msg("graph built")

	if cfg.loaderModule != "" {
		if err := attachLoaderOutputs(g, cfg.loaderModule, logger); err != nil {
			return err
		}
	}

	filtered, report, err := buildFilterPipeline(cfg, logger).Run(g)
	if err != nil {
		return err
	}
	for _, pass := range report.Passes {
		logger.Debug().Str("pass", pass.Pass).Int("affected", pass.Affected).Msg("pass result")
	}

	if !cfg.quiet {
		export.WriteSummary(os.Stdout, filtered, cfg.pipelinePath)
		export.WriteConnections(os.Stdout, filtered)
		if cfg.explainIDs {
			export.WriteStableIDs(os.Stdout, filtered)
		}
	}

	if cfg.outputPath == "" {
		return nil
	}

	doc := export.Normalize(filtered, export.Options{
		Minimal:            cfg.ultraMinimal,
		OmitEdgeTypes:      cfg.noModuleInfo,
		Rank:               cfg.rankNodes,
		RankIgnoreFiltered: cfg.rankIgnoreFiltered,
		SourceModules:      splitFlag(cfg.sourceModules),
		SinkPatterns:       splitFlag(cfg.sinkPatterns),
	})
	if !cfg.ultraMinimal && !cfg.noFormatting {
		export.ApplyStyling(doc)
	}
	if err := export.WriteFile(cfg.outputPath, doc); err != nil {
		return err
	}
	logger.Info().Str("path", cfg.outputPath).Msg("graph saved")
	return nil
}

func loadRecords(cfg cliConfig) ([]dag.ModuleRecord, bool, error) {
	if cfg.dependencyGraph {
		doc, err := pipeline.LoadDependencyDocument(cfg.pipelinePath)
		if err != nil {
			return nil, false, err
		}
		return doc.Records(), doc.HasLiveness(), nil
	}
	doc, err := pipeline.LoadDocument(cfg.pipelinePath)
	if err != nil {
		return nil, false, err
	}
	return pipeline.Extract(doc, pipeline.DefaultRegistry()), false, nil
}

func buildFilterPipeline(cfg cliConfig, logger *zerolog.Logger) *filter.Pipeline {
	opts := []filter.Option{filter.WithLogger(*logger)}

	if cfg.highlightFiltered {
		opts = append(opts, filter.WithMode(filter.ModeHighlight))
	}
	opts = append(opts, filter.WithRoots(splitFlag(cfg.rootNodes)...))
	opts = append(opts, filter.WithSourceModules(splitFlag(cfg.sourceModules)...))

	var unused []dag.Category
	if cfg.removeUnusedImages {
		unused = append(unused, dag.CategoryImage)
	}
	if cfg.removeUnusedObjects {
		unused = append(unused, dag.CategoryObject)
	}
	if cfg.removeUnusedMeasurements {
		unused = append(unused, dag.CategoryMeasurement)
	}
	opts = append(opts, filter.WithUnusedData(unused...))
	opts = append(opts, filter.WithExcludedModules(splitFlag(cfg.excludeModuleTypes)...))

	if cfg.noParentResolution {
		opts = append(opts, filter.WithoutParentResolution())
	}
	if cfg.trackLiveness {
		opts = append(opts, filter.WithLivenessTracking())
	}
	return filter.New(opts...)
}

// attachLoaderOutputs resolves the loader module by name and wires its
// implicit outputs. A missing loader is a warning, not an error: the
// base graph is still sound without the synthetic edges.
func attachLoaderOutputs(g *dag.Graph, name string, logger *zerolog.Logger) error {
	for _, n := range g.Nodes() {
		if n.Kind == dag.KindModule && n.ModuleName == name {
			added, err := dag.AttachImplicitOutputs(g, n.Key)
			if err != nil {
				return err
			}
			logger.Debug().Str("loader", name).Int("edges", added).Msg("implicit loader outputs attached")
			return nil
		}
	}
	logger.Warn().Str("loader", name).Msg("loader module not found in graph")
	return nil
}

func policyFor(dataType string) (dag.IncludePolicy, error) {
	policy := dag.DefaultPolicy()
	switch dataType {
	case "all":
	case "images_only":
		// List inputs stay included here: only objects_only and
		// no_lists drop them.
		policy.Objects = false
	case "objects_only":
		policy.Images = false
		policy.Lists = false
	case "no_lists":
		policy.Lists = false
	default:
		return policy, fmt.Errorf("unknown data type %q", dataType)
	}
	return policy, nil
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitFlag(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
