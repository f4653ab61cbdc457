/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/hertz-contrib/swagger-generate/thriftgen/codegen"
	"github.com/hertz-contrib/swagger-generate/thriftgen/converter"
	"github.com/hertz-contrib/swagger-generate/thriftgen/generate"
	"github.com/hertz-contrib/swagger-generate/thriftgen/parser"
	"github.com/hertz-contrib/swagger-generate/thriftgen/thrift"
)

const (
	defaultOutputDir      = "gen"
	defaultThriftFilename = "output.thrift"
)

var (
	outputDir    string
	outputFile   string
	modulePrefix string
	configFile   string
	namespace    string
	manifestFile string
	listType     string
	setType      string
	mapType      string
	workers      int
	namingOption bool
	verbose      bool
)

func main() {
	sourceFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "namespace",
			Usage:       "go namespace used when the OpenAPI file declares none through x-options",
			Destination: &namespace,
		},
		&cli.BoolFlag{
			Name:        "naming",
			Aliases:     []string{"n"},
			Usage:       "use naming conventions for the converted types and fields",
			Value:       true,
			Destination: &namingOption,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "log every generation step",
			Destination: &verbose,
		},
	}

	// Create a new CLI app
	app := &cli.App{
		Name:  "thriftgen",
		Usage: "Generate Go code for the Thrift types and services described by an OpenAPI spec",
		Commands: []*cli.Command{
			{
				Name:      "go",
				Usage:     "Generate Go packages",
				ArgsUsage: "OPENAPI_FILE",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:        "out",
						Aliases:     []string{"o"},
						Usage:       "output directory",
						Value:       defaultOutputDir,
						Destination: &outputDir,
					},
					&cli.StringFlag{
						Name:        "module",
						Aliases:     []string{"m"},
						Usage:       "import path prefix of the generated packages",
						Destination: &modulePrefix,
					},
					&cli.StringFlag{
						Name:        "config",
						Aliases:     []string{"c"},
						Usage:       "YAML generator config; flags override its settings",
						Destination: &configFile,
					},
					&cli.StringFlag{
						Name:        "list-type",
						Usage:       "qualified type used for lists, e.g. example.com/coll.List",
						Destination: &listType,
					},
					&cli.StringFlag{
						Name:        "set-type",
						Usage:       "qualified type used for sets",
						Destination: &setType,
					},
					&cli.StringFlag{
						Name:        "map-type",
						Usage:       "qualified type used for maps",
						Destination: &mapType,
					},
					&cli.BoolFlag{
						Name:  "defensive-annotations",
						Usage: "tag fields with their nullability",
					},
					&cli.BoolFlag{
						Name:  "serialization-helpers",
						Usage: "add MarshalBinary and UnmarshalBinary to structs",
					},
					&cli.StringFlag{
						Name:        "manifest",
						Usage:       "write a JSON list of the generated files",
						Destination: &manifestFile,
					},
					&cli.IntFlag{
						Name:        "workers",
						Aliases:     []string{"w"},
						Usage:       "number of declarations generated at once",
						Destination: &workers,
					},
				}, sourceFlags...),
				Action: generateGo,
			},
			{
				Name:      "idl",
				Usage:     "Convert the OpenAPI spec to Thrift IDL",
				ArgsUsage: "OPENAPI_FILE",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:        "output",
						Aliases:     []string{"o"},
						Usage:       "output file path",
						Value:       defaultThriftFilename,
						Destination: &outputFile,
					},
				}, sourceFlags...),
				Action: generateIDL,
			},
		},
	}

	// Run the app
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadSchema reads the OpenAPI file named by the first argument and
// converts it.
func loadSchema(c *cli.Context) *thrift.Schema {
	if c.NArg() < 1 {
		log.Fatal("Please provide the path to the OpenAPI file.")
	}
	openapiFile := c.Args().First()

	spec, err := parser.LoadOpenAPISpec(openapiFile)
	if err != nil {
		log.Fatalf("Failed to load OpenAPI file: %v", err)
	}

	schema, err := converter.NewThriftConverter(spec, &converter.ConvertOption{
		Source:       filepath.Base(openapiFile),
		Namespace:    namespace,
		NamingOption: namingOption,
	}).Convert()
	if err != nil {
		log.Fatalf("Error during conversion: %v", err)
	}
	return schema
}

func loadConfig(c *cli.Context) *codegen.Config {
	cfg := codegen.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = codegen.LoadConfig(configFile); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if c.IsSet("list-type") {
		cfg.ListContainer = listType
	}
	if c.IsSet("set-type") {
		cfg.SetContainer = setType
	}
	if c.IsSet("map-type") {
		cfg.MapContainer = mapType
	}
	if c.IsSet("defensive-annotations") {
		cfg.EmitDefensiveAnnotations = c.Bool("defensive-annotations")
	}
	if c.IsSet("serialization-helpers") {
		cfg.EmitSerializationHelpers = c.Bool("serialization-helpers")
	}
	if c.IsSet("workers") {
		cfg.Workers = workers
	}
	return cfg
}

func generateGo(c *cli.Context) error {
	setupLogger()
	schema := loadSchema(c)
	cfg := loadConfig(c)

	emitter := generate.NewGoEmitter(generate.WithModule(modulePrefix))
	gen, err := codegen.New(cfg, codegen.WithReserved(emitter.Reserved()...), codegen.WithLogger(slog.Default()))
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// A failed declaration leaves the others intact; write what generated
	// and report the failures afterwards.
	files, genErr := gen.Generate(context.Background(), schema)
	outputs, emitErr := generate.EmitAll(emitter, files)

	var total int
	for _, o := range outputs {
		dst := filepath.Join(outputDir, filepath.FromSlash(o.Path))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			log.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(dst, o.Content, 0o644); err != nil {
			log.Fatalf("Error writing to file: %v", err)
		}
		total += len(o.Content)
		slog.Debug("wrote file", "path", dst, "size", humanize.Bytes(uint64(len(o.Content))))
	}
	slog.Info("generation done", "files", len(outputs), "size", humanize.Bytes(uint64(total)))

	if manifestFile != "" {
		if err := writeManifest(manifestFile, outputs); err != nil {
			log.Fatalf("Failed to write manifest: %v", err)
		}
	}

	if genErr != nil {
		log.Fatalf("Generation failed: %v", genErr)
	}
	if emitErr != nil {
		log.Fatalf("Rendering failed: %v", emitErr)
	}
	return nil
}

type manifestEntry struct {
	Path      string `json:"path"`
	Namespace string `json:"namespace"`
	Source    string `json:"source,omitempty"`
	Bytes     int    `json:"bytes"`
}

func writeManifest(path string, outputs []*generate.Output) error {
	entries := make([]manifestEntry, 0, len(outputs))
	for _, o := range outputs {
		entries = append(entries, manifestEntry{
			Path:      o.Path,
			Namespace: o.Namespace,
			Source:    o.Source,
			Bytes:     len(o.Content),
		})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func generateIDL(c *cli.Context) error {
	setupLogger()
	schema := loadSchema(c)

	idlContent, err := generate.NewThriftGenerate().Generate(schema)
	if err != nil {
		log.Fatalf("Error generating IDL: %v", err)
	}

	file, err := os.Create(outputFile)
	if err != nil {
		log.Fatalf("Failed to create file: %v", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Printf("Error closing file: %v", err)
		}
	}()

	if _, err = file.WriteString(idlContent); err != nil {
		log.Fatalf("Error writing to file: %v", err)
	}
	slog.Info("wrote idl", "path", outputFile, "size", humanize.Bytes(uint64(len(idlContent))))
	return nil
}
