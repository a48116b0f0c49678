// Command soapgen generates Go client classes from the complex types of a
// schema document.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"soapgen/internal/cli"
	"soapgen/internal/log"
)

func main() {
	options := []kong.Option{
		kong.Name("soapgen"),
		kong.Description("Generates client classes from schema complex types."),
		kong.UsageOnError(),
	}
	// Flags and environment variables override configuration values.
	options = append(options, configurationLoaders(findUserConfig(os.Args[1:]))...)

	var commandLine cli.CLI
	ctx := kong.Parse(&commandLine, options...)

	logger, closeFiles, err := log.SetupLogger(commandLine.Log.Level, commandLine.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	ctx.Bind(logger)
	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

// findUserConfig picks the configuration file before kong parses the flags,
// so its values can serve as defaults.
func findUserConfig(args []string) []string {
	for i, arg := range args {
		if value, found := cutFlag(arg); found {
			return []string{value}
		}
		if arg == "--config" && i+1 < len(args) {
			return []string{args[i+1]}
		}
	}
	if value := os.Getenv("SOAPGEN_CONFIG"); value != "" {
		return []string{value}
	}
	return []string{"soapgen.json", "soapgen.yaml", "soapgen.toml"}
}

func configurationLoaders(paths []string) []kong.Option {
	var jsonPaths, yamlPaths, tomlPaths []string
	for _, path := range paths {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, path)
		case ".toml":
			tomlPaths = append(tomlPaths, path)
		default:
			jsonPaths = append(jsonPaths, path)
		}
	}

	return []kong.Option{
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	}
}

func cutFlag(arg string) (string, bool) {
	value, found := strings.CutPrefix(arg, "--config=")
	return value, found && value != ""
}
