// Package cli defines the soapgen command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"soapgen/internal/descriptor"
	"soapgen/internal/generation"
	"soapgen/internal/metadata"
)

type CLI struct {
	Config string `help:"Configuration file (JSON, YAML or TOML)" type:"path" env:"SOAPGEN_CONFIG"`
	Log    Log    `embed:"" prefix:"log."`

	Generate Generate `cmd:"" default:"withargs" help:"Generate client classes from a schema document"`
}

type Log struct {
	Level string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"SOAPGEN_LOG_LEVEL"`
	File  string `help:"Also write logs to this file" env:"SOAPGEN_LOG_FILE"`
}

type Generate struct {
	Input       string `help:"Schema document path or http(s) URL" required:"" env:"SOAPGEN_INPUT"`
	Output      string `help:"Directory the generated files are written to" default:"./output/" env:"SOAPGEN_OUTPUT"`
	PackageName string `name:"package" help:"Name of the generated package" default:"soapclient" env:"SOAPGEN_PACKAGE"`
	ForceClean  bool   `help:"Clean the output directory without asking"`

	CreateAccessors                bool `help:"Generate getters and setters and keep fields unexported" default:"true" negatable:""`
	NoTypeConstructor              bool `help:"Do not generate constructors"`
	ConstructorParamsDefaultToNull bool `help:"Document constructor parameters as optional"`
	ClassExists                    bool `help:"Keep classes whose file already exists"`

	// Confirm is asked before a non-empty output directory is cleaned.
	Confirm io.Reader `kong:"-"`
}

func (g *Generate) config() descriptor.Config {
	return descriptor.Config{
		CreateAccessors:                g.CreateAccessors,
		NoTypeConstructor:              g.NoTypeConstructor,
		ConstructorParamsDefaultToNull: g.ConstructorParamsDefaultToNull,
		ClassExists:                    g.ClassExists,
	}
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger) error {
	ctx := context.Background()
	logger.Info("Starting code generation", "input", g.Input, "output", g.Output, "package", g.PackageName)

	reader, err := g.read(ctx, logger)
	if err != nil {
		return err
	}

	if !g.ClassExists {
		if err := g.clearOutput(logger); err != nil {
			return err
		}
	}

	generator := generation.NewGenerator(g.PackageName, g.Output, g.config(), logger)
	if err := generator.Ingest(reader); err != nil {
		return err
	}
	return generator.Generate(ctx, g.Output)
}

func (g *Generate) read(ctx context.Context, logger *slog.Logger) (*metadata.Reader, error) {
	if metadata.IsRemote(g.Input) {
		return metadata.Fetch(ctx, logger, g.Input)
	}
	if _, err := os.Stat(g.Input); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("input file %s does not exist", g.Input)
	}
	return metadata.NewReader(g.Input)
}

// clearOutput empties a non-empty output directory, asking first unless
// ForceClean is set.
func (g *Generate) clearOutput(logger *slog.Logger) error {
	directory, err := os.Open(g.Output)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer directory.Close()

	_, err = directory.Readdirnames(1)
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}

	if !g.ForceClean {
		confirm := g.Confirm
		if confirm == nil {
			confirm = os.Stdin
		}
		fmt.Print("Output directory is not empty. Continuation will result in removing all output files. Proceed? [Y/n] ")
		var response string
		_, _ = fmt.Fscanln(confirm, &response)
		if strings.ToUpper(response) != "Y" {
			return errors.New("explicit agreement was not given")
		}
	}

	logger.Info("Cleaning output directory", "output", g.Output)
	return os.RemoveAll(g.Output)
}
