package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/modu-ai/kickstart/internal/buildtool"
	"github.com/modu-ai/kickstart/internal/core/project"
	"github.com/modu-ai/kickstart/internal/defs"
	"github.com/modu-ai/kickstart/internal/platform"
	"github.com/modu-ai/kickstart/pkg/models"
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [directory]",
		Short: "Create a project, or add the platform to an existing one",
		Long: `Create a Maven or Gradle project in the given directory.

When the directory already holds a pom.xml or build.gradle for the chosen
build tool, the platform BOM, plugin and dependencies are merged into it.
Existing README, ignore, configuration and source files are kept.

Examples:
  kickstart create greeter --group-id org.acme --class-name org.acme.GreetingResource
  kickstart create . --build-tool gradle --extensions hibernate-validator
  kickstart create svc --spring --path /api --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCreate,
	}

	f := cmd.Flags()
	f.String("group-id", "", "Project group id (default from settings: org.acme)")
	f.String("artifact-id", "", "Project artifact id (default: directory name)")
	f.String("version", "", "Project version (default from settings: 1.0.0-SNAPSHOT)")
	f.String("class-name", "", "Sample resource class, simple or fully qualified; empty for none")
	f.String("build-tool", "", "Build tool: maven or gradle (default: maven)")
	f.Bool("spring", false, "Generate a Spring Web controller instead of a JAX-RS resource")
	f.String("path", "", "HTTP path of the sample resource (default: /hello)")
	f.StringSlice("extensions", nil, "Extra extensions: artifactId or groupId:artifactId[:version]")
	f.String("platform-file", "", "Platform descriptor YAML overriding the embedded one")
	f.Bool("dry-run", false, "Show what would change without writing")
	f.Bool("non-interactive", false, "Never prompt for missing values")
	f.Bool("show-readme", false, "Print the generated README when done")
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	deps, err := newDependencies(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = deps.Close() }()

	cfg, err := configFromFlags(cmd)
	if err != nil {
		return err
	}
	deps.Settings.ApplyDefaults(&cfg)

	var dir string
	if len(args) > 0 {
		dir = args[0]
	}
	if cfg.ArtifactID == "" && dir != "" && dir != "." {
		cfg.ArtifactID = filepath.Base(filepath.Clean(dir))
	}

	if cfg.ArtifactID == "" && !getBoolFlag(cmd, "non-interactive") && stdinIsTerminal() {
		if err := promptProject(&cfg); err != nil {
			if errors.Is(err, errPromptCancelled) {
				_, _ = fmt.Fprintln(cmd.OutOrStderr(), "Create cancelled.")
				return nil
			}
			return err
		}
	}

	if dir != "" {
		cfg.Root, err = project.ResolveRoot(dir)
	} else {
		cfg.Root, err = project.DefaultRoot(cfg.ArtifactID)
	}
	if err != nil {
		return err
	}

	opts := []project.Option{project.WithLogger(deps.Logger)}
	platformFile := getStringFlag(cmd, "platform-file")
	if platformFile == "" {
		platformFile = deps.Settings.Platform.File
	}
	if platformFile != "" {
		desc, err := platform.Load(platformFile)
		if err != nil {
			return fmt.Errorf("load platform descriptor: %w", err)
		}
		opts = append(opts, project.WithPlatform(desc))
	}

	out := project.Create(cmd.Context(), cfg, opts...)

	var layout buildtool.Layout
	if tool, err := buildtool.For(cfg.EffectiveBuildTool()); err == nil {
		layout = tool.Layout()
	}
	printOutcome(cmd.OutOrStdout(), out, cfg.Root, layout)

	if !out.IsSuccess() {
		return fmt.Errorf("create failed (%s): %w", out.Failure(), out.Err())
	}

	if getBoolFlag(cmd, "show-readme") && !out.DryRun() {
		readme, err := os.ReadFile(filepath.Join(cfg.Root, defs.ReadmeMD))
		if err != nil {
			return fmt.Errorf("read README: %w", err)
		}
		renderMarkdown(cmd.OutOrStdout(), string(readme))
	}
	return nil
}

// configFromFlags collects the project configuration given on the command line.
func configFromFlags(cmd *cobra.Command) (models.ProjectConfig, error) {
	cfg := models.ProjectConfig{
		GroupID:    getStringFlag(cmd, "group-id"),
		ArtifactID: getStringFlag(cmd, "artifact-id"),
		Version:    getStringFlag(cmd, "version"),
		ClassName:  getStringFlag(cmd, "class-name"),
		Features: models.Features{
			SpringController: getBoolFlag(cmd, "spring"),
			ResourcePath:     getStringFlag(cmd, "path"),
		},
		DryRun: getBoolFlag(cmd, "dry-run"),
	}

	if name := getStringFlag(cmd, "build-tool"); name != "" {
		bt, err := models.ParseBuildTool(name)
		if err != nil {
			return cfg, err
		}
		cfg.BuildTool = bt
	}

	exts, err := cmd.Flags().GetStringSlice("extensions")
	if err != nil {
		return cfg, fmt.Errorf("read --extensions: %w", err)
	}
	cfg.Extensions = exts
	return cfg, nil
}
