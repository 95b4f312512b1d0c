package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/modu-ai/kickstart/pkg/models"
)

// errPromptCancelled is returned when the user aborts the prompt.
var errPromptCancelled = errors.New("cancelled by user")

// stdinIsTerminal reports whether prompting is possible.
func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// promptProject asks for the coordinates of cfg, pre-filled with what the
// flags and settings already provide.
func promptProject(cfg *models.ProjectConfig) error {
	buildTool := string(cfg.EffectiveBuildTool())
	toolOptions := make([]huh.Option[string], 0, len(models.ValidBuildTools()))
	for _, bt := range models.ValidBuildTools() {
		toolOptions = append(toolOptions, huh.NewOption(bt.String(), bt.String()))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Group id").
				Placeholder("org.acme").
				Value(&cfg.GroupID).
				Validate(func(s string) error {
					if !models.ValidGroupID(s) {
						return fmt.Errorf("use dot-separated identifiers, like org.acme")
					}
					return nil
				}),
			huh.NewInput().
				Title("Artifact id").
				Value(&cfg.ArtifactID).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("artifact id is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Version").
				Value(&cfg.Version),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Build tool").
				Options(toolOptions...).
				Value(&buildTool),
			huh.NewInput().
				Title("Sample class").
				Description("Optional, for example org.acme.GreetingResource. Leave empty for none.").
				Value(&cfg.ClassName),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errPromptCancelled
		}
		return fmt.Errorf("prompt: %w", err)
	}
	cfg.BuildTool = models.BuildTool(buildTool)
	return nil
}
