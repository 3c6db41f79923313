package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/Mehak261124/AI-IDS/internal/api"
	"github.com/Mehak261124/AI-IDS/internal/config"
	"github.com/Mehak261124/AI-IDS/internal/errors"
	"github.com/Mehak261124/AI-IDS/internal/ui"
)

// initCommand creates a .aids.yaml in the current directory. A server
// passed via flag skips the prompt, for scripted setups.
func initCommand(server string, force bool) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !force {
		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	pollChoice := "5s"
	if server == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Detection server URL").
					Description("Where the AI-IDS API is listening").
					Placeholder("http://127.0.0.1:8000").
					Value(&server).
					Validate(validateServerInput),
			),
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Status poll interval").
					Description("How often the live view refreshes while capturing").
					Options(
						huh.NewOption("2s - busy networks", "2s"),
						huh.NewOption("5s - recommended", "5s"),
						huh.NewOption("10s - quiet networks", "10s"),
					).
					Value(&pollChoice),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility, or pass --server to skip prompts")
		}
	}
	if server == "" {
		server = "http://127.0.0.1:8000"
	}
	if err := validateServerInput(server); err != nil {
		return errors.New(errors.ErrConfig, err.Error(),
			"Use a full URL like http://127.0.0.1:8000")
	}

	// Check the server before writing, but let the user save anyway - the
	// sensor might simply not be up yet.
	spin := ui.NewSpinner("Checking " + server)
	spin.Start()
	client := api.New(server, api.Options{Timeout: 5 * time.Second})
	_, healthErr := client.Health(context.Background())
	if healthErr != nil {
		spin.Fail()

		var saveAnyway bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("The server didn't answer. Save the config anyway?").
					Value(&saveAnyway),
			),
		)
		if err := form.Run(); err != nil || !saveAnyway {
			return errors.WrapWithCode(healthErr, errors.ErrAPI,
				"Detection server at "+server+" isn't responding",
				"Start the API server, or re-run 'aids init' with the right URL")
		}
	} else {
		spin.Success()
	}

	cfg := config.DefaultConfig()
	cfg.Server = server
	if d, err := time.ParseDuration(pollChoice); err == nil {
		cfg.PollInterval = d
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	header := `# aids configuration
# Run 'aids live' to monitor a capture session
# See: https://github.com/Mehak261124/AI-IDS for documentation

`
	if err := os.WriteFile(configPath, []byte(header+string(data)), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write config file: "+configPath,
			"Check directory permissions")
	}

	fmt.Printf("%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Println("Next steps:")
	fmt.Println("  aids status   - Check the server and capture state")
	fmt.Println("  aids live     - Start the interactive monitor")
	fmt.Println("  aids analyze  - Classify a capture file")

	return nil
}

// validateServerInput checks a server URL entered in the init form.
func validateServerInput(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("server URL is required")
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return fmt.Errorf("not a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("use an http:// or https:// URL")
	}
	return nil
}
