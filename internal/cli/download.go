package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/Mehak261124/AI-IDS/internal/api"
	"github.com/Mehak261124/AI-IDS/internal/ui"
)

// downloadCommand fetches a results artifact into the download directory.
// An empty name means the live session's predictions.
func downloadCommand(name, dirFlag string) error {
	if name == "" {
		name = api.LivePredictionsFile
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := cfg.DownloadDir
	if dirFlag != "" {
		dir = dirFlag
	}

	client, cleanup, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	spin := ui.NewSpinner("Downloading " + name)
	spin.Start()

	path, n, err := client.Download(context.Background(), name, dir)
	if err != nil {
		spin.Fail()
		return err
	}
	spin.Success()

	fmt.Printf("  Saved %s (%s)\n", path, humanize.Bytes(uint64(n)))
	return nil
}
