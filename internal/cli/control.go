package cli

import (
	"context"
	"fmt"

	"github.com/Mehak261124/AI-IDS/internal/ui"
)

// startCommand fires a one-shot start request. It holds no session state;
// the lifecycle machine lives in the live view. Starting an
// already-running capture is a server-side no-op.
func startCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, cleanup, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := client.StartLive(context.Background()); err != nil {
		return err
	}

	fmt.Printf("%s Live capture started on %s\n", ui.SymbolSuccess, cfg.Server)
	fmt.Println("Watch it with 'aids live' or check in with 'aids status'.")
	return nil
}

// stopCommand fires a one-shot stop request.
func stopCommand() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, cleanup, err := newClient(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := client.StopLive(context.Background()); err != nil {
		return err
	}

	fmt.Printf("%s Live capture stopped\n", ui.SymbolSuccess)
	fmt.Println("The server is finishing the last window - results land in a moment.")
	fmt.Println("Fetch them with 'aids download'.")
	return nil
}
