package main

import (
	"context"
	"fmt"
	"os"

	"github.com/chsmth/shopify-price-manager-cli/internal/cli"
	"github.com/chsmth/shopify-price-manager-cli/internal/config"
	"github.com/chsmth/shopify-price-manager-cli/internal/infra/sqlite"
	"github.com/chsmth/shopify-price-manager-cli/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("error %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewLogger()
	notifier := logging.NewNotifier(cfg.Telegram)

	index, err := sqlite.Open(cfg.Backup.IndexDBPath)
	if err != nil {
		// The index is bookkeeping only; run without it.
		logger.LogWarning(fmt.Sprintf("backup index unavailable: %v", err))
		index = nil
	}
	defer index.Close()

	menu := cli.NewMenu(cfg, logger, notifier, index)
	menu.Run(context.Background())
}
