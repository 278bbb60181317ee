package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	adapters "github.com/chsmth/shopify-price-manager-cli/internal/adapters/shopify"
	"github.com/chsmth/shopify-price-manager-cli/internal/app/usecases"
	"github.com/chsmth/shopify-price-manager-cli/internal/backup"
	"github.com/chsmth/shopify-price-manager-cli/internal/config"
	"github.com/chsmth/shopify-price-manager-cli/internal/domain/model"
	infrahttp "github.com/chsmth/shopify-price-manager-cli/internal/infra/http"
	"github.com/chsmth/shopify-price-manager-cli/internal/infra/sqlite"
	"github.com/chsmth/shopify-price-manager-cli/internal/logging"
	"github.com/chsmth/shopify-price-manager-cli/internal/pacing"
)

// Menu is the interactive operator surface. The mock flag lives here and
// is handed to each operation's client at construction, so there is no
// process-wide mutable state.
type Menu struct {
	cfg      *config.Config
	logger   logging.LoggerService
	notifier *logging.Notifier
	index    *sqlite.Index
	store    *backup.Store
	in       *bufio.Reader
	mock     bool
}

func NewMenu(cfg *config.Config, logger logging.LoggerService, notifier *logging.Notifier, index *sqlite.Index) *Menu {
	return &Menu{
		cfg:      cfg,
		logger:   logger,
		notifier: notifier,
		index:    index,
		store:    backup.NewStore(cfg.Backup.Dir),
		in:       bufio.NewReader(os.Stdin),
	}
}

func (m *Menu) Run(ctx context.Context) {
	for {
		fmt.Println("\n===== Shopify Bulk Price Manager =====")
		fmt.Printf("Mock Mode: %s\n", m.mockStatus())
		fmt.Println("\n1. Create backup for a collection")
		fmt.Println("2. Create backup for all products")
		fmt.Println("3. Apply discount using backup")
		fmt.Println("4. Restore prices from backup")
		fmt.Println("5. List available backups")
		fmt.Println("6. Toggle mock mode")
		fmt.Println("7. Exit")

		choice := m.prompt("\nEnter your choice (1-7): ")
		switch choice {
		case "1":
			m.backupCollection(ctx)
		case "2":
			m.backupAll(ctx)
		case "3":
			m.applyDiscount(ctx)
		case "4":
			m.restorePrices(ctx)
		case "5":
			m.listBackups(ctx)
		case "6":
			m.mock = !m.mock
			fmt.Printf("Mock Mode: %s\n", m.mockStatus())
			m.logger.Log(fmt.Sprintf("mock mode changed to: %s", m.mockStatus()))
		case "7":
			fmt.Println("Exiting. Goodbye!")
			return
		default:
			fmt.Println("Invalid choice. Please try again.")
		}
	}
}

func (m *Menu) mockStatus() string {
	if m.mock {
		return "ENABLED (no actual updates)"
	}
	return "DISABLED (real updates)"
}

// client builds a fresh Shopify client carrying the current mock flag.
func (m *Menu) client() *adapters.Client {
	shopifyCfg := m.cfg.Shopify
	shopifyCfg.Mock = m.mock
	return adapters.NewClient(shopifyCfg, infrahttp.NewClient(shopifyCfg.Timeout), m.logger)
}

func (m *Menu) pacer() pacing.Pacer {
	return pacing.FromConfig(m.cfg.Pacing)
}

func (m *Menu) backupCollection(ctx context.Context) {
	m.logger.Log("starting collection backup operation")
	client := m.client()
	catalog := usecases.NewCatalog(client, m.logger)

	collections := catalog.Collections(ctx)
	if len(collections) == 0 {
		m.logger.LogWarning("no collections found")
		return
	}

	fmt.Println("\nAvailable collections:")
	for i, collection := range collections {
		fmt.Printf("%d. %s (%d products)\n", i+1, collection.Title, collection.ProductsCount)
	}

	index, ok := m.promptIndex("\nEnter collection number to backup (or 0 to cancel): ", len(collections))
	if !ok {
		return
	}
	collection := collections[index]
	m.logger.Log(fmt.Sprintf("starting backup of collection: %s (%s)", collection.Title, collection.ID))

	products, title := catalog.CollectionProducts(ctx, collection.ID)
	if title == "" {
		title = collection.Title
	}
	label := "collection_" + backup.SanitizeLabel(title)
	m.runBackup(ctx, client, products, label)
}

func (m *Menu) backupAll(ctx context.Context) {
	m.logger.Log("starting backup of all products")
	client := m.client()
	catalog := usecases.NewCatalog(client, m.logger)

	products := catalog.AllProducts(ctx, func(total int) bool {
		answer := m.prompt(fmt.Sprintf("Continue fetching products? (total so far: %d) (yes/no): ", total))
		return strings.EqualFold(answer, "yes")
	})
	m.runBackup(ctx, client, products, "all_products")
}

func (m *Menu) runBackup(ctx context.Context, client *adapters.Client, products []model.Product, label string) {
	if len(products) == 0 {
		m.logger.LogWarning("nothing to back up")
		return
	}
	backupUC := usecases.NewBackup(client, client, m.store, m.index, m.pacer(), m.logger, m.cfg.Shopify.ShopDomain)
	path, err := backupUC.Run(ctx, products, label)
	if err != nil {
		m.logger.LogError("backup failed", err)
		return
	}
	m.notifier.Notify(m.logger, fmt.Sprintf("backup completed: %s (%d products)", path, len(products)))
}

func (m *Menu) applyDiscount(ctx context.Context) {
	m.logger.Log("starting discount application process")

	info, ok := m.chooseBackup("\nEnter backup number to use for discount (or 0 to cancel): ")
	if !ok {
		return
	}

	pct := m.promptFloat("Enter discount percentage (default: 20): ", 20)
	m.logger.Log(fmt.Sprintf("discount percentage: %.2f%%", pct))

	setCompareAnswer := m.prompt("Set original price as compare-at price if none exists? (yes/no, default: yes): ")
	setCompareAt := !strings.EqualFold(setCompareAnswer, "no")

	if !m.confirmMutation(fmt.Sprintf("Apply %.2f%% discount using %s", pct, info.Name)) {
		m.logger.Log("operation cancelled by user")
		return
	}

	client := m.client()
	discount := usecases.NewDiscount(client, m.store, m.index, m.pacer(), m.logger)
	success, errCount, err := discount.Run(ctx, info.Path, usecases.DiscountOptions{
		Percentage:   pct,
		SetCompareAt: setCompareAt,
	})
	if err != nil {
		m.logger.LogError("discount application failed", err)
		return
	}
	m.notifier.Notify(m.logger, fmt.Sprintf("discount applied from %s: %d successful, %d errors", info.Name, success, errCount))
}

func (m *Menu) restorePrices(ctx context.Context) {
	m.logger.Log("starting price restoration process")

	info, ok := m.chooseBackup("\nEnter backup number to restore prices from (or 0 to cancel): ")
	if !ok {
		return
	}

	if !m.confirmMutation(fmt.Sprintf("Restore prices from %s", info.Name)) {
		m.logger.Log("operation cancelled by user")
		return
	}

	client := m.client()
	restore := usecases.NewRestore(client, m.store, m.index, m.pacer(), m.logger)
	success, errCount, err := restore.Run(ctx, info.Path)
	if err != nil {
		m.logger.LogError("price restoration failed", err)
		return
	}
	m.notifier.Notify(m.logger, fmt.Sprintf("prices restored from %s: %d successful, %d errors", info.Name, success, errCount))
}

func (m *Menu) listBackups(ctx context.Context) {
	infos := m.printBackups()
	if len(infos) == 0 {
		return
	}

	runs, err := m.index.RecentRuns(ctx, 10)
	if err != nil {
		m.logger.LogWarning(fmt.Sprintf("could not read run index: %v", err))
		return
	}
	if len(runs) > 0 {
		fmt.Println("\nRecent runs:")
		for _, run := range runs {
			fmt.Printf("  %s  %-8s %s (%d products, %d ok, %d errors)\n",
				run.CreatedAt.Format("2006-01-02 15:04:05"), run.Operation, run.BackupFile,
				run.Products, run.Success, run.Errors)
		}
	}
}

func (m *Menu) printBackups() []backup.Info {
	infos, err := m.store.List()
	if err != nil {
		m.logger.LogError("could not list backups", err)
		return nil
	}
	if len(infos) == 0 {
		m.logger.LogWarning("no backups found")
		fmt.Println("No backups found.")
		return nil
	}

	fmt.Println("Available price backups:")
	for i, info := range infos {
		fmt.Printf("%d. %s - Created: %s\n", i+1, info.Name, info.ModTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("   Products: %d\n", info.Products)
	}
	return infos
}

func (m *Menu) chooseBackup(label string) (backup.Info, bool) {
	infos := m.printBackups()
	if len(infos) == 0 {
		return backup.Info{}, false
	}
	index, ok := m.promptIndex(label, len(infos))
	if !ok {
		return backup.Info{}, false
	}
	m.logger.Log(fmt.Sprintf("selected backup file: %s", infos[index].Name))
	return infos[index], true
}

func (m *Menu) confirmMutation(action string) bool {
	var question string
	if m.mock {
		question = fmt.Sprintf("\n%s in MOCK mode? (yes/no): ", action)
	} else {
		question = fmt.Sprintf("\nWARNING: This will apply real price changes to your store.\n%s? (yes/no): ", action)
	}
	return strings.EqualFold(m.prompt(question), "yes")
}

func (m *Menu) prompt(label string) string {
	fmt.Print(label)
	line, err := m.in.ReadString('\n')
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

// promptIndex reads a 1-based selection, returning the 0-based index.
// Zero cancels; anything unparsable or out of range re-prompts.
func (m *Menu) promptIndex(label string, max int) (int, bool) {
	for {
		answer := m.prompt(label)
		selected, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Println("Invalid input. Please enter a number.")
			continue
		}
		if selected == 0 {
			m.logger.Log("operation cancelled by user")
			return 0, false
		}
		if selected < 1 || selected > max {
			fmt.Printf("Invalid number: %d\n", selected)
			continue
		}
		return selected - 1, true
	}
}

func (m *Menu) promptFloat(label string, def float64) float64 {
	answer := m.prompt(label)
	if answer == "" {
		return def
	}
	value, err := strconv.ParseFloat(answer, 64)
	if err != nil {
		fmt.Printf("Invalid input, using default %.0f.\n", def)
		return def
	}
	return value
}
