// Command fetch runs the three integrations against a set of example or
// caller-supplied query targets, prints human-readable summaries, and exports
// each result set as CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/SohamNaik26/finance-integration/internal/config"
	"github.com/SohamNaik26/finance-integration/internal/integration"
	"github.com/SohamNaik26/finance-integration/internal/logging"
	"github.com/SohamNaik26/finance-integration/internal/models"
	"github.com/SohamNaik26/finance-integration/internal/table"
)

// Example addresses used when none are supplied.
var (
	defaultEVMAddresses  = []string{"0xEFfAB7cCEBF63FbEFB4884964b12259d4374FaAa"}
	defaultTronAddresses = []string{
		"TLyqzVGLV1srkB7dToTAEqgDSfPtXRJZYH",
		"TQn9Y2khEsLJW1ChVWFMSMeRDow5KcbLSE",
	}
)

func main() {
	evmList := flag.String("evm", strings.Join(defaultEVMAddresses, ","), "comma-separated EVM addresses")
	tronList := flag.String("tron", strings.Join(defaultTronAddresses, ","), "comma-separated TRON addresses")
	quotes := flag.Bool("quotes", true, "also fetch example bridge quotes")
	maxPages := flag.Int("max-pages", 0, "max pages per EVM address (default: from config)")
	outDir := flag.String("out", "", "CSV output directory (default: from config)")
	flag.Parse()

	if err := run(*evmList, *tronList, *quotes, *maxPages, *outDir); err != nil {
		slog.Error("fetch failed", "error", err)
		os.Exit(1)
	}
}

func run(evmList, tronList string, quotes bool, maxPages int, outDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCloser, err := logging.Setup(cfg.LogLevel, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	defer logCloser.Close()

	if maxPages <= 0 {
		maxPages = cfg.MaxPages
	}
	if outDir == "" {
		outDir = cfg.ExportDir
	}

	ctx := context.Background()

	if addrs := splitList(evmList); len(addrs) > 0 {
		if err := runEverclear(ctx, cfg, addrs, maxPages, outDir); err != nil {
			return err
		}
	}

	if addrs := splitList(tronList); len(addrs) > 0 {
		if err := runTronscan(ctx, cfg, addrs, outDir); err != nil {
			return err
		}
	}

	if quotes {
		if err := runMayan(ctx, cfg, outDir); err != nil {
			return err
		}
	}

	return nil
}

func runEverclear(ctx context.Context, cfg *config.Config, addresses []string, maxPages int, outDir string) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("EVERCLEAR BALANCE HISTORY")
	fmt.Println(strings.Repeat("=", 60))

	client := integration.NewEverclearClient(nil, cfg.EverclearURL)

	targets := make([]integration.BalanceParams, len(addresses))
	for i, addr := range addresses {
		targets[i] = integration.BalanceParams{Address: addr}
	}

	records := client.FetchBatch(ctx, targets, maxPages)
	t := table.Format(records, integration.EverclearTableSpec)

	fmt.Printf("Fetched %d balance history records\n", t.Len())
	fmt.Printf("Unique addresses: %d\n", uniqueCount(t.Rows, "query_address"))
	if t.Len() > 0 {
		if balance, ok := t.Rows[0].Float("balance_eth"); ok {
			fmt.Printf("Current ETH balance: %.6f ETH\n", balance)
		}
		if in, ok := largestOfType(t.Rows, integration.TxTypeIncoming); ok {
			fmt.Printf("Largest incoming: %.6f ETH\n", in)
		}
		if out, ok := largestOfType(t.Rows, integration.TxTypeOutgoing); ok {
			fmt.Printf("Largest outgoing: %.6f ETH\n", out)
		}
	}

	return exportTable(t, outDir, config.EverclearExportPrefix)
}

func runTronscan(ctx context.Context, cfg *config.Config, addresses []string, outDir string) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("TRONSCAN RESOURCES")
	fmt.Println(strings.Repeat("=", 60))

	client := integration.NewTronscanClient(nil, cfg.TronscanURL, cfg.TronscanAPIKey)

	records := client.FetchBatch(ctx, addresses)
	t := table.Format(records, integration.TronscanTableSpec)

	fmt.Printf("Fetched %d balance records\n", t.Len())
	fmt.Printf("Unique addresses: %d\n", uniqueCount(t.Rows, "query_address"))
	if total, count := sumFloat(t.Rows, "balance_trx"); count > 0 {
		fmt.Printf("Total TRX balance: %.6f TRX\n", total)
		fmt.Printf("Average balance: %.6f TRX\n", total/float64(count))
	}

	return exportTable(t, outDir, config.TronscanExportPrefix)
}

func runMayan(ctx context.Context, cfg *config.Config, outDir string) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("MAYAN BRIDGE QUOTES")
	fmt.Println(strings.Repeat("=", 60))

	client := integration.NewMayanClient(nil, cfg.MayanURL)

	// Native ETH → SOL, and USDC Ethereum → Solana.
	targets := []integration.QuoteParams{
		{
			FromChain: "ethereum",
			ToChain:   "solana",
			FromToken: "0x0000000000000000000000000000000000000000",
			ToToken:   "0x0000000000000000000000000000000000000000",
			AmountIn:  1.0,
		},
		{
			FromChain: "ethereum",
			ToChain:   "solana",
			FromToken: "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
			ToToken:   "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
			AmountIn:  100.0,
		},
	}

	records := client.FetchBatch(ctx, targets)
	t := table.Format(records, integration.MayanTableSpec)

	fmt.Printf("Fetched %d quotes\n", t.Len())

	return exportTable(t, outDir, config.MayanExportPrefix)
}

func exportTable(t *table.Table, outDir, prefix string) error {
	if t.Len() == 0 {
		fmt.Println("No data returned, skipping export")
		return nil
	}
	path, err := t.Export(outDir, prefix)
	if err != nil {
		return err
	}
	fmt.Printf("Data saved to %s\n\n", path)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func uniqueCount(rows []models.Record, col string) int {
	seen := make(map[string]bool)
	for _, r := range rows {
		if v := r.String(col); v != "" {
			seen[v] = true
		}
	}
	return len(seen)
}

// largestOfType returns the largest absolute delta among rows with the given
// transaction type.
func largestOfType(rows []models.Record, txType string) (float64, bool) {
	best, found := 0.0, false
	for _, r := range rows {
		if r.String("transaction_type") != txType {
			continue
		}
		if v, ok := r.Float("delta_eth_abs"); ok && (!found || v > best) {
			best, found = v, true
		}
	}
	return best, found
}

func sumFloat(rows []models.Record, col string) (float64, int) {
	total, count := 0.0, 0
	for _, r := range rows {
		if v, ok := r.Float(col); ok {
			total += v
			count++
		}
	}
	return total, count
}
