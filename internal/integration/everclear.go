package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/SohamNaik26/finance-integration/internal/config"
	"github.com/SohamNaik26/finance-integration/internal/convert"
	"github.com/SohamNaik26/finance-integration/internal/models"
	"github.com/SohamNaik26/finance-integration/internal/table"
)

// Transaction classification by sign of the balance delta.
const (
	TxTypeIncoming = "INCOMING"
	TxTypeOutgoing = "OUTGOING"
	TxTypeNoChange = "NO_CHANGE"
)

// BalanceParams identifies one EVM address query. The caller-supplied value
// is never mutated; the paginator derives working cursors from a copy.
type BalanceParams struct {
	Address     string
	BlockNumber *int64 // optional starting cursor
	ItemsCount  int    // records per page, API max 50
}

// withDefaults fills in the default page size.
func (p BalanceParams) withDefaults() BalanceParams {
	if p.ItemsCount <= 0 {
		p.ItemsCount = config.EverclearItemsPerPage
	}
	return p
}

// nextPageParams is the server-supplied cursor for the next page.
type nextPageParams struct {
	BlockNumber *int64 `json:"block_number"`
	ItemsCount  int    `json:"items_count"`
}

// balanceHistoryResponse is the coin-balance-history page envelope. Items is
// kept raw so a missing or non-list value degrades to an empty page instead
// of failing the decode.
type balanceHistoryResponse struct {
	Items          json.RawMessage `json:"items"`
	NextPageParams *nextPageParams `json:"next_page_params"`
}

type balanceHistoryItem struct {
	BlockNumber     int64  `json:"block_number"`
	BlockTimestamp  string `json:"block_timestamp"`
	Delta           string `json:"delta"`
	TransactionHash string `json:"transaction_hash"`
	Value           string `json:"value"`
}

// EverclearClient fetches ETH balance history from the Everclear explorer
// (a Blockscout-style API) with cursor-following pagination.
type EverclearClient struct {
	client  *http.Client
	baseURL string
}

// NewEverclearClient creates a client for the Everclear balance-history API.
// A nil http.Client falls back to the default fixed-timeout client.
func NewEverclearClient(client *http.Client, baseURL string) *EverclearClient {
	if client == nil {
		client = newHTTPClient()
	}
	if baseURL == "" {
		baseURL = config.EverclearBaseURL
	}

	slog.Info("everclear client created", "baseURL", baseURL)

	return &EverclearClient{
		client:  client,
		baseURL: baseURL,
	}
}

// buildURL assembles the coin-balance-history request URL for one page.
func (c *EverclearClient) buildURL(p BalanceParams) string {
	q := url.Values{}
	q.Set("items_count", fmt.Sprintf("%d", p.ItemsCount))
	if p.BlockNumber != nil {
		q.Set("block_number", fmt.Sprintf("%d", *p.BlockNumber))
	}
	return fmt.Sprintf("%s/%s/coin-balance-history?%s", c.baseURL, p.Address, q.Encode())
}

// flattenBalanceHistory converts one page envelope into flat records and the
// next-page cursor (nil when the page is the last one). When a cursor is
// present its fields are also attached to the last emitted record, so the
// pagination hint survives into the exported table.
func flattenBalanceHistory(resp *balanceHistoryResponse, queryAddress string) ([]models.Record, *nextPageParams) {
	var items []balanceHistoryItem
	// A missing or non-list items value flattens to zero records.
	if len(resp.Items) > 0 {
		if err := json.Unmarshal(resp.Items, &items); err != nil {
			slog.Warn("everclear items field is not a list, skipping", "error", err)
			items = nil
		}
	}

	records := make([]models.Record, 0, len(items))
	for _, item := range items {
		balanceETH := convert.ToDisplayUnit(item.Value, config.WeiDecimals)
		deltaETH := convert.ToDisplayUnit(item.Delta, config.WeiDecimals)

		rec := models.Record{
			"timestamp":        time.Now().UTC(),
			"query_address":    queryAddress,
			"block_number":     item.BlockNumber,
			"block_timestamp":  item.BlockTimestamp,
			"transaction_hash": item.TransactionHash,

			// Display-unit values, with the raw wei strings retained for audit.
			"balance_eth": balanceETH,
			"delta_eth":   deltaETH,
			"balance_wei": item.Value,
			"delta_wei":   item.Delta,

			"delta_eth_abs": math.Abs(deltaETH),
		}

		if t, ok := convert.ParseISOTimestamp(item.BlockTimestamp); ok {
			rec["block_datetime"] = t
		} else {
			rec["block_datetime"] = nil
		}

		switch {
		case deltaETH > 0:
			rec["transaction_type"] = TxTypeIncoming
		case deltaETH < 0:
			rec["transaction_type"] = TxTypeOutgoing
		default:
			rec["transaction_type"] = TxTypeNoChange
		}

		records = append(records, rec)
	}

	next := resp.NextPageParams
	if next != nil && len(records) > 0 {
		last := records[len(records)-1]
		if next.BlockNumber != nil {
			last["next_block_number"] = *next.BlockNumber
		} else {
			last["next_block_number"] = nil
		}
		last["next_items_count"] = int64(next.ItemsCount)
	}

	return records, next
}

// FetchBalanceHistory walks the cursor-based pagination for one address,
// flattening every page, until the server stops supplying a next-page cursor
// or maxPages pages have been fetched, whichever comes first.
func (c *EverclearClient) FetchBalanceHistory(ctx context.Context, params BalanceParams, maxPages int) ([]models.Record, error) {
	params = params.withDefaults()
	current := params // working cursor; the caller's params stay untouched

	var all []models.Record
	for page := 0; page < maxPages; page++ {
		body, err := fetchJSON(ctx, c.client, c.buildURL(current), nil)
		if err != nil {
			return nil, err
		}

		var resp balanceHistoryResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrDecodeFailed, err)
		}

		records, next := flattenBalanceHistory(&resp, params.Address)
		all = append(all, records...)

		slog.Debug("everclear page fetched",
			"address", params.Address,
			"page", page+1,
			"records", len(records),
			"hasNext", next != nil,
		)

		if next == nil {
			break
		}

		current.BlockNumber = next.BlockNumber
		if next.ItemsCount > 0 {
			current.ItemsCount = next.ItemsCount
		} else {
			current.ItemsCount = params.ItemsCount
		}
	}

	return all, nil
}

// FetchBatch fetches balance history for every target in order. A failure on
// one address becomes a single error record and never halts the remaining
// targets.
func (c *EverclearClient) FetchBatch(ctx context.Context, targets []BalanceParams, maxPages int) []models.Record {
	all := make([]models.Record, 0)

	for _, params := range targets {
		records, err := c.FetchBalanceHistory(ctx, params, maxPages)
		if err != nil {
			slog.Warn("everclear balance history fetch failed",
				"address", params.Address,
				"error", err,
			)
			all = append(all, errorRecord(models.Record{"query_address": params.Address}, err))
			continue
		}
		all = append(all, records...)
	}

	return all
}

// EverclearTableSpec declares column typing and sort order for Everclear
// result tables: most recent block first.
var EverclearTableSpec = table.Spec{
	NumericColumns: []string{
		"block_number", "balance_eth", "delta_eth", "delta_eth_abs",
		"next_block_number", "next_items_count",
	},
	TimeColumns: []string{"timestamp", "block_datetime"},
	ColumnOrder: []string{
		"timestamp", "query_address", "block_number", "block_timestamp",
		"transaction_hash", "balance_eth", "delta_eth", "balance_wei",
		"delta_wei", "block_datetime", "transaction_type", "delta_eth_abs",
		"next_block_number", "next_items_count", "error", "error_type",
	},
	Less: table.ByFloatDesc("block_number"),
}
