package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/SohamNaik26/finance-integration/internal/config"
	"github.com/SohamNaik26/finance-integration/internal/models"
	"github.com/SohamNaik26/finance-integration/internal/table"
)

// QuoteParams identifies one cross-chain bridge quote request.
type QuoteParams struct {
	FromChain   string
	ToChain     string
	FromToken   string
	ToToken     string
	AmountIn    float64
	SlippageBps string
	Referrer    string
}

// withDefaults fills in the standard amount, slippage, and referrer.
func (p QuoteParams) withDefaults() QuoteParams {
	if p.AmountIn <= 0 {
		p.AmountIn = 1.0
	}
	if p.SlippageBps == "" {
		p.SlippageBps = config.MayanDefaultSlippage
	}
	if p.Referrer == "" {
		p.Referrer = config.MayanDefaultReferrer
	}
	return p
}

// identity returns the identifying columns shared by success and error rows.
func (p QuoteParams) identity() models.Record {
	return models.Record{
		"from_chain": p.FromChain,
		"to_chain":   p.ToChain,
		"from_token": p.FromToken,
		"to_token":   p.ToToken,
		"amount_in":  p.AmountIn,
	}
}

// MayanClient fetches cross-chain bridge quotes from the Mayan Finance API.
// Quote requests are single-shot: there is no pagination.
type MayanClient struct {
	client  *http.Client
	baseURL string
}

// NewMayanClient creates a client for the Mayan quote API. A nil http.Client
// falls back to the default fixed-timeout client.
func NewMayanClient(client *http.Client, baseURL string) *MayanClient {
	if client == nil {
		client = newHTTPClient()
	}
	if baseURL == "" {
		baseURL = config.MayanBaseURL
	}

	slog.Info("mayan client created", "baseURL", baseURL)

	return &MayanClient{
		client:  client,
		baseURL: baseURL,
	}
}

// buildURL assembles the quote request URL, including the fixed route feature
// flags the upstream API expects on every call.
func (c *MayanClient) buildURL(p QuoteParams) string {
	q := url.Values{}
	q.Set("wormhole", "true")
	q.Set("swift", "true")
	q.Set("mctp", "true")
	q.Set("shuttle", "false")
	q.Set("fastMctp", "true")
	q.Set("gasless", "true")
	q.Set("onlyDirect", "false")
	q.Set("fullList", "false")
	q.Set("monoChain", "true")
	q.Set("solanaProgram", config.MayanSolanaProgram)
	q.Set("forwarderAddress", config.MayanForwarderAddress)
	q.Set("amountIn", strconv.FormatFloat(p.AmountIn, 'f', -1, 64))
	q.Set("fromToken", p.FromToken)
	q.Set("fromChain", p.FromChain)
	q.Set("toToken", p.ToToken)
	q.Set("toChain", p.ToChain)
	q.Set("slippageBps", p.SlippageBps)
	q.Set("referrer", p.Referrer)
	q.Set("gasDrop", "0")
	q.Set("sdkVersion", config.MayanSDKVersion)
	return fmt.Sprintf("%s?%s", c.baseURL, q.Encode())
}

// flattenQuote merges the request parameters with the quote response into a
// single flat record. Missing fields default to 0 or ""; list-valued fields
// are serialized as JSON text alongside a count column; token metadata
// objects are unpacked per side.
func flattenQuote(data map[string]any, p QuoteParams) models.Record {
	rec := p.identity()
	rec["timestamp"] = time.Now().UTC()

	// Price and amount fields.
	rec["amount_out"] = fieldOr(data, "amountOut", 0.0)
	rec["effective_price"] = fieldOr(data, "effectivePrice", 0.0)
	rec["price"] = fieldOr(data, "price", 0.0)
	rec["price_impact"] = fieldOr(data, "priceImpact", 0.0)
	rec["minimum_amount_out"] = fieldOr(data, "minimumAmountOut", 0.0)
	rec["expected_amount_out"] = fieldOr(data, "expectedAmountOut", 0.0)

	// Fee fields.
	rec["gas_fee"] = fieldOr(data, "gasFee", 0.0)
	rec["bridge_fee"] = fieldOr(data, "bridgeFee", 0.0)
	rec["total_fee_in_usd"] = fieldOr(data, "totalFeeInUsd", 0.0)
	rec["mayan_fee"] = fieldOr(data, "mayanFee", 0.0)
	rec["relayer_fee"] = fieldOr(data, "relayerFee", 0.0)

	// Route information.
	rec["route_type"] = fieldOr(data, "routeType", "")
	rec["execution_time_seconds"] = fieldOr(data, "executionTimeSeconds", 0.0)
	rec["quote_type"] = fieldOr(data, "type", "")

	// Slippage and limits.
	rec["slippage_bps"] = fieldOr(data, "slippageBps", 0.0)
	rec["max_slippage_bps"] = fieldOr(data, "maxSlippageBps", 0.0)
	rec["suggested_slippage_bps"] = fieldOr(data, "suggestedSlippageBps", 0.0)

	// Gas and transaction details.
	rec["gas_price"] = fieldOr(data, "gasPrice", 0.0)
	rec["gas_drop_amount"] = fieldOr(data, "gasDropAmount", 0.0)

	// List-valued fields become opaque JSON blobs plus a parallel count.
	attachListField(rec, data, "routes", "routes_json", "routes_count")
	attachListField(rec, data, "routeSteps", "route_steps_json", "route_steps_count")
	attachListField(rec, data, "warnings", "warnings_json", "warnings_count")

	attachTokenMetadata(rec, data, "fromTokenMetadata", "from_token")
	attachTokenMetadata(rec, data, "toTokenMetadata", "to_token")

	return rec
}

// fieldOr returns the raw response value for key, or fallback when absent or
// null. Type coercion is left to the table formatter.
func fieldOr(data map[string]any, key string, fallback any) any {
	if v, ok := data[key]; ok && v != nil {
		return v
	}
	return fallback
}

// attachListField serializes a list-valued response field as a JSON blob and
// records its length. Absent or non-list values attach nothing.
func attachListField(rec models.Record, data map[string]any, key, jsonCol, countCol string) {
	list, ok := data[key].([]any)
	if !ok {
		return
	}
	blob, err := json.Marshal(list)
	if err != nil {
		slog.Warn("failed to serialize quote list field", "field", key, "error", err)
		return
	}
	rec[jsonCol] = string(blob)
	rec[countCol] = int64(len(list))
}

// attachTokenMetadata unpacks a nested token-metadata object into flat
// symbol/decimals/name/logo columns with the given prefix.
func attachTokenMetadata(rec models.Record, data map[string]any, key, prefix string) {
	meta, ok := data[key].(map[string]any)
	if !ok {
		return
	}
	rec[prefix+"_symbol"] = fieldOr(meta, "symbol", "")
	rec[prefix+"_decimals"] = fieldOr(meta, "decimals", 0.0)
	rec[prefix+"_name"] = fieldOr(meta, "name", "")
	rec[prefix+"_logo_uri"] = fieldOr(meta, "logoURI", "")
}

// FetchQuote fetches and flattens a single bridge quote.
func (c *MayanClient) FetchQuote(ctx context.Context, params QuoteParams) (models.Record, error) {
	params = params.withDefaults()

	body, err := fetchJSON(ctx, c.client, c.buildURL(params), nil)
	if err != nil {
		return nil, err
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		// A non-object quote body degrades to the identity columns only.
		slog.Warn("mayan quote response is not an object", "error", err)
		data = nil
	}

	return flattenQuote(data, params), nil
}

// FetchBatch fetches every quote in order. A failure on one quote becomes a
// single error record and never halts the remaining targets.
func (c *MayanClient) FetchBatch(ctx context.Context, targets []QuoteParams) []models.Record {
	all := make([]models.Record, 0, len(targets))

	for _, params := range targets {
		quote, err := c.FetchQuote(ctx, params)
		if err != nil {
			slog.Warn("mayan quote fetch failed",
				"fromChain", params.FromChain,
				"toChain", params.ToChain,
				"error", err,
			)
			all = append(all, errorRecord(params.withDefaults().identity(), err))
			continue
		}
		all = append(all, quote)
	}

	return all
}

// MayanTableSpec declares column typing and sort order for quote tables:
// most recent capture first.
var MayanTableSpec = table.Spec{
	NumericColumns: []string{
		"amount_in", "amount_out", "price", "effective_price", "price_impact",
		"minimum_amount_out", "expected_amount_out", "gas_fee", "bridge_fee",
		"total_fee_in_usd", "mayan_fee", "relayer_fee", "execution_time_seconds",
		"slippage_bps", "max_slippage_bps", "suggested_slippage_bps",
		"gas_price", "gas_drop_amount", "from_token_decimals", "to_token_decimals",
		"routes_count", "route_steps_count", "warnings_count",
	},
	TimeColumns: []string{"timestamp"},
	ColumnOrder: []string{
		"timestamp", "from_chain", "to_chain", "from_token", "to_token",
		"amount_in", "amount_out", "effective_price", "price", "price_impact",
		"minimum_amount_out", "expected_amount_out", "gas_fee", "bridge_fee",
		"total_fee_in_usd", "mayan_fee", "relayer_fee", "route_type",
		"execution_time_seconds", "quote_type", "slippage_bps",
		"max_slippage_bps", "suggested_slippage_bps", "gas_price",
		"gas_drop_amount", "routes_json", "routes_count", "route_steps_json",
		"route_steps_count", "warnings_json", "warnings_count",
		"from_token_symbol", "from_token_decimals", "from_token_name",
		"from_token_logo_uri", "to_token_symbol", "to_token_decimals",
		"to_token_name", "to_token_logo_uri", "error", "error_type",
	},
	Less: table.ByTimeDesc("timestamp"),
}
