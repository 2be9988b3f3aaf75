package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/SohamNaik26/finance-integration/internal/config"
	"github.com/SohamNaik26/finance-integration/internal/convert"
	"github.com/SohamNaik26/finance-integration/internal/models"
	"github.com/SohamNaik26/finance-integration/internal/table"
)

// resourceTypeNames maps Tronscan resource codes to readable names.
var resourceTypeNames = map[int]string{
	0: "BANDWIDTH",
	1: "ENERGY",
	2: "TRON_POWER",
}

// ResourceTypeName returns the readable name for a resource code, or
// UNKNOWN_<code> for codes outside the fixed set.
func ResourceTypeName(code int) string {
	if name, ok := resourceTypeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN_%d", code)
}

// tronResourceResponse is the resourcev2 page envelope. Data is kept raw so a
// missing or non-list value degrades to an empty page.
type tronResourceResponse struct {
	Total        int64                       `json:"total"`
	Data         json.RawMessage             `json:"data"`
	ContractInfo map[string]tronContractInfo `json:"contractInfo"`
}

type tronResourceItem struct {
	ReceiverAddress    string      `json:"receiverAddress"`
	OwnerAddress       string      `json:"ownerAddress"`
	Balance            json.Number `json:"balance"`
	LockBalance        json.Number `json:"lockBalance"`
	ResourceValue      float64     `json:"resourceValue"`
	LockResourceValue  float64     `json:"lockResourceValue"`
	Resource           int         `json:"resource"`
	ExpireTime         int64       `json:"expireTime"`
	OperationTime      int64       `json:"operationTime"`
	ReceiverAddressTag string      `json:"receiverAddressTag"`
}

// tronContractInfo is the response-level contract metadata, keyed by address.
type tronContractInfo struct {
	IsToken bool   `json:"isToken"`
	Name    string `json:"name"`
	Vip     bool   `json:"vip"`
	Risk    bool   `json:"risk"`
}

// TronscanClient fetches resource and balance delegation data from the
// Tronscan API with offset-counting pagination.
type TronscanClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewTronscanClient creates a client for the Tronscan resourcev2 API.
// A nil http.Client falls back to the default fixed-timeout client.
func NewTronscanClient(client *http.Client, baseURL, apiKey string) *TronscanClient {
	if client == nil {
		client = newHTTPClient()
	}
	if baseURL == "" {
		baseURL = config.TronscanBaseURL
	}

	slog.Info("tronscan client created",
		"baseURL", baseURL,
		"hasAPIKey", apiKey != "",
	)

	return &TronscanClient{
		client:  client,
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// buildURL assembles the resourcev2 request URL for one page.
func (c *TronscanClient) buildURL(address string, limit, start int) string {
	q := url.Values{}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("start", fmt.Sprintf("%d", start))
	q.Set("address", address)
	q.Set("type", "1")
	q.Set("resourceType", "0")
	return fmt.Sprintf("%s?%s", c.baseURL, q.Encode())
}

// headers returns the static credential header attached to every request.
func (c *TronscanClient) headers() http.Header {
	h := http.Header{}
	h.Set(config.TronscanAPIKeyHeader, c.apiKey)
	h.Set("Content-Type", "application/json")
	return h
}

// flattenResources converts one page envelope into flat records. When the
// data array is empty but the envelope itself is not, exactly one placeholder
// record is synthesized so a queried address that returns no rows still
// yields a row identifying it.
func flattenResources(resp *tronResourceResponse, envelopeNonEmpty bool, queryAddress string) []models.Record {
	var items []tronResourceItem
	if len(resp.Data) > 0 {
		if err := json.Unmarshal(resp.Data, &items); err != nil {
			slog.Warn("tronscan data field is not a list, skipping", "error", err)
			items = nil
		}
	}

	records := make([]models.Record, 0, len(items))
	for _, item := range items {
		rec := models.Record{
			"timestamp":        time.Now().UTC(),
			"query_address":    queryAddress,
			"receiver_address": item.ReceiverAddress,
			"owner_address":    item.OwnerAddress,

			// sun → TRX for balances; resource values carry no unit scale.
			"balance_trx":         convert.ToDisplayUnit(item.Balance.String(), config.SunDecimals),
			"lock_balance_trx":    convert.ToDisplayUnit(item.LockBalance.String(), config.SunDecimals),
			"resource_value":      item.ResourceValue,
			"lock_resource_value": item.LockResourceValue,

			"resource_type":        int64(item.Resource),
			"resource_type_name":   ResourceTypeName(item.Resource),
			"receiver_address_tag": item.ReceiverAddressTag,
		}

		if t, ok := convert.ParseEpochMillis(item.ExpireTime); ok {
			rec["expire_time"] = t
		} else {
			rec["expire_time"] = nil
		}
		if t, ok := convert.ParseEpochMillis(item.OperationTime); ok {
			rec["operation_time"] = t
		} else {
			rec["operation_time"] = nil
		}

		// Contract metadata flags, looked up by receiver address.
		info, ok := resp.ContractInfo[item.ReceiverAddress]
		if !ok {
			info = tronContractInfo{}
		}
		rec["is_token"] = info.IsToken
		rec["contract_name"] = info.Name
		rec["is_vip"] = info.Vip
		rec["risk"] = info.Risk

		records = append(records, rec)
	}

	if len(records) == 0 && envelopeNonEmpty {
		records = append(records, models.Record{
			"timestamp":            time.Now().UTC(),
			"query_address":        queryAddress,
			"receiver_address":     queryAddress,
			"owner_address":        "",
			"balance_trx":          0.0,
			"lock_balance_trx":     0.0,
			"resource_value":       0.0,
			"lock_resource_value":  0.0,
			"resource_type":        int64(0),
			"resource_type_name":   ResourceTypeName(0),
			"expire_time":          nil,
			"operation_time":       nil,
			"receiver_address_tag": "",
			"is_token":             false,
			"contract_name":        "",
			"is_vip":               false,
			"risk":                 false,
		})
	}

	return records
}

// FetchResources walks the offset-based pagination for one address until the
// server-reported total is exhausted or a page yields no records. There is no
// page ceiling on this path: a server that misreports total keeps the loop
// alive, matching the upstream API contract as documented.
func (c *TronscanClient) FetchResources(ctx context.Context, address string) ([]models.Record, error) {
	var all []models.Record
	start := 0
	limit := config.TronscanPageLimit

	for {
		body, err := fetchJSON(ctx, c.client, c.buildURL(address, limit, start), c.headers())
		if err != nil {
			return nil, err
		}

		// The placeholder-record rule distinguishes an empty JSON object from
		// a populated envelope with no data rows.
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrDecodeFailed, err)
		}

		var resp tronResourceResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrDecodeFailed, err)
		}

		records := flattenResources(&resp, len(envelope) > 0, address)
		all = append(all, records...)

		slog.Debug("tronscan page fetched",
			"address", address,
			"start", start,
			"records", len(records),
			"total", resp.Total,
		)

		if int64(start+limit) >= resp.Total || len(records) == 0 {
			break
		}
		start += limit
	}

	return all, nil
}

// FetchBatch fetches resources for every address in order. A failure on one
// address becomes a single error record and never halts the remaining
// targets.
func (c *TronscanClient) FetchBatch(ctx context.Context, addresses []string) []models.Record {
	all := make([]models.Record, 0)

	for _, address := range addresses {
		records, err := c.FetchResources(ctx, address)
		if err != nil {
			slog.Warn("tronscan resource fetch failed",
				"address", address,
				"error", err,
			)
			all = append(all, errorRecord(models.Record{"query_address": address}, err))
			continue
		}
		all = append(all, records...)
	}

	return all
}

// TronscanTableSpec declares column typing and sort order for Tronscan result
// tables: most recent capture first, then query address.
var TronscanTableSpec = table.Spec{
	NumericColumns: []string{
		"balance_trx", "lock_balance_trx", "resource_value",
		"lock_resource_value", "resource_type",
	},
	TimeColumns: []string{"timestamp", "expire_time", "operation_time"},
	ColumnOrder: []string{
		"timestamp", "query_address", "receiver_address", "owner_address",
		"balance_trx", "lock_balance_trx", "resource_value",
		"lock_resource_value", "resource_type", "resource_type_name",
		"expire_time", "operation_time", "receiver_address_tag", "is_token",
		"contract_name", "is_vip", "risk", "error", "error_type",
	},
	Less: func(a, b models.Record) bool {
		at, aok := a.Time("timestamp")
		bt, bok := b.Time("timestamp")
		if aok != bok {
			return aok
		}
		if !at.Equal(bt) {
			return at.After(bt)
		}
		return a.String("query_address") < b.String("query_address")
	},
}
