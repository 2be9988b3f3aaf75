package config

import "time"

// Everclear (Blockscout-style EVM explorer)
const (
	EverclearBaseURL      = "https://scan.everclear.org/api/v2/addresses"
	EverclearItemsPerPage = 50 // API maximum
)

// Tronscan
const (
	TronscanBaseURL      = "https://apilist.tronscanapi.com/api/account/resourcev2"
	TronscanPageLimit    = 100
	TronscanAPIKeyHeader = "TRON-PRO-API-KEY"
)

// Mayan Finance (bridge quotes)
const (
	MayanBaseURL          = "https://price-api.mayan.finance/v3/quote"
	MayanSolanaProgram    = "FC4eXxkyrMPTjiYUpp4EAnkmwMbQyZ6NDCh1kfLn6vsf"
	MayanForwarderAddress = "0x337685fdaB40D39bd02028545a4FfA7D287cC3E2"
	MayanSDKVersion       = "11_0_0"
	MayanDefaultReferrer  = "7HN4qCvG2dP5oagZRxj2dTGPhksgRnKCaLPjtjKEr1Ho"
	MayanDefaultSlippage  = "auto"
)

// Unit scales (smallest unit → display unit, power-of-ten exponents)
const (
	WeiDecimals = 18 // wei → ETH
	SunDecimals = 6  // sun → TRX
)

// HTTP
const (
	APITimeout         = 30 * time.Second
	ServerReadTimeout  = 30 * time.Second
	ServerWriteTimeout = 60 * time.Second
	ServerIdleTimeout  = 120 * time.Second
	ShutdownTimeout    = 15 * time.Second
)

// Export
const (
	ExportDir             = "./data/export"
	EverclearExportPrefix = "everclear_balance_history"
	TronscanExportPrefix  = "tronscan_balance_data"
	MayanExportPrefix     = "mayan_bridge_quotes"
)

// Logging
const (
	LogFilePattern = "finint-%s.log" // %s = YYYY-MM-DD
	LogMaxAgeDays  = 30
)
