package nse

// OptionLegQuote is one side (call or put) of an option chain record. Field
// tags mirror the upstream JSON, including the lowercase "bidprice" quirk.
type OptionLegQuote struct {
	StrikePrice          float64 `json:"strikePrice"`
	ExpiryDate           string  `json:"expiryDate"`
	Underlying           string  `json:"underlying"`
	Identifier           string  `json:"identifier"`
	OpenInterest         float64 `json:"openInterest"`
	ChangeInOpenInterest float64 `json:"changeinOpenInterest"`
	PChangeInOI          float64 `json:"pchangeinOpenInterest"`
	TotalTradedVolume    float64 `json:"totalTradedVolume"`
	ImpliedVolatility    float64 `json:"impliedVolatility"`
	LastPrice            float64 `json:"lastPrice"`
	Change               float64 `json:"change"`
	PChange              float64 `json:"pChange"`
	TotalBuyQuantity     float64 `json:"totalBuyQuantity"`
	TotalSellQuantity    float64 `json:"totalSellQuantity"`
	BidQty               float64 `json:"bidQty"`
	BidPrice             float64 `json:"bidprice"`
	AskQty               float64 `json:"askQty"`
	AskPrice             float64 `json:"askPrice"`
	UnderlyingValue      float64 `json:"underlyingValue"`
}

// OptionChainRecord couples the call and put quotes at one strike/expiry.
// A missing side is nil, not zero-valued.
type OptionChainRecord struct {
	StrikePrice float64         `json:"strikePrice"`
	ExpiryDate  string          `json:"expiryDate"`
	CE          *OptionLegQuote `json:"CE,omitempty"`
	PE          *OptionLegQuote `json:"PE,omitempty"`
}

// OptionChainRecords is the "records" envelope of the option chain payload.
type OptionChainRecords struct {
	ExpiryDates     []string            `json:"expiryDates"`
	Data            []OptionChainRecord `json:"data"`
	Strikes         []float64           `json:"strikePrices"`
	Timestamp       string              `json:"timestamp"`
	UnderlyingValue float64             `json:"underlyingValue"`
}

// OptionChainPayload is the raw option chain response for one underlying.
type OptionChainPayload struct {
	Records  OptionChainRecords `json:"records"`
	Filtered OptionChainRecords `json:"filtered"`
}

// Holiday is one market holiday entry for a segment.
type Holiday struct {
	TradingDate string `json:"tradingDate"`
	WeekDay     string `json:"weekDay"`
	Description string `json:"description"`
}

// HolidayCalendar maps segment codes (CM, FO, ...) to their holiday lists.
type HolidayCalendar map[string][]Holiday

// MarketState is one segment entry of the market status payload.
type MarketState struct {
	Market       string `json:"market"`
	MarketStatus string `json:"marketStatus"`
	TradeDate    string `json:"tradeDate"`
	Index        string `json:"index"`
}

// MarketStatusPayload is the live market status response.
type MarketStatusPayload struct {
	MarketState []MarketState `json:"marketState"`
}

// IndexQuote is one row of the all-indices payload.
type IndexQuote struct {
	Key           string  `json:"key"`
	Index         string  `json:"index"`
	IndexSymbol   string  `json:"indexSymbol"`
	Last          float64 `json:"last"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	PreviousClose float64 `json:"previousClose"`
	Variation     float64 `json:"variation"`
	PercentChange float64 `json:"percentChange"`
	YearHigh      float64 `json:"yearHigh"`
	YearLow       float64 `json:"yearLow"`
}

// AllIndicesPayload is the full index board.
type AllIndicesPayload struct {
	Data      []IndexQuote `json:"data"`
	Timestamp string       `json:"timestamp"`
}

// EquityIndexEntry is one constituent row of an equity index payload, also
// used by the F&O securities board.
type EquityIndexEntry struct {
	Symbol            string  `json:"symbol"`
	Identifier        string  `json:"identifier"`
	Open              float64 `json:"open"`
	DayHigh           float64 `json:"dayHigh"`
	DayLow            float64 `json:"dayLow"`
	LastPrice         float64 `json:"lastPrice"`
	PreviousClose     float64 `json:"previousClose"`
	Change            float64 `json:"change"`
	PChange           float64 `json:"pChange"`
	TotalTradedVolume float64 `json:"totalTradedVolume"`
	TotalTradedValue  float64 `json:"totalTradedValue"`
	YearHigh          float64 `json:"yearHigh"`
	YearLow           float64 `json:"yearLow"`
}

// EquityIndexPayload is the response for one equity index board such as
// "SECURITIES IN F&O".
type EquityIndexPayload struct {
	Name      string             `json:"name"`
	Data      []EquityIndexEntry `json:"data"`
	Timestamp string             `json:"timestamp"`
}

// DerivativeStockMeta is the metadata block of one derivative contract row.
type DerivativeStockMeta struct {
	InstrumentType          string  `json:"instrumentType"`
	ExpiryDate              string  `json:"expiryDate"`
	OptionType              string  `json:"optionType"`
	StrikePrice             float64 `json:"strikePrice"`
	Identifier              string  `json:"identifier"`
	OpenPrice               float64 `json:"openPrice"`
	HighPrice               float64 `json:"highPrice"`
	LowPrice                float64 `json:"lowPrice"`
	ClosePrice              float64 `json:"closePrice"`
	LastPrice               float64 `json:"lastPrice"`
	PrevClose               float64 `json:"prevClose"`
	Change                  float64 `json:"change"`
	PChange                 float64 `json:"pChange"`
	NumberOfContractsTraded float64 `json:"numberOfContractsTraded"`
	TotalTurnover           float64 `json:"totalTurnover"`
}

// DerivativeStock is one contract row of a derivative quote.
type DerivativeStock struct {
	Metadata DerivativeStockMeta `json:"metadata"`
}

// DerivativeQuote is the quote-derivative payload for one underlying.
type DerivativeQuote struct {
	Info struct {
		Symbol      string `json:"symbol"`
		CompanyName string `json:"companyName"`
		Identifier  string `json:"identifier"`
	} `json:"info"`
	UnderlyingValue         float64             `json:"underlyingValue"`
	VFQ                     float64             `json:"vfq"`
	Fut5DayVolume           float64             `json:"fut_timeVol"`
	Opt5DayVolume           float64             `json:"opt_timeVol"`
	ExpiryDates             []string            `json:"expiryDates"`
	ExpiryDatesByInstrument map[string][]string `json:"expiryDatesByInstrument"`
	Strikes                 []float64           `json:"strikePrices"`
	Stocks                  []DerivativeStock   `json:"stocks"`
}

// EquityQuote is the quote-equity payload for one symbol.
type EquityQuote struct {
	Info struct {
		Symbol       string   `json:"symbol"`
		CompanyName  string   `json:"companyName"`
		Industry     string   `json:"industry"`
		IsFNOSec     bool     `json:"isFNOSec"`
		ActiveSeries []string `json:"activeSeries"`
	} `json:"info"`
	Metadata struct {
		Series         string  `json:"series"`
		LastUpdateTime string  `json:"lastUpdateTime"`
		PdSectorPe     float64 `json:"pdSectorPe"`
		PdSymbolPe     float64 `json:"pdSymbolPe"`
	} `json:"metadata"`
	PriceInfo struct {
		LastPrice       float64 `json:"lastPrice"`
		Change          float64 `json:"change"`
		PChange         float64 `json:"pChange"`
		PreviousClose   float64 `json:"previousClose"`
		Open            float64 `json:"open"`
		Close           float64 `json:"close"`
		VWAP            float64 `json:"vwap"`
		IntraDayHighLow struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"intraDayHighLow"`
		WeekHighLow struct {
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"weekHighLow"`
	} `json:"priceInfo"`
}

// FIIDIIRecord is one row of the daily FII/DII trade report.
type FIIDIIRecord struct {
	Category  string `json:"category"`
	Date      string `json:"date"`
	BuyValue  string `json:"buyValue"`
	SellValue string `json:"sellValue"`
	NetValue  string `json:"netValue"`
}

// BlockDeal is one row of the large-deals snapshot.
type BlockDeal struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Quantity float64 `json:"qty"`
	Price    float64 `json:"tp"`
}

// BlockDealsPayload is the large-deals snapshot response.
type BlockDealsPayload struct {
	AsOnDate       string      `json:"as_on_date"`
	BlockDealsData []BlockDeal `json:"BLOCK_DEALS_DATA"`
	BulkDealsData  []BlockDeal `json:"BULK_DEALS_DATA"`
}
