package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"stockfetch/internal/config"
	"stockfetch/pkg/analysis"
	"stockfetch/pkg/archive"
	"stockfetch/pkg/chain"
	"stockfetch/pkg/indicators"
	"stockfetch/pkg/nse"
	"stockfetch/pkg/pricing"
)

const apiTimeout = 60 * time.Second

func main() {
	log.SetFlags(log.Ldate | log.Ltime)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfgPath := "etc/stockfetch.yaml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Printf("[main] config %s not loaded (%v), using defaults", cfgPath, err)
		cfg, err = config.LoadConfigFromReader(strings.NewReader("{}"))
		if err != nil {
			log.Fatalf("[main] default config: %v", err)
		}
	}
	setLogLevel(cfg.LogLevel)

	client := cfg.BuildClient()
	svc := analysis.New(client)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, apiTimeout)
	defer cancel()

	cmd, args := os.Args[1], os.Args[2:]
	if err := run(ctx, cmd, args, cfg, client, svc); err != nil {
		log.Fatalf("[main] %s: %v", cmd, err)
	}
}

func run(ctx context.Context, cmd string, args []string, cfg *config.Config, client *nse.Client, svc *analysis.Service) error {
	switch cmd {
	case "chain":
		return runChain(ctx, args, svc)
	case "pcr":
		return runPCR(ctx, args, svc)
	case "ltp":
		return runLTP(ctx, args, svc)
	case "price":
		return runPrice(ctx, args, cfg, svc)
	case "indicator":
		return runIndicator(ctx, args, svc)
	case "beta":
		return runBeta(ctx, args, svc)
	case "history":
		return runHistory(ctx, args, cfg, client)
	case "vix":
		vix, err := client.GetIndiaVIX(ctx)
		if err != nil {
			return err
		}
		fmt.Println(vix)
		return nil
	case "status":
		fs := flag.NewFlagSet("status", flag.ExitOnError)
		segment := fs.String("segment", "Capital Market", "market segment")
		fs.Parse(args)
		open, err := svc.IsMarketOpenToday(ctx, *segment)
		if err != nil {
			return err
		}
		fmt.Printf("%s open today: %v\n", *segment, open)
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runChain(ctx context.Context, args []string, svc *analysis.Service) error {
	fs := flag.NewFlagSet("chain", flag.ExitOnError)
	symbol := fs.String("symbol", "NIFTY", "underlying symbol")
	expiry := fs.String("expiry", "latest", `"latest", "next" or dd-MMM-yyyy`)
	mode := fs.String("mode", "full", "full or compact")
	fs.Parse(args)

	built, err := svc.BuildOptionChain(ctx, *symbol, selectorFor(*expiry), chain.Mode(*mode))
	if err != nil {
		return err
	}
	log.Printf("[chain] %s expiry=%s underlying=%.2f ts=%s", built.Symbol, built.Expiry, built.UnderlyingValue, built.Timestamp)
	return writeTable(os.Stdout, built.Table())
}

func runPCR(ctx context.Context, args []string, svc *analysis.Service) error {
	fs := flag.NewFlagSet("pcr", flag.ExitOnError)
	symbol := fs.String("symbol", "NIFTY", "underlying symbol")
	idx := fs.Int("expiry-index", 0, "0 for nearest expiry")
	fs.Parse(args)

	pcr, err := svc.PutCallRatio(ctx, *symbol, *idx)
	if err != nil {
		return err
	}
	fmt.Println(pcr)
	return nil
}

func runLTP(ctx context.Context, args []string, svc *analysis.Service) error {
	fs := flag.NewFlagSet("ltp", flag.ExitOnError)
	symbol := fs.String("symbol", "NIFTY", "underlying symbol")
	expiry := fs.String("expiry", "latest", `"latest", "next" or dd-MMM-yyyy`)
	optType := fs.String("type", "-", "CE, PE, FUT or - for the underlying")
	strike := fs.Float64("strike", 0, "strike price for CE/PE")
	fs.Parse(args)

	ltp, err := svc.QuoteLTP(ctx, *symbol, *expiry, *optType, *strike)
	if err != nil {
		return err
	}
	fmt.Println(ltp)
	return nil
}

// pricingInput combines the price-command flags with the configured
// defaults. The trading day count is stored as an int in the config and
// widened here.
func pricingInput(cfg *config.Config, spot, strike, days, vol, q float64) pricing.Input {
	return pricing.Input{
		Spot:               spot,
		Strike:             strike,
		TimeToExpiryDays:   days,
		VolatilityPct:      vol,
		Rate:               cfg.Pricing.RiskFreeRate,
		DividendYieldPct:   q,
		TradingDaysPerYear: float64(cfg.Pricing.TradingDaysPerYear),
	}
}

func runPrice(ctx context.Context, args []string, cfg *config.Config, svc *analysis.Service) error {
	fs := flag.NewFlagSet("price", flag.ExitOnError)
	spot := fs.Float64("spot", 0, "underlying price")
	strike := fs.Float64("strike", 0, "strike price")
	days := fs.Float64("days", 0, "days to expiry")
	vol := fs.Float64("vol", 0, "volatility percent, 0 uses India VIX")
	q := fs.Float64("q", 0, "dividend yield percent")
	fs.Parse(args)

	res, err := svc.BlackScholes(ctx, pricingInput(cfg, *spot, *strike, *days, *vol, *q))
	if err != nil {
		return err
	}
	fmt.Printf("call premium: %.4f  put premium: %.4f\n", res.CallPremium, res.PutPremium)
	fmt.Printf("call delta:   %.4f  put delta:   %.4f\n", res.CallDelta, res.PutDelta)
	fmt.Printf("call theta:   %.4f  put theta:   %.4f\n", res.CallTheta, res.PutTheta)
	fmt.Printf("call rho:     %.4f  put rho:     %.4f\n", res.CallRho, res.PutRho)
	fmt.Printf("gamma: %.6f  vega: %.4f\n", res.Gamma, res.Vega)
	return nil
}

func runIndicator(ctx context.Context, args []string, svc *analysis.Service) error {
	fs := flag.NewFlagSet("indicator", flag.ExitOnError)
	symbol := fs.String("symbol", "", "equity symbol")
	name := fs.String("name", "sma", "sma|ema|dema|tema|rsi|macd|stoch|bands|adx|cci|ichimoku|fib|pivot")
	days := fs.Int("days", 0, "lookback in trading days, 0 for the default")
	wilder := fs.Bool("wilder", false, "use Wilder smoothing for rsi/adx")
	fs.Parse(args)
	if *symbol == "" {
		return fmt.Errorf("-symbol is required")
	}

	window := func(def int) int {
		if *days > 0 {
			return *days
		}
		return def
	}

	switch *name {
	case "sma":
		v, err := svc.SimpleMovingAverage(ctx, *symbol, window(analysis.DefaultMAWindow))
		return printVal(v, err)
	case "ema":
		v, err := svc.ExponentialMovingAverage(ctx, *symbol, window(analysis.DefaultMAWindow))
		return printVal(v, err)
	case "dema":
		v, err := svc.DoubleExponentialMovingAverage(ctx, *symbol, window(analysis.DefaultMAWindow))
		return printVal(v, err)
	case "tema":
		v, err := svc.TripleExponentialMovingAverage(ctx, *symbol, window(analysis.DefaultMAWindow))
		return printVal(v, err)
	case "rsi":
		v, err := svc.RelativeStrengthIndex(ctx, *symbol, window(analysis.DefaultRSIWindow), *wilder)
		return printVal(v, err)
	case "macd":
		macd, signal, err := svc.MACDWithSignal(ctx, *symbol)
		if err != nil {
			return err
		}
		fmt.Printf("macd: %v signal: %v\n", macd, signal)
		return nil
	case "stoch":
		v, err := svc.StochasticOscillator(ctx, *symbol)
		return printVal(v, err)
	case "bands":
		bands, err := svc.BollingerBands(ctx, *symbol)
		if err != nil {
			return err
		}
		fmt.Printf("upper: %v middle: %v lower: %v\n", bands.Upper, bands.Middle, bands.Lower)
		return nil
	case "adx":
		method := indicators.ADXLegacy
		if *wilder {
			method = indicators.ADXWilder
		}
		v, err := svc.AverageDirectionalIndex(ctx, *symbol, window(analysis.DefaultADXWindow), method)
		return printVal(v, err)
	case "cci":
		series, err := svc.CommodityChannelIndex(ctx, *symbol, window(analysis.DefaultCCIWindow))
		if err != nil {
			return err
		}
		fmt.Println(series)
		return nil
	case "ichimoku":
		cloud, err := svc.IchimokuCloud(ctx, *symbol)
		if err != nil {
			return err
		}
		fmt.Printf("tenkan: %v kijun: %v senkouA: %v senkouB: %v chikou: %v\n",
			cloud.TenkanSen, cloud.KijunSen, cloud.SenkouSpanA, cloud.SenkouSpanB, cloud.ChikouSpan)
		return nil
	case "fib":
		levels, err := svc.FibonacciRetracement(ctx, *symbol)
		if err != nil {
			return err
		}
		fmt.Println(levels)
		return nil
	case "pivot":
		support, resistance, err := svc.SupportResistance(ctx, *symbol, window(analysis.DefaultMAWindow))
		if err != nil {
			return err
		}
		fmt.Printf("support: %v resistance: %v\n", support, resistance)
		return nil
	default:
		return fmt.Errorf("unknown indicator %q", *name)
	}
}

func runBeta(ctx context.Context, args []string, svc *analysis.Service) error {
	fs := flag.NewFlagSet("beta", flag.ExitOnError)
	symbol := fs.String("symbol", "", "equity or index symbol")
	days := fs.Int("days", analysis.DefaultBetaDays, "calendar days of history")
	benchmark := fs.String("benchmark", analysis.DefaultBetaBenchmark, "benchmark index")
	fs.Parse(args)
	if *symbol == "" {
		return fmt.Errorf("-symbol is required")
	}
	v, err := svc.Beta(ctx, *symbol, *days, *benchmark)
	return printVal(v, err)
}

func runHistory(ctx context.Context, args []string, cfg *config.Config, client *nse.Client) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	symbol := fs.String("symbol", "", "equity symbol")
	from := fs.String("from", "", "start date dd-mm-yyyy")
	to := fs.String("to", "", "end date dd-mm-yyyy")
	format := fs.String("format", "", "csv, json or parquet; empty uses the config")
	fs.Parse(args)
	if *symbol == "" || *from == "" || *to == "" {
		return fmt.Errorf("-symbol, -from and -to are required")
	}

	raw, err := client.GetEquityHistory(ctx, *symbol, *from, *to)
	if err != nil {
		return err
	}
	bars := make([]indicators.Bar, 0, len(raw))
	for _, r := range raw {
		t, err := r.Time()
		if err != nil {
			return err
		}
		bars = append(bars, indicators.Bar{Date: t, Open: r.Open, High: r.High, Low: r.Low, Close: r.Close, Volume: r.Volume})
	}

	saverFormat := cfg.Archive.Format
	if *format != "" {
		saverFormat = *format
	}
	saver := archive.NewSaver(saverFormat)
	if saver == nil {
		return fmt.Errorf("unsupported format %q", saverFormat)
	}
	if err := os.MkdirAll(cfg.Archive.Dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(cfg.Archive.Dir, fmt.Sprintf("%s_%s_%s.%s",
		strings.ToUpper(*symbol), *from, *to, saver.Extension()))
	if err := saver.Save(archive.FromBars(strings.ToUpper(*symbol), bars), path); err != nil {
		return err
	}
	log.Printf("[history] wrote %d bars to %s", len(bars), path)
	return nil
}

func selectorFor(expiry string) chain.ExpirySelector {
	switch expiry {
	case "latest":
		return chain.Latest()
	case "next":
		return chain.Next()
	default:
		return chain.OnDate(expiry)
	}
}

func writeTable(w *os.File, table *chain.Table) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write(table.Columns); err != nil {
		return err
	}
	row := make([]string, len(table.Columns))
	for _, rec := range table.Records {
		for i, col := range table.Columns {
			row[i] = strconv.FormatFloat(rec[col], 'f', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func printVal(v float64, err error) error {
	if err != nil {
		return err
	}
	fmt.Println(v)
	return nil
}

func setLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		logx.SetLevel(logx.DebugLevel)
	case "error":
		logx.SetLevel(logx.ErrorLevel)
	default:
		logx.SetLevel(logx.InfoLevel)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: stockfetch <command> [flags]

commands:
  chain      build an option chain table for one expiry
  pcr        put/call open interest ratio
  ltp        last traded price of a contract
  price      Black-Scholes premiums and greeks
  indicator  technical indicators over daily history
  beta       beta versus a benchmark index
  history    fetch daily bars and write them to disk
  vix        current India VIX level
  status     whether a market segment trades today`)
}
