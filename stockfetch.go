// Package stockfetch documents the module layout.
//
// stockfetch is a Go client for NSE India's public web data surface:
// option chains, derivative and equity quotes, daily history, the trading
// calendar, and the index board, plus the analytics built on top of them
// (Black-Scholes pricing, technical indicators, beta).
//
//   - pkg/nse         typed HTTP client for the public endpoints
//   - pkg/chain       option chain construction and table layouts
//   - pkg/pricing     Black-Scholes premiums and greeks
//   - pkg/indicators  pure indicator math over daily bars
//   - pkg/calendar    trading day arithmetic over the holiday list
//   - pkg/analysis    symbol-level operations composing the above
//   - pkg/archive     CSV/JSON/Parquet persistence for fetched bars
//   - cmd/stockfetch  command line front end
package stockfetch
