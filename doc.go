// Package geflip implements the core logic of a Grand Exchange flipping
// dashboard for Old School RuneScape: market-tax accounting, an investment
// ledger with partial-sale lot splitting, realised/unrealised profit
// aggregation, price alerts, and the candidate filtering and scoring
// pipeline that feeds the AI flipping assistant.
//
// The package is deliberately free of I/O. Price snapshots come from the
// wiki subpackage, persistence is a JSONL ledger file, and the AI assistant
// lives in the advisor subpackage; all of them hand plain values to the
// pure functions here and apply the results.
package geflip
