// Package budget records personal income and expenses, keeps them on local
// storage and computes summaries from them. It is designed to be local-first:
// the whole ledger is a single human-readable JSON file the user owns.
//
// The core functionalities include:
//   - Ledger Management: adding and removing income and expense entries,
//     validated on input, kept in insertion order (see Ledger).
//   - Data Persistence: every mutation rewrites the ledger file atomically;
//     a missing or malformed file yields an empty ledger (see Open).
//   - Reports: stateless summaries computed from the ledger content, such as
//     totals, balance, savings rate and the expenses per category (see
//     NewSummaryReport and NewCategoryBreakdown).
//
// This package serves as the foundational logic for the `bgt` command-line
// tool.
package budget
