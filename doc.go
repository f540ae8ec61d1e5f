// Package moneywise is the in-memory record model of a personal finance
// ledger: currencies, categories, payees, accounts, securities, transactions
// and exchange rates, each a versioned and validated item of a DataSet.
//
// The core functionalities include:
//   - Edit Lifecycle: every item keeps its base values and a stack of
//     snapshots. Changes are speculative until committed and can be undone
//     one dataset version at a time.
//   - Attribute Sets: optional attributes of an item (sort code, symbol,
//     tags, units, ...) live in a side table whose history follows its owner.
//   - Category Hierarchies: deposit, cash, loan and transaction categories
//     are trees whose names carry their parent name.
//   - Transaction Legality: IsValidEvent tells whether a category can move
//     value from a debit asset to a credit asset.
//   - Currency Normalisation: exchange rates are expressed from a default
//     currency that can be changed, rebasing every rate.
//
// Datasets are read from a JSONL open representation with DecodeDataSet.
// This package serves as the foundation of the moneywise command line tool.
package moneywise
