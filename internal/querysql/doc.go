// Package querysql compiles QueryIR basic graph patterns to SQLite SQL over
// the store's quad table.
//
// The compiled SQL is always parameterized and always ordered. Callers pass
// the returned params straight to database/sql.
package querysql
