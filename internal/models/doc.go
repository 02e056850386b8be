// Package models defines the core domain models for Khata.
//
// # Ownership
//
// User is the root of all owned data:
//   - User: a registered shop account
//   - Item: a reusable priced product definition, owned by one User
//   - Bill: a finalized sale record, owned by one User
//   - BillItem: one line of a Bill, a frozen snapshot of item data at sale time
//
// Nothing is shared across users. A BillItem copies the item's name, unit and
// price at submission time rather than referencing the catalog row, so later
// catalog edits or deletions never alter historical bills.
//
// # Design Principles
//
// 1. **Bills are write-once**: there is no update path for a persisted bill
// 2. **Strongly typed rows**: each entity is decoded once at the storage
// boundary into a struct with named, typed fields
// 3. **Avoid circular references**: child rows carry parent IDs, not pointers
package models
