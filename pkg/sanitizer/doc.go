// Package sanitizer normalizes free text user input before validation and storage.
//
// All functions are idempotent: applying them twice gives the same result.
//
// Normalization includes:
//   - Names: trim, collapse runs of whitespace into a single space
//   - Descriptions and comments: trim, collapse horizontal whitespace, keep line breaks
//   - Emails: trim; the lookup key is additionally lowercased
//   - Search text: trim, collapse whitespace, lowercase
package sanitizer
