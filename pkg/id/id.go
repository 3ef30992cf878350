// Package id generates time-sortable ULID identifiers for journal records.
package id

import "github.com/oklog/ulid/v2"

// New returns a ULID string. ULIDs sort by generation time, which keeps
// journal tables naturally ordered. The default entropy source is
// monotonic and safe for concurrent use.
func New() string {
	return ulid.Make().String()
}
