// Package types defines the brokerage records (Agent, Client, Property,
// Contract), the Date value, the field validation rules, the persistence
// boundary (Mirror, Backend, Snapshot), and the standard errors.
//
// Records are plain structs. Their setters validate input and leave the
// record unchanged on failure; Validate re-checks a whole record built
// elsewhere, for example from CLI flags or a database row.
package types
