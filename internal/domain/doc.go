// Package domain models citizen-submitted weather incident reports.
//
// # Reports
//
// A report records one observed incident: a free-text name, the instant the
// incident happened, and the WGS-84 coordinates where it was seen. Latitude and
// longitude are stored as decimal(10,8) and decimal(11,8) and always surface as
// float64. They are not range-checked.
//
// # Event types
//
// Each report carries zero or more event types drawn from a fixed vocabulary
// seeded once when the schema is provisioned (see [DefaultEventTypes]). Labels
// are matched case-sensitively against active vocabulary entries. A label with
// no match is dropped and logged, never rejected.
//
// # Validation
//
// [ValidateReport] checks a raw JSON submission in a fixed order and stops at
// the first failure:
//
//	eventos      array of strings (may be empty)
//	nome         non-empty string
//	data         date-time string, see [ParseTimestamp]
//	coordenadas  object with latitude and longitude
//
// The result is a [ValidationResult] value rather than an error, so callers can
// hand the reason straight back to the client.
//
// # Publication
//
// Once a report commits it may be published downstream as a [PublishedReport],
// optionally enriched with reverse-geocoded place details.
package domain
