package command

// Fixed error BulkString payloads. Handlers return one of these
// verbatim; the only formatted responses are the "ERROR: <detail>"
// strings built by dispatchError.
const (
	errInvalidCommand       = "INVALID COMMAND: Invalid command"
	errInvalidCommandFormat = "INVALID COMMAND: Invalid command format"
	errInvalidMESPType      = "INVALID COMMAND: Invalid MESP type"
	errInvalidGeoPoint      = "INVALID COMMAND: Invalid geopoint format"
	errInvalidDuration      = "INVALID DURATION FORMAT"

	errNotFound             = "NOT FOUND"
	errNotFoundLocation     = "NOT FOUND: Location not found in Cache"
	successSuccess          = "SUCCESS"
	successPong             = "PONG"
	successOK               = "OK"
)

// dispatchError formats an unexpected panic/error recovered at the
// dispatch boundary, per spec.md §4.6's "ERROR: <detail>" convention.
func dispatchError(detail string) string {
	return "ERROR: " + detail
}
