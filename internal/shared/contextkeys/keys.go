package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "metadata-backoffice context key " + string(c)
}

// RequestIDKey is the key for the per-request correlation id.
const RequestIDKey = contextKey("requestID")

// ComponentKey is the key for the component name used in log fields.
const ComponentKey = contextKey("component")

// OperationKey is the key for the operation name used in log fields.
const OperationKey = contextKey("operation")
