package common

// AuthorizationHeaderName is the HTTP header carrying the bearer credential.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName is echoed on every response so log lines can be matched
// to client requests.
const RequestIDHeaderName = "X-Request-ID"
