package common

// AuthorizationHeaderName carries the bearer access token on HTTP requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the auth scheme expected in AuthorizationHeaderName.
const BearerScheme = "Bearer"

// RequestIDHeaderName is echoed back on every API response.
const RequestIDHeaderName = "X-Request-ID"
