// Package log builds the slog loggers used across scameye.
//
// Hovered links routinely carry credentials: basic-auth userinfo, session
// tokens in the query string, signed download parameters. SecureHandler
// rewrites every attribute before it reaches the underlying handler:
//   - attributes whose key names a secret (token, password, cookie) are masked
//   - string values that look like bearer tokens or JWTs are masked
//   - string values that parse as absolute http(s) URLs keep their scheme,
//     host and path, but lose userinfo and have sensitive query values masked
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("lookup", "url", "https://bob:pw@shop.example/pay?token=abc")
//	// url=https://shop.example/pay?token=***REDACTED***
package log
