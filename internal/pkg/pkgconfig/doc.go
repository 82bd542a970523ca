// Package pkgconfig provides a small abstraction for reading configuration values.
//
// The application expects config values to come from a concrete implementation
// (for example Viper). Business code should depend on the Config interface so it
// stays easy to test and does not care where values come from (file, env, etc).
//
// Values are resolved from, lowest priority first: defaults, the config file,
// and the process environment. A key like "auth.api_key" is read from the
// AUTH_API_KEY variable unless another variable was bound with BindEnv.
package pkgconfig
