// Package config loads taskhub settings from defaults, an optional config
// file, a local .env file and TASKHUB_-prefixed environment variables, and
// validates the result before any component is wired.
package config
