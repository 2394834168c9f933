// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/ssokit/core/config"
//
//	type ServerConfig struct {
//		Addr    string        `env:"SERVER_ADDR" envDefault:":8080"`
//		Timeout time.Duration `env:"SERVER_TIMEOUT" envDefault:"10s"`
//		Secret  string        `env:"SERVER_SECRET,required"`
//	}
//
//	func main() {
//		var cfg ServerConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// Each configuration type is loaded only once per application lifetime;
// subsequent Load calls for the same type return the cached value, so
// environment changes after the first load are not observed.
package config
