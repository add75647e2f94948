// Package openaicompat provides the shared Chat Completions client for
// OpenAI-compatible endpoints.
//
// The client is hand-rolled over net/http: it marshals model, messages and
// the sampling parameters (temperature, max_tokens, frequency_penalty),
// maps HTTP failures through providers.MapHTTPError and rejects a missing
// API key before any network I/O.
//
// Usage:
//
//	p := openaicompat.New(openaicompat.Config{
//	    ProviderName:  "local",
//	    APIKey:        cfg.APIKey,
//	    BaseURL:       "http://localhost:8000",
//	    FallbackModel: "gpt-4o",
//	}, logger)
package openaicompat
