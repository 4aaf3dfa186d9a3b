// Package resilience groups fault tolerance helpers for outbound dependencies.
//
// Only fail-fast circuit breaking is provided. Nothing in this tree retries a
// call: every platform request and history write is attempted exactly once.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.DefaultConfig("my-service"))
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callExternalService()
//	})
package resilience
