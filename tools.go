//go:build tools

package tools

// Mocks in pkg/countdown/mocks are generated by mockery using .mockery.yaml.
// Run: go run github.com/vektra/mockery/v2 (from the module root).
import (
	_ "github.com/vektra/mockery/v2"
)
