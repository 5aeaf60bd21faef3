//go:build tools

package tools

// Pin the mock generator so `go generate` runs the same mockery version
// everywhere. Mocks live next to the interfaces they double.
import (
	_ "github.com/vektra/mockery/v2"
)
