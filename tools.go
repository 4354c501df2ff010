//go:build tools
// +build tools

// Package tools pins the code generators invoked through go generate,
// so mockgen resolves to the version recorded in go.mod.
package squalo

import (
	_ "go.uber.org/mock/mockgen"
)
