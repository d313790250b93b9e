//go:build tools

// Package tools pins tool dependencies (mockgen for go generate) in go.mod.
package sms_viewer

import (
	_ "go.uber.org/mock/mockgen"
)
