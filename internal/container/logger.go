package container

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds a production logger for "json" or a development
// logger for "console".
func NewLogger(format string) (*zap.Logger, error) {
	switch format {
	case "json", "":
		return zap.NewProduction()
	case "console":
		return zap.NewDevelopment()
	default:
		return nil, fmt.Errorf("log-format: unknown format %q", format)
	}
}
