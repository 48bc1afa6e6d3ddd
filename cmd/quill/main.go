package main

import (
	"os"

	"go.uber.org/zap"

	"quill/pkg/observability"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		observability.GetLogger().Error("command failed", zap.Error(err))
		observability.Sync()
		os.Exit(1)
	}
	observability.Sync()
}
