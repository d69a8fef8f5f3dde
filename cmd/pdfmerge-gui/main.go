// Command pdfmerge-gui is the desktop front end of pdfmerge.
package main

import (
	"log"
	"os"

	"github.com/MyCarrier-DevOps/go-pdfmerge/cmd"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/config"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/gui"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/gui/window"
	"github.com/MyCarrier-DevOps/go-pdfmerge/internal/logging"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

func main() {
	level := os.Getenv("PDFMERGE_LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	logger, err := logging.New(level, os.Stderr, "pdfmerge-gui", cmd.Version)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	storePath, err := config.DefaultPath()
	if err != nil {
		logger.Fatal("locating configuration store", zap.Error(err))
	}
	fs := afero.NewOsFs()
	ctrl := gui.NewController(fs, config.NewStore(fs, storePath), logger)
	window.Run(ctrl, "PDF Merger")
}
