package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kstrelnikov/salesanalyzer/internal/app"
	"github.com/kstrelnikov/salesanalyzer/internal/config"
	"github.com/kstrelnikov/salesanalyzer/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// create and initialize a new option instance
	option := config.NewOptions()
	option.ParseFlags()

	// get a new logger
	nLogger, err := logger.NewLogger(option.LogLevel())
	if err != nil {
		log.Println(err)
		return 1
	}
	defer nLogger.Sync()

	if err := app.New(option, nLogger).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "analysis failed:", err)
		return 1
	}
	return 0
}
