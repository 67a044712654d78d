package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const defaultInputPath = "data/supermarket_sales.csv"

type Options struct {
	inputPath string
	outputDir string
	logLevel  string
}

func NewOptions() *Options {
	return new(Options)
}

// ParseFlags handles command line arguments
// and stores their values in the corresponding variables.
func (o *Options) ParseFlags() {
	// Load environment variables from the .env file
	loadEnvFile()

	// Override variable values with values from command line flags
	regStringVar(&o.inputPath, "f", getEnvOrDefault("INPUT_FILE", defaultInputPath), "path to the transactions CSV (plain, .zip or .tar)")
	regStringVar(&o.outputDir, "o", getEnvOrDefault("OUTPUT_DIR", "."), "directory for generated artifacts")
	regStringVar(&o.logLevel, "l", getEnvOrDefault("LOG_LEVEL", "info"), "log level")

	// parse the arguments passed to the program into registered variables
	flag.Parse()
}

func (o *Options) InputPath() string {
	return o.inputPath
}

func (o *Options) OutputDir() string {
	return o.outputDir
}

func (o *Options) LogLevel() string {
	return o.logLevel
}

func regStringVar(p *string, name string, value string, usage string) {
	flag.StringVar(p, name, value, usage)
}

// getEnvOrDefault reads an environment variable or returns a default value if the variable is not set or is empty.
func getEnvOrDefault(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// loadEnvFile loads a .env file from the working directory or next to the executable.
func loadEnvFile() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Printf("Error loading .env file: %v", err)
		}
		return
	}

	if exePath, err := os.Executable(); err == nil {
		envPath := filepath.Join(filepath.Dir(exePath), ".env")
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				log.Printf("Error loading .env file: %v", err)
			}
		}
	}
}
