package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/eshaffer321/fraudlens/internal/cli"
	"github.com/eshaffer321/fraudlens/internal/infrastructure/config"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	flags := cli.ParseServeFlags()
	cfg := config.LoadOrEnvWithPath(flags.ConfigPath)

	gin.SetMode(gin.ReleaseMode)

	if err := cli.RunServe(cfg, flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
