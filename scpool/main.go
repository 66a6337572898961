package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sjy-dv/scpool/scpool/launch"
	"github.com/sjy-dv/scpool/scpool/pkg/log"
)

func init() {
	godotenv.Load()
	os.Setenv("TZ", "UTC")
	time.Local = time.UTC
}

func main() {
	BootSystem()
}

func BootSystem() {
	launcher := launch.LoadEnv()
	launcher.LaunchScpoolSystem()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("SCPOOL draining pools...")
	if err := launcher.Shutdown(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
