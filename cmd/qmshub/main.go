package main

import (
	"context"
	"log"
	"os"

	"github.com/hiai-demo-qms/qmshub/internal/buildinfo"
	"github.com/hiai-demo-qms/qmshub/internal/client/cli"
	"github.com/hiai-demo-qms/qmshub/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	app, err := cli.NewApp(config.LoadConfig())
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	app.Run(context.Background())
}
