package main

import (
	"context"

	"brefstats/cmd/bref-cli/commands"
	"brefstats/lib/serviceutil"
	"brefstats/lib/telemetry"
)

func main() {
	telemetry.InitSlog(false)
	err := telemetry.SetupFromEnv(context.Background(), "bref-cli")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer telemetry.Shutdown(context.Background())

	commands.ExecuteContext(serviceutil.SignalContext())
}
