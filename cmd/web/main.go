package main

import (
	"log/slog"
	"os"

	"github.com/vorobyoffn/Financial-Dashboard/internal/app"
	"github.com/vorobyoffn/Financial-Dashboard/internal/infrastructure"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if err := application.Run(); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
