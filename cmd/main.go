package main

import (
	"os"

	"patient-register/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize application with all dependencies
	app, err := bootstrap.New(os.Args[1:])
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	// Run the requested command
	os.Exit(app.Run())
}
