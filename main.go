package main

import (
	"os"

	"github.com/crmlite/crmlite/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
