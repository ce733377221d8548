package main

import (
	"os"

	"github.com/hexlattice/anchorscan/internal/app"
)

func main() {
	if err := app.BuildRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
