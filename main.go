package main

import (
	"os"

	"github.com/abhisek/sqlcoach/cmd"
	_ "github.com/abhisek/sqlcoach/internal/logger"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
