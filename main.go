package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/safedep/dry/log"

	"github.com/ossguard/nodefw/cmd"
	"github.com/ossguard/nodefw/internal/usefulerror"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Debugf("main: no .env file found or failed to load: %v", err)
	}

	root := cmd.NewRootCommand()
	if err := root.Execute(); err != nil {
		if ue, ok := usefulerror.AsUsefulError(err); ok {
			fmt.Fprintf(os.Stderr, "Error: %s\n%s\n", ue.HumanError(), ue.Help())
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
