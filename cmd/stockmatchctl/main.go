// Command stockmatchctl administra el catalogo y permite previsualizar mazos y portfolios.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: loading .env: %v", err)
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	commander.Register(&migrateCmd{}, "database")
	commander.Register(&seedCmd{}, "database")

	commander.Register(&deckCmd{}, "preview")
	commander.Register(&allocateCmd{}, "preview")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
