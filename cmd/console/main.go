package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/polyglot/internal/buildinfo"
	"github.com/dmitrijs2005/polyglot/internal/console"
	"github.com/dmitrijs2005/polyglot/internal/server"
	"github.com/dmitrijs2005/polyglot/internal/server/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	console.NewApp(app.Controller(), app.Users(), app.Catalog(), os.Stdin, os.Stdout).Run(ctx)

}
