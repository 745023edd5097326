package main

import (
	"github.com/squabble-app/squabble/server/internal/app"
	"github.com/squabble-app/squabble/server/internal/config"
)

func main() {
	app.Go(config.Load())
}
