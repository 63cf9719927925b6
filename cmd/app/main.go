package main

import (
	"github.com/reelmate/core/internal/app"
	"github.com/reelmate/core/internal/config"
)

func main() {
	app.Go(config.Load())
}
