// Command jobhub serves the job board API.
package main

import (
	"context"
	"log"

	"github.com/dalemusser/jobhub/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
