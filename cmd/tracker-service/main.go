package main

import (
	"os"

	"github.com/daylog/daylog/server/trackerservice"
)

func main() {
	if err := trackerservice.Run(); err != nil {
		os.Exit(1)
	}
}
