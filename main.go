package main

import (
	"github.com/tomvercaut/c-art-2-volume-changes/cmd/app"
)

func main() {
	app.Run()
}
