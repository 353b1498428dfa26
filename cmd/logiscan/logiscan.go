package main

import (
	"os"

	"github.com/Egor213/LogiScan/internal/app"
)

func main() {
	os.Exit(app.Execute())
}
