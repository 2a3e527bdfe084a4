// cmd/serotyper/main.go
package main

import (
	"serotyper/internal/app"
	"serotyper/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
