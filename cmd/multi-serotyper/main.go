// cmd/multi-serotyper/main.go
package main

import (
	"serotyper/internal/appshell"
	"serotyper/internal/multiapp"
)

func main() {
	appshell.Main(multiapp.RunContext)
}
