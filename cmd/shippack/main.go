// ShipPack packs rectangular boxes into as little package area as possible.
//
// Build:
//
//	go build -o shippack ./cmd/shippack
//
// Usage:
//
//	shippack pack boxes.csv --pdf layout.pdf --labels labels.pdf
//	shippack compare boxes.xlsx
//	shippack catalog init catalog.yaml
package main

import "github.com/piwi3910/ShipPack/cmd/shippack/commands"

func main() {
	commands.Execute()
}
