package main

import (
	"github.com/vila-abandonada/backend/cmd/app"
)

// @title          Vila Abandonada API
// @version        1.0.0
// @description    Content management API of the Vila Abandonada point-and-click adventure: locations, hotspots, items, puzzles, destructible walls and connections.
// @license.name   MIT License
// @license.url    https://opensource.org/licenses/MIT
// @BasePath       /
func main() {
	app.Run()
}
