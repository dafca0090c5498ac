package main

import (
	"github.com/productorderingapp/ordering/internal/inventory/app"
	"github.com/productorderingapp/ordering/internal/inventory/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
