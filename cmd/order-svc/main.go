package main

import (
	"github.com/productorderingapp/ordering/internal/order/app"
	"github.com/productorderingapp/ordering/internal/order/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
