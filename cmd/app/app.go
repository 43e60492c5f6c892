package main

import (
	"github.com/joho/godotenv"
	"github.com/swiftpos/backend/internal/app"
)

//	@title			SwiftPOS Backend API
//	@version		1.0
//	@description	Point-of-sale backend: inventory, sales, printable invoices.
//	@host			localhost:8080
//	@BasePath		/
func main() {
	// .env опционален: в контейнере конфигурация приходит из окружения
	_ = godotenv.Load()

	app.Run()
}
