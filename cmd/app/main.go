// @title GRBL Service API
// @version 1.0.0
// @description API для управления контроллерами GRBL: подключение по последовательному порту, потоковая передача программ, джоггинг и компиляция растровой гравировки.
// @host localhost:8082
// @BasePath /
package main

import "github.com/iwtcode/grblService/internal/app"

func main() {
	// Создаем и запускаем новый экземпляр приложения fx
	app.New().Run()
}
