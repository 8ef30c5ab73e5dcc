package main

import (
	"newsletter/pkg/config"
	app "newsletter/services/newsletter/internal/app"

	_ "newsletter/services/newsletter/docs" // Swagger docs
)

// @title           Newsletter Service API
// @version         1.0
// @description     Newsletter subscription backend: collects emails and sends a welcome message
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(err)
	}

	if err := application.Run(); err != nil {
		panic(err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		panic(err)
	}
}
