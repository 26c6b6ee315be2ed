package main

import (
	"staybook/internal/catalog/handler"
	"staybook/internal/catalog/repository"
	"staybook/internal/catalog/service"
	"staybook/internal/catalog/validator"
	"staybook/pkg/app"
	"staybook/pkg/config"
)

const ServiceName = "catalog"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Catalog service")
	productService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewProductHandler(productService, cfg.Log),
		handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ProductService {
	productValidator := validator.NewProductValidator(cfg.Log)
	productRepo := repository.NewMongoProductRepository(cfg)
	productService := service.NewProductService(
		productRepo,
		productValidator,
		cfg,
	)

	cfg.Log.Info("Product service initialized", "database", cfg.MongoDatabaseName)
	return productService
}
