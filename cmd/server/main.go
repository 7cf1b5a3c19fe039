package main

import (
	"log"

	"agrolink-be/internal/address"
	"agrolink-be/internal/config"
	"agrolink-be/internal/db"
	"agrolink-be/internal/logger"
	"agrolink-be/internal/order"
	"agrolink-be/internal/product"
	"agrolink-be/internal/subscription"
	"agrolink-be/internal/transport"
	"agrolink-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	addressRepo := address.NewRepository(database)
	addressSvc := address.NewService(addressRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, userRepo, addressRepo, productRepo)

	subscriptionRepo := subscription.NewRepository(database)
	subscriptionSvc := subscription.NewService(subscriptionRepo, orderRepo)

	router := transport.NewRouter(cfg.AppEnv, transport.Handlers{
		Auth:         transport.NewAuthHandler(userSvc),
		Address:      transport.NewAddressHandler(addressSvc),
		Product:      transport.NewProductHandler(productSvc),
		Order:        transport.NewOrderHandler(orderSvc),
		Subscription: transport.NewSubscriptionHandler(subscriptionSvc),
	})

	log.Printf("server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(router.Run(":" + cfg.AppPort))
}
