package main

import (
	"log"
	"net/http"

	"github.com/productcatalog/webapp/app/auth"
	"github.com/productcatalog/webapp/app/catalog"
	"github.com/productcatalog/webapp/app/categories"
	"github.com/productcatalog/webapp/app/help"
	"github.com/productcatalog/webapp/app/history"
	"github.com/productcatalog/webapp/app/users"
	"github.com/productcatalog/webapp/config"
	"github.com/productcatalog/webapp/database"
	"github.com/productcatalog/webapp/models"
	"github.com/productcatalog/webapp/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	if err := database.Initialize(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	productsRepo := models.NewProductsRepository(db)
	categoriesRepo := models.NewCategoriesRepository(db)
	usersRepo := models.NewUsersRepository(db)
	historyRepo := models.NewHistoryRepository(db)

	sessions := session.NewManager(usersRepo)

	authHandler := auth.NewAuthHandler(sessions)
	catalogHandler := catalog.NewCatalogHandler(productsRepo, categoriesRepo, historyRepo)
	categoriesHandler := categories.NewCategoryHandler(categoriesRepo)
	usersHandler := users.NewUserHandler(usersRepo)
	historyHandler := history.NewHistoryHandler(historyRepo)

	canCatalog := models.Role.CanManageCatalog
	canUsers := models.Role.CanManageUsers

	mux := http.NewServeMux()

	mux.HandleFunc("POST /login", authHandler.HandleLogin)
	mux.HandleFunc("POST /logout", auth.Require(sessions, authHandler.HandleLogout))

	mux.HandleFunc("GET /products", auth.Require(sessions, catalogHandler.HandleList))
	mux.HandleFunc("POST /products", auth.RequireCapability(sessions, canCatalog, catalogHandler.HandleCreate))
	mux.HandleFunc("PUT /products/{id}", auth.RequireCapability(sessions, canCatalog, catalogHandler.HandleUpdate))
	mux.HandleFunc("DELETE /products/{id}", auth.RequireCapability(sessions, canCatalog, catalogHandler.HandleDelete))

	mux.HandleFunc("GET /categories", auth.Require(sessions, categoriesHandler.HandleList))
	mux.HandleFunc("POST /categories", auth.RequireCapability(sessions, canCatalog, categoriesHandler.HandleCreate))
	mux.HandleFunc("PUT /categories/{id}", auth.RequireCapability(sessions, canCatalog, categoriesHandler.HandleUpdate))
	mux.HandleFunc("DELETE /categories/{id}", auth.RequireCapability(sessions, canCatalog, categoriesHandler.HandleDelete))

	// The whole user management screen is admin-only, reads included.
	mux.HandleFunc("GET /users", auth.RequireCapability(sessions, canUsers, usersHandler.HandleList))
	mux.HandleFunc("POST /users", auth.RequireCapability(sessions, canUsers, usersHandler.HandleCreate))
	mux.HandleFunc("PUT /users/{id}", auth.RequireCapability(sessions, canUsers, usersHandler.HandleUpdate))
	mux.HandleFunc("DELETE /users/{id}", auth.RequireCapability(sessions, canUsers, usersHandler.HandleDelete))

	mux.HandleFunc("GET /history", auth.Require(sessions, historyHandler.HandleList))
	mux.HandleFunc("GET /help", auth.Require(sessions, help.Handle))

	log.Printf("listening on http://%s", cfg.App.Addr)
	if err := http.ListenAndServe(cfg.App.Addr, mux); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
