package main

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/camden-git/photocatalog/config"
	"github.com/camden-git/photocatalog/database"
	"github.com/camden-git/photocatalog/handlers"
	"github.com/camden-git/photocatalog/ingest"
	"github.com/camden-git/photocatalog/media"
	"github.com/camden-git/photocatalog/repository"
	"github.com/camden-git/photocatalog/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	storagePaths := []string{cfg.ImagesPath, cfg.ConvertedPath, filepath.Dir(cfg.DatabasePath)}
	for _, p := range storagePaths {
		log.Printf("Ensuring storage directory exists: %s", p)
		if err := os.MkdirAll(p, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create storage directory %s: %v", p, err)
		}
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	defer database.Close()

	store, err := media.NewLocalStorage(cfg.ImagesPath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize image store: %v", err)
	}
	converter := media.NewConverter(cfg.JpegQuality)

	imageRepo := repository.NewImageRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	subCategoryRepo := repository.NewSubCategoryRepository(db)
	locationRepo := repository.NewLocationRepository(db)

	catalogService := services.NewCatalogService(imageRepo, categoryRepo, subCategoryRepo, locationRepo, store, converter)
	pipeline := ingest.NewPipeline(catalogService)

	log.Printf("Catalog root: %s", cfg.RootDirectory)
	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Managed images in: %s", cfg.ImagesPath)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	imageHandler := &handlers.ImageHandler{Service: catalogService, Cfg: cfg}
	categoryHandler := &handlers.CategoryHandler{Repo: categoryRepo}
	subCategoryHandler := &handlers.SubCategoryHandler{Repo: subCategoryRepo}
	locationHandler := &handlers.LocationHandler{Repo: locationRepo}
	ingestHandler := &handlers.IngestHandler{Pipeline: pipeline}
	statsHandler := &handlers.StatsHandler{DB: db}

	r.Route("/api", func(r chi.Router) {
		r.Route("/images", func(r chi.Router) {
			r.Get("/", imageHandler.ListImages)
			r.Route("/{image_id}", func(r chi.Router) {
				r.Get("/", imageHandler.GetImage)
				r.Put("/", imageHandler.UpdateImage)
				r.Put("/subcategory", imageHandler.UpdateSubCategory)
				r.Post("/convert", imageHandler.ConvertImage)
				r.Delete("/", imageHandler.DeleteImage)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", categoryHandler.CreateCategory)
			r.Get("/", categoryHandler.ListCategories)
			r.Route("/{category_id}", func(r chi.Router) {
				r.Get("/", categoryHandler.GetCategory)
				r.Put("/", categoryHandler.UpdateCategory)
				r.Delete("/", categoryHandler.DeleteCategory)
				r.Put("/subcategories/{subcategory_id}", categoryHandler.AttachSubCategory)
				r.Delete("/subcategories/{subcategory_id}", categoryHandler.DetachSubCategory)
			})
		})

		r.Route("/subcategories", func(r chi.Router) {
			r.Post("/", subCategoryHandler.CreateSubCategory)
			r.Get("/", subCategoryHandler.ListSubCategories)
			r.Route("/{subcategory_id}", func(r chi.Router) {
				r.Get("/", subCategoryHandler.GetSubCategory)
				r.Put("/", subCategoryHandler.UpdateSubCategory)
				r.Delete("/", subCategoryHandler.DeleteSubCategory)
			})
		})

		r.Route("/locations", func(r chi.Router) {
			r.Post("/", locationHandler.CreateLocation)
			r.Get("/", locationHandler.ListLocations)
			r.Route("/{location_id}", func(r chi.Router) {
				r.Get("/", locationHandler.GetLocation)
				r.Put("/", locationHandler.UpdateLocation)
				r.Delete("/", locationHandler.DeleteLocation)
			})
		})

		r.Post("/ingest", ingestHandler.RunIngest)
		r.Get("/scan", ingestHandler.ScanFolder)
		r.Get("/stats", statsHandler.GetStats)
	})

	serverAddr := ":" + cfg.Port
	log.Printf("Server listening on %s", serverAddr)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
