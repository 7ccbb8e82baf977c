package handler

import (
	"net/http"

	"jianstory-server/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"jianstory-server"}`))
	}).Methods("GET")

	logger := container.GetLogger()

	// Initialize handlers
	authHandler := NewAuthHandler(container, logger)
	storyHandler := NewStoryHandler(container, logger)
	settingsHandler := NewSettingsHandler(container, logger)
	progressHandler := NewProgressHandler(container, logger)
	ratingHandler := NewRatingHandler(container, logger)
	bookmarkHandler := NewBookmarkHandler(container, logger)

	authMiddleware := AuthMiddleware(container)
	optionalAuth := OptionalAuthMiddleware(container)

	// Public routes: story browsing personalizes when a token is present
	public := api.PathPrefix("").Subrouter()
	public.Use(optionalAuth)

	public.HandleFunc("/stories", storyHandler.ListStories).Methods("GET")
	public.HandleFunc("/stories/{slug}", storyHandler.GetStory).Methods("GET")
	public.HandleFunc("/stories/{slug}/chapters", storyHandler.ListChapters).Methods("GET")
	public.HandleFunc("/stories/{slug}/chapters/{chapterSlug}", storyHandler.ReadChapter).Methods("GET")
	public.HandleFunc("/stories/{id}/rating", ratingHandler.GetRating).Methods("GET")
	public.HandleFunc("/themes", settingsHandler.ListThemes).Methods("GET")
	public.HandleFunc("/fonts", settingsHandler.ListFonts).Methods("GET")

	// Protected routes (require authentication)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMiddleware)

	protected.HandleFunc("/auth/validate", authHandler.ValidateToken).Methods("GET")
	protected.HandleFunc("/profile", authHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/profile", authHandler.UpdateProfile).Methods("PATCH")

	protected.HandleFunc("/settings", settingsHandler.GetSettings).Methods("GET")
	protected.HandleFunc("/settings", settingsHandler.UpdateSettings).Methods("PUT")

	protected.HandleFunc("/reading-progress", progressHandler.Observe).Methods("POST")
	protected.HandleFunc("/reading-progress", progressHandler.GetLatest).Methods("GET")
	protected.HandleFunc("/reading-progress", progressHandler.EndSession).Methods("DELETE")
	protected.HandleFunc("/reading-progress/history", progressHandler.History).Methods("GET")

	protected.HandleFunc("/stories/{id}/rating", ratingHandler.SubmitRating).Methods("POST")

	protected.HandleFunc("/bookmarks", bookmarkHandler.AddBookmark).Methods("POST")
	protected.HandleFunc("/bookmarks", bookmarkHandler.ListBookmarks).Methods("GET")
	protected.HandleFunc("/bookmarks/{storyId}", bookmarkHandler.RemoveBookmark).Methods("DELETE")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000", // Next.js dev server
			"http://localhost:3001",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
