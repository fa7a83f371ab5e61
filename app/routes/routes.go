package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"yatube/app/auth"
	"yatube/app/controllers"
	"yatube/app/middleware"
	"yatube/app/repositories"
	"yatube/app/services"
	"yatube/app/views"
)

// SetupMVCRoutes defines the application's routes over the given store and
// returns a router.
func SetupMVCRoutes(store *repositories.Store, sessions *auth.Sessions, templates *views.Templates) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)

	// Apply global middleware
	identity := middleware.Identity(sessions, store.Users)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Logger)
	router.Use(identity)
	router.Use(middleware.TrailingSlash)

	postService := services.NewPostService(store.Posts, store.Groups, store.Users)
	userService := services.NewUserService(store.Users)

	postController := controllers.NewPostController(postService, templates)
	authController := controllers.NewAuthController(userService, sessions, templates)

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", views.Static())).Methods("GET", "HEAD")

	// Feeds
	router.HandleFunc("/", postController.Index).Methods("GET")
	router.HandleFunc("/group/{slug}/", postController.GroupPosts).Methods("GET")
	router.HandleFunc("/profile/{username}/", postController.Profile).Methods("GET")

	// Posts
	router.HandleFunc("/create/", postController.Create).Methods("GET", "POST")
	router.HandleFunc("/posts/{id:[0-9]+}/", postController.Show).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}/edit/", postController.Edit).Methods("GET", "POST")

	// Accounts
	accounts := router.PathPrefix("/auth").Subrouter()
	accounts.HandleFunc("/signup/", authController.Signup).Methods("GET", "POST")
	accounts.HandleFunc("/login/", authController.Login).Methods("GET", "POST")
	accounts.HandleFunc("/logout/", authController.Logout).Methods("GET", "POST")

	// Router middleware only runs on matched routes.
	router.NotFoundHandler = middleware.Recoverer(middleware.Logger(identity(controllers.NotFound(templates))))

	return router
}

// NewServer returns an HTTP server for handler with conservative timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return NewServer(addr, router).ListenAndServe()
}
