package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/rplocha4/social-media-backend/internal/config"
	"github.com/rplocha4/social-media-backend/internal/database"
	postgresrepo "github.com/rplocha4/social-media-backend/internal/repository/postgres"
	"github.com/rplocha4/social-media-backend/internal/service"
	"github.com/rplocha4/social-media-backend/internal/transport/http/handlers"
	"github.com/rplocha4/social-media-backend/internal/transport/http/middleware"
	"github.com/rplocha4/social-media-backend/internal/transport/ws"
)

func main() {
	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	convRepo := postgresrepo.NewConversationRepo(pool)
	postRepo := postgresrepo.NewPostRepo(pool)
	followRepo := postgresrepo.NewFollowRepo(pool)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	convService := service.NewConversationService(convRepo, userRepo)
	feedService := service.NewFeedService(postRepo, userRepo)
	postService := service.NewPostService(postRepo, userRepo)
	followService := service.NewFollowService(followRepo, userRepo)

	// Real-time relay
	registry := ws.NewRegistry()
	router := ws.NewRouter(registry)
	notifier := ws.NewRouterNotifier(router)
	convService.SetNotifier(notifier)
	postService.SetNotifier(notifier)
	followService.SetNotifier(notifier)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	messageHandler := handlers.NewMessageHandler(convService)
	feedHandler := handlers.NewFeedHandler(feedService)
	postHandler := handlers.NewPostHandler(postService)
	followHandler := handlers.NewFollowHandler(followService)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)

	// WebSocket (identity arrives via identity.bind after connect)
	mux.HandleFunc("GET /ws", ws.ServeWS(router))

	// Messaging
	mux.Handle("POST /api/v1/messages", auth(http.HandlerFunc(messageHandler.Send)))
	mux.HandleFunc("GET /api/v1/messages/{userA}/{userB}", messageHandler.ListBetween)
	mux.HandleFunc("GET /api/v1/conversations/{userID}", messageHandler.ListConversations)

	// Feed
	mux.HandleFunc("GET /api/v1/posts/friends/{userID}", feedHandler.Friends)
	mux.HandleFunc("GET /api/v1/posts/{username}", feedHandler.Profile)

	// Posts
	mux.Handle("POST /api/v1/posts", auth(http.HandlerFunc(postHandler.Create)))
	mux.HandleFunc("GET /api/v1/post/{id}", postHandler.Get)
	mux.Handle("POST /api/v1/post/{id}/likes", auth(http.HandlerFunc(postHandler.Like)))
	mux.HandleFunc("GET /api/v1/post/{id}/likes", postHandler.ListLikes)
	mux.Handle("POST /api/v1/post/{id}/comments", auth(http.HandlerFunc(postHandler.AddComment)))
	mux.HandleFunc("GET /api/v1/post/{id}/comments", postHandler.ListComments)

	// Follows
	mux.Handle("POST /api/v1/follows", auth(http.HandlerFunc(followHandler.Create)))
	mux.Handle("DELETE /api/v1/follows", auth(http.HandlerFunc(followHandler.Delete)))
	mux.HandleFunc("GET /api/v1/users/{id}/following", followHandler.ListFollowing)

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}
