package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"muse/app/config"
	"muse/app/controllers"
	"muse/app/repositories"
	"muse/app/routes"
	"muse/app/services"
	"muse/app/session"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := strings.ToLower(os.Args[1])
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("muse version %s\n", cliVersion)
	case "serve":
		serve()
	case "init":
		initSchema()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: muse <command>

Commands:
  help      Display this help message.
  version   Show version information.
  serve     Run the board server.
  init      Apply schema.sql to the configured database.

Configuration comes from the environment (or a .env file): DATABASE_URL,
HOST, PORT, SESSION_PATH, LOG_LEVEL.
`
	fmt.Println(helpText)
}

// serve wires the repositories, services, and controllers together and runs
// the HTTP server until it fails.
func serve() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("loading configuration", "err", err)
	}
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx := context.Background()
	pool, err := repositories.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("connecting to database", "err", err)
	}
	defer pool.Close()

	sessions, err := session.NewStore(cfg.SessionPath)
	if err != nil {
		log.Fatal("opening session store", "err", err)
	}
	defer sessions.Close()

	userRepo := repositories.NewPgUserRepository(pool)
	postRepo := repositories.NewPgPostRepository(pool)
	commentRepo := repositories.NewPgCommentRepository(pool)

	postService := services.NewPostService(postRepo, commentRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	authService := services.NewAuthService(userRepo)

	postController := controllers.NewPostController(sessions, postService, "")
	commentController := controllers.NewCommentController(sessions, commentService, postService, "")
	sessionController := controllers.NewSessionController(sessions, authService, "")

	router := routes.Setup(sessions, postController, commentController, sessionController)

	log.Info("listening", "addr", cfg.Addr())
	if err := http.ListenAndServe(cfg.Addr(), router); err != nil {
		log.Fatal("server stopped", "err", err)
	}
}

// initSchema applies schema.sql to the configured database.
func initSchema() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("loading configuration", "err", err)
	}

	ctx := context.Background()
	pool, err := repositories.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("connecting to database", "err", err)
	}
	defer pool.Close()

	schema, err := os.ReadFile("schema.sql")
	if err != nil {
		log.Fatal("reading schema.sql", "err", err)
	}

	for _, stmt := range strings.Split(string(schema), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatal("applying schema", "err", err)
		}
	}

	log.Info("schema applied")
}
