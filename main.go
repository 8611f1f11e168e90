package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"inkwell/app/config"
	"inkwell/app/controllers"
	"inkwell/app/loader"
	"inkwell/app/render"
	"inkwell/app/repositories"
	"inkwell/app/routes"
	"inkwell/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const cliVersion = "1.0.0"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("inkwell version %s\n", cliVersion)
	case "serve":
		serve(os.Args[2:])
	case "init":
		initDb()
	case "seed":
		if len(os.Args) < 3 {
			fmt.Println("Error: content directory required for seed")
			os.Exit(1)
		}
		seed(os.Args[2])
	case "prerender":
		if len(os.Args) < 3 {
			fmt.Println("Error: output directory required for prerender")
			os.Exit(1)
		}
		prerender(os.Args[2])
	case "clean":
		clean()
	case "backup":
		backup()
	case "restore":
		if len(os.Args) < 3 {
			fmt.Println("Error: backup file path required for restore")
			os.Exit(1)
		}
		restore(os.Args[2])
	default:
		fmt.Printf("Unknown command: %s\n\n", cmd)
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: inkwell <command> [options]

Commands:
  serve [--config <file>]   Run the blog server
  init                      Initialize a new empty content store
  seed <dir>                Import post documents from a content directory
  prerender <dir>           Render every post page to static HTML files
  clean                     Remove the content store
  backup                    Create a backup of the content store
  restore <file>            Restore the content store from a backup
  version                   Show version information
  help                      Display this help message
`
	fmt.Println(helpText)
}

func loadConfig(args []string) *config.Config {
	path := "config.toml"
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			path = args[i+1]
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to load configuration")
	}
	cfg.ApplyLogLevel()
	return cfg
}

func openStore(path string) *badger.DB {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to open content store")
	}
	return db
}

// serve starts the blog server: content import, watcher, routes.
func serve(args []string) {
	cfg := loadConfig(args)

	db := openStore(cfg.Store.Path)
	defer db.Close()

	pageCache := render.NewPageCache(cfg.Revalidate())

	if cfg.Content.Root != "" {
		l := loader.New(cfg.Content.Root, repositories.NewBadgerPostRepository(db))
		l.OnReload = pageCache.InvalidateAll
		if err := l.Load(); err != nil {
			log.Error().Err(err).Msg("initial content import failed")
		}
		if cfg.Content.Watch {
			go func() {
				if err := l.Watch(nil); err != nil {
					log.Error().Err(err).Msg("content watcher stopped")
				}
			}()
		}
	}

	router := routes.Setup(db, cfg, pageCache, "")

	log.Info().Str("addr", cfg.Server.Addr).Msg("starting blog server")
	if err := http.ListenAndServe(cfg.Server.Addr, router); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// initDb initializes a new empty content store
func initDb() {
	cfg := loadConfig(nil)

	if _, err := os.Stat(cfg.Store.Path); err == nil {
		fmt.Println("Content store already exists. Use 'clean' first if you want to reinitialize.")
		return
	}

	db := openStore(cfg.Store.Path)
	defer db.Close()

	fmt.Println("Content store initialized successfully")
}

// seed imports posts from a content directory once and exits
func seed(dir string) {
	cfg := loadConfig(nil)

	db := openStore(cfg.Store.Path)
	defer db.Close()

	l := loader.New(dir, repositories.NewBadgerPostRepository(db))
	if err := l.Load(); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	fmt.Println("Content imported successfully")
}

// prerender writes every post page to <dir>/<slug>.html
func prerender(dir string) {
	cfg := loadConfig(nil)

	db := openStore(cfg.Store.Path)
	defer db.Close()

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatal().Err(err).Msg("failed to create output directory")
	}

	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)
	postService := services.NewPostService(postRepo, commentRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	controller := controllers.NewPostController(postService, commentService, render.NewPageCache(0), "")

	refs, err := postService.ListPostRefs()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to enumerate posts")
	}

	for _, ref := range refs {
		post, err := postService.GetPostBySlug(ref.Slug.Current)
		if err != nil {
			log.Error().Err(err).Str("slug", ref.Slug.Current).Msg("skipping post")
			continue
		}
		html, err := controller.RenderPost(post)
		if err != nil {
			log.Error().Err(err).Str("slug", ref.Slug.Current).Msg("render failed")
			continue
		}
		out := filepath.Join(dir, ref.Slug.Current+".html")
		if err := os.WriteFile(out, html, 0644); err != nil {
			log.Fatal().Err(err).Str("file", out).Msg("write failed")
		}
	}
	fmt.Printf("Rendered %d pages to %s\n", len(refs), dir)
}

// clean removes the content store
func clean() {
	cfg := loadConfig(nil)

	if _, err := os.Stat(cfg.Store.Path); os.IsNotExist(err) {
		fmt.Println("Content store is already clean (does not exist)")
		return
	}

	fmt.Print("Are you sure you want to remove the content store? This cannot be undone. [y/N] ")
	var response string
	fmt.Scanln(&response)
	if response != "y" && response != "Y" {
		fmt.Println("Operation cancelled")
		return
	}

	if err := os.RemoveAll(cfg.Store.Path); err != nil {
		log.Fatal().Err(err).Msg("failed to clean content store")
	}
	fmt.Println("Content store cleaned successfully")
}

// backup creates a backup of the content store
func backup() {
	cfg := loadConfig(nil)

	if _, err := os.Stat(cfg.Store.Path); os.IsNotExist(err) {
		fmt.Println("No content store exists to backup")
		return
	}

	backupDir := "data/backups"
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("failed to create backup directory")
	}

	db := openStore(cfg.Store.Path)
	defer db.Close()

	backupFile := filepath.Join(backupDir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
	f, err := os.Create(backupFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create backup file")
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		log.Fatal().Err(err).Msg("failed to backup content store")
	}

	fmt.Printf("Content store backed up successfully to %s\n", backupFile)
}

// restore restores the content store from a backup
func restore(backupFile string) {
	cfg := loadConfig(nil)

	if _, err := os.Stat(backupFile); os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return
	}

	if _, err := os.Stat(cfg.Store.Path); err == nil {
		fmt.Print("Existing content store found. Do you want to replace it? [y/N] ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Operation cancelled")
			return
		}
		if err := os.RemoveAll(cfg.Store.Path); err != nil {
			log.Fatal().Err(err).Msg("failed to remove existing content store")
		}
	}

	db := openStore(cfg.Store.Path)
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open backup file")
	}
	defer f.Close()

	if err := db.Load(f, 4); err != nil {
		log.Fatal().Err(err).Msg("failed to restore content store")
	}

	fmt.Println("Content store restored successfully")
}
