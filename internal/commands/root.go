package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"taskbuddy/internal/auth"
	"taskbuddy/internal/db"
	"taskbuddy/internal/models"
	"taskbuddy/internal/push"
	"taskbuddy/internal/reorder"
	"taskbuddy/internal/storage"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "taskbuddy",
	Short: "A task manager with boards, filters, and drag-style reordering",
	Long: `taskbuddy is a command-line task manager. Organize tasks across
To Do, In Progress, and Completed columns, filter and sort them, reorder
them within a column, attach files, and review each task's activity log.`,
}

// App wires every service over one database handle. Commands reach it
// through initApp; services never touch globals themselves.
type App struct {
	Tasks    *db.TaskService
	Profiles *db.ProfileService
	Auth     *auth.Service
	Store    storage.ObjectStore
	Bus      *push.Bus
	Engine   *reorder.Engine
}

var app *App

// initApp opens the database and builds the service graph, panicking on
// failure like any unusable installation.
func initApp() {
	if app != nil {
		return
	}

	gdb, err := db.Open()
	if err != nil {
		panic(err)
	}
	home, err := db.HomeDir()
	if err != nil {
		panic(err)
	}
	store, err := storage.NewDiskStore(filepath.Join(home, "storage"))
	if err != nil {
		panic(err)
	}
	secret, err := auth.LoadOrCreateSecret(filepath.Join(home, "secret"))
	if err != nil {
		panic(err)
	}

	bus := push.NewBus()
	tasks := db.NewTaskService(gdb, store, bus)
	profiles := db.NewProfileService(gdb)

	app = &App{
		Tasks:    tasks,
		Profiles: profiles,
		Auth:     auth.NewService(gdb, profiles, auth.NewTokenManager(secret), filepath.Join(home, "session")),
		Store:    store,
		Bus:      bus,
		Engine:   reorder.NewEngine(tasks),
	}
}

// requireUser returns the signed-in user or nil after printing a login
// hint. A missing session is expected control flow, not an error.
func requireUser() *models.User {
	initApp()
	user, err := app.Auth.CurrentUser()
	if err != nil {
		fmt.Println("Not signed in. Run 'taskbuddy login' or 'taskbuddy signup' first.")
		return nil
	}
	return user
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskbuddy %s (commit %s, built %s)\n", version, commit, date)
	},
}

func init() {
	// Add subcommands here
	rootCmd.AddCommand(signupCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(versionCmd)
}
