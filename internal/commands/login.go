package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a local account and sign in",
	Run: func(cmd *cobra.Command, args []string) {
		initApp()
		email, _ := cmd.Flags().GetString("email")
		name, _ := cmd.Flags().GetString("name")

		if email == "" {
			email = promptLine("Email: ")
		}
		if name == "" {
			name = promptLine("Full name: ")
		}
		password := promptPassword("Password: ")

		user, err := app.Auth.SignUp(email, password, name)
		if err != nil {
			fmt.Printf("Error creating account: %v\n", err)
			return
		}
		fmt.Printf("Welcome, %s! You are signed in as %s.\n", user.FullName, user.Email)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to an existing account",
	Run: func(cmd *cobra.Command, args []string) {
		initApp()
		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			email = promptLine("Email: ")
		}
		password := promptPassword("Password: ")

		user, err := app.Auth.SignIn(email, password)
		if err != nil {
			fmt.Printf("Error signing in: %v\n", err)
			return
		}
		fmt.Printf("Signed in as %s.\n", user.Email)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the current session",
	Run: func(cmd *cobra.Command, args []string) {
		initApp()
		if err := app.Auth.SignOut(); err != nil {
			fmt.Printf("Error signing out: %v\n", err)
			return
		}
		fmt.Println("Signed out.")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Run: func(cmd *cobra.Command, args []string) {
		user := requireUser()
		if user == nil {
			return
		}
		fmt.Printf("%s (%s)\n", user.FullName, user.Email)
	},
}

func promptLine(label string) string {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptPassword(label string) string {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(raw)
}

func init() {
	signupCmd.Flags().StringP("email", "e", "", "Account email")
	signupCmd.Flags().StringP("name", "n", "", "Full name")
	loginCmd.Flags().StringP("email", "e", "", "Account email")
}
