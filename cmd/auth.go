// Package cmd implements the command-line interface for hoopsgrab.
package cmd

import (
	"errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/hoopsgrab-cli/hoopsgrab/auth"
	"github.com/hoopsgrab-cli/hoopsgrab/color"
	"github.com/hoopsgrab-cli/hoopsgrab/icon"
	"github.com/hoopsgrab-cli/hoopsgrab/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

// authCmd serves as the parent command for managing stored portal credentials.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the portal credentials stored in the system keyring",
}

func init() {
	authCmd.AddCommand(authSaveCmd)
	authSaveCmd.Flags().StringP("email", "e", "", "Portal account email")
	authSaveCmd.Flags().StringP("password", "p", "", "Portal account password (prompted for when omitted)")
}

// authSaveCmd stores credentials in the system keyring.
var authSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Store portal credentials in the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		email := lo.Must(cmd.Flags().GetString("email"))
		password := lo.Must(cmd.Flags().GetString("password"))

		if email == "" {
			handleErr(errors.New("email is required, pass it with --email"))
		}

		if password == "" {
			fmt.Printf("%s Password for %s: ", icon.Get(icon.Lock), email)
			raw, err := term.ReadPassword(int(syscall.Stdin))
			fmt.Println()
			handleErr(err)
			password = strings.TrimSpace(string(raw))
		}
		if password == "" {
			handleErr(errors.New("password must not be empty"))
		}

		handleErr(auth.SaveCredentials(email, password))
		fmt.Printf(
			"%s stored credentials for %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Purple)(email),
		)
	},
}

func init() {
	authCmd.AddCommand(authShowCmd)
}

// authShowCmd displays the stored account, never the password.
var authShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the account whose credentials are stored",
	Run: func(cmd *cobra.Command, args []string) {
		email, _, err := auth.Credentials()
		if err != nil {
			handleErr(errors.New("no stored credentials found"))
		}

		fmt.Printf(
			"%s credentials stored for %s\n",
			icon.Get(icon.Lock),
			style.Fg(color.Purple)(email),
		)
	},
}

func init() {
	authCmd.AddCommand(authDeleteCmd)
}

// authDeleteCmd removes stored credentials from the system keyring.
var authDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the stored portal credentials from the system keyring",
	Aliases: []string{"rm"},
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.DeleteCredentials())
		fmt.Printf(
			"%s deleted stored credentials\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
		)
	},
}
