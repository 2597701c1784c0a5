// Package cmd implements the command-line interface for hoopsgrab.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hoopsgrab-cli/hoopsgrab/auth"
	"github.com/hoopsgrab-cli/hoopsgrab/color"
	"github.com/hoopsgrab-cli/hoopsgrab/constant"
	"github.com/hoopsgrab-cli/hoopsgrab/grab"
	"github.com/hoopsgrab-cli/hoopsgrab/icon"
	"github.com/hoopsgrab-cli/hoopsgrab/key"
	"github.com/hoopsgrab-cli/hoopsgrab/log"
	"github.com/hoopsgrab-cli/hoopsgrab/open"
	"github.com/hoopsgrab-cli/hoopsgrab/style"
	"github.com/hoopsgrab-cli/hoopsgrab/util"
	"github.com/hoopsgrab-cli/hoopsgrab/version"
	"github.com/hoopsgrab-cli/hoopsgrab/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Settle pauses give the portal's scripted listing time to re-render after
// filter changes. The portal carries no reliable render-complete signal.
const (
	filterSettle    = 2 * time.Second
	cardSettle      = 2 * time.Second
	downloadTimeout = 5 * time.Minute
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.Flags().StringP("email", "e", "", "Portal account email")
	lo.Must0(viper.BindPFlag(key.SiteEmail, rootCmd.Flags().Lookup("email")))

	rootCmd.Flags().StringP("password", "p", "", "Portal account password")
	lo.Must0(viper.BindPFlag(key.SitePassword, rootCmd.Flags().Lookup("password")))

	rootCmd.Flags().StringP("download-dir", "d", "", "Directory replay files are written under")
	lo.Must0(viper.BindPFlag(key.DownloadsDir, rootCmd.Flags().Lookup("download-dir")))

	rootCmd.Flags().String("base-url", "", "Base URL of the replay portal")
	lo.Must0(viper.BindPFlag(key.SiteBaseURL, rootCmd.Flags().Lookup("base-url")))

	rootCmd.Flags().Bool("headless", true, "Run the browser without a visible window")
	lo.Must0(viper.BindPFlag(key.BrowserHeadless, rootCmd.Flags().Lookup("headless")))

	rootCmd.Flags().BoolP("open", "o", false, "Open the download folder once replays are saved")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the hoopsgrab application.
var rootCmd = &cobra.Command{
	Use:   constant.Hoopsgrab,
	Short: "A command-line grabber for last session's basketball replays",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A command-line grabber for last session's basketball replays"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		email, password := credentials()
		if email == "" || password == "" {
			handleErr(errors.New("portal credentials missing: pass --email/--password, set HOOPSGRAB_SITE_EMAIL/HOOPSGRAB_SITE_PASSWORD, or run \"hoopsgrab auth save\""))
		}

		options := grab.Options{
			Email:           email,
			Password:        password,
			BaseURL:         viper.GetString(key.SiteBaseURL),
			Center:          viper.GetString(key.FilterCenter),
			Court:           viper.GetString(key.FilterCourt),
			WindowStart:     viper.GetInt(key.FilterWindowStart),
			WindowEnd:       viper.GetInt(key.FilterWindowEnd),
			DownloadDir:     viper.GetString(key.DownloadsDir),
			Headless:        viper.GetBool(key.BrowserHeadless),
			Progress:        viper.GetBool(key.DownloadsProgress),
			PageTimeout:     time.Duration(viper.GetInt(key.BrowserPageTimeout)) * time.Second,
			DownloadTimeout: downloadTimeout,
			Pause:           time.Duration(viper.GetInt(key.DownloadsPause)) * time.Second,
			FilterSettle:    filterSettle,
			CardSettle:      cardSettle,
		}

		summary, err := grab.Run(cmd.Context(), options)
		handleErr(err)

		if summary.Attempted == 0 {
			fmt.Printf(
				"%s no replays found for %s\n",
				style.Fg(color.Yellow)(icon.Get(icon.Warning)),
				style.Fg(color.Purple)(summary.Date),
			)
			return
		}

		fmt.Printf(
			"%s saved %s for %s\n",
			style.Fg(color.Green)(icon.Get(icon.Success)),
			style.Fg(color.Yellow)(util.Quantify(summary.Saved, "replay", "replays")),
			style.Fg(color.Purple)(summary.Date),
		)
		if summary.Skipped > 0 {
			fmt.Printf("  %s already saved earlier\n", util.Quantify(summary.Skipped, "replay was", "replays were"))
		}
		if summary.Failed > 0 {
			fmt.Printf(
				"%s %s could not be saved, see the logs\n",
				style.Fg(color.Yellow)(icon.Get(icon.Warning)),
				util.Quantify(summary.Failed, "replay", "replays"),
			)
		}
		for _, file := range summary.Files {
			fmt.Printf("  %s %s\n", icon.Get(icon.Video), file)
		}

		if summary.Saved > 0 && lo.Must(cmd.Flags().GetBool("open")) {
			handleErr(open.Start(filepath.Join(viper.GetString(key.DownloadsDir), summary.Date)))
		}
	},
}

// credentials resolves the portal account, flags and environment first, the
// system keyring as a fallback.
func credentials() (email, password string) {
	email = viper.GetString(key.SiteEmail)
	password = viper.GetString(key.SitePassword)
	if email != "" && password != "" {
		return
	}

	storedEmail, storedPassword, err := auth.Credentials()
	if err != nil {
		return
	}
	if email == "" {
		email = storedEmail
	}
	if password == "" {
		password = storedPassword
	}
	return
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
