package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"urban-explorer/config"
	"urban-explorer/database"
	"urban-explorer/logger"
	"urban-explorer/storage"
	"urban-explorer/web"
	"urban-explorer/web/service"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
	defer logger.CloseLogger()

	db, err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.CloseDB(db); err != nil {
			logger.Warning("close db err:", err)
		}
	}()

	blobs, err := storage.NewDisk(config.GetUploadFolderPath())
	if err != nil {
		log.Fatal(err)
	}

	server := web.NewServer(db, blobs)
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, os.Interrupt)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("received SIGHUP, restarting web server")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer(db, blobs)
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   config.GetName(),
		Short: "map-based location sharing app",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.GetVersion())
		},
	}

	var allowSignup bool
	settingCmd := &cobra.Command{
		Use:   "setting",
		Short: "show or change the sign-up gate",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.InitDB(config.GetDBPath())
			if err != nil {
				return err
			}
			defer database.CloseDB(db)

			settingService := service.NewSettingService(db)
			if cmd.Flags().Changed("allow-signup") {
				if _, err := settingService.SetAllowSignup(allowSignup); err != nil {
					return err
				}
			}
			current, err := settingService.GetAllowSignup()
			if err != nil {
				return err
			}
			fmt.Println("allowSignup:", current)
			return nil
		},
	}
	settingCmd.Flags().BoolVar(&allowSignup, "allow-signup", true, "enable or disable sign-up")

	var resetEmail, resetPassword string
	resetPasswordCmd := &cobra.Command{
		Use:   "reset-password",
		Short: "reset an account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.InitDB(config.GetDBPath())
			if err != nil {
				return err
			}
			defer database.CloseDB(db)

			settingService := service.NewSettingService(db)
			userService := service.NewUserService(db, settingService)
			if err := userService.ResetPassword(resetEmail, resetPassword); err != nil {
				return err
			}
			fmt.Println("password updated for", resetEmail)
			return nil
		},
	}
	resetPasswordCmd.Flags().StringVar(&resetEmail, "email", "", "account email")
	resetPasswordCmd.Flags().StringVar(&resetPassword, "password", "", "new password")
	resetPasswordCmd.MarkFlagRequired("email")
	resetPasswordCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(runCmd, versionCmd, settingCmd, resetPasswordCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
