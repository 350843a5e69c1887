package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	var mobile, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with mobile number and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := appCtx.sessions.Login(cmd.Context(), mobile, password)
			if err != nil {
				return err
			}
			fmt.Printf("خوش آمدید، %s\n", profile.FullName)
			return nil
		},
	}
	cmd.Flags().StringVarP(&mobile, "mobile", "m", "", "mobile number")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("mobile")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func registerCmd() *cobra.Command {
	var fullName, mobile, password, email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := appCtx.sessions.Register(cmd.Context(), fullName, mobile, password, email)
			if err != nil {
				return err
			}
			fmt.Printf("حساب کاربری ساخته شد: %s\n", profile.FullName)
			return nil
		},
	}
	cmd.Flags().StringVarP(&fullName, "name", "n", "", "full name")
	cmd.Flags().StringVarP(&mobile, "mobile", "m", "", "mobile number")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email (optional)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("mobile")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.sessions.Logout(); err != nil {
				return err
			}
			fmt.Println("از حساب کاربری خارج شدید.")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := appCtx.sessions.Current()
			if err != nil {
				fmt.Println("وارد نشده‌اید.")
				return nil
			}
			fmt.Printf("%s (%s)\n", profile.FullName, profile.Mobile)
			return nil
		},
	}
}
