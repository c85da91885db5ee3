package main

import (
	"fmt"
	"os"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/spf13/cobra"
)

var (
	authEmail    string
	authPassword string
	authFullName string
)

// loginCmd authenticates and stores the session
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	Long: `Log in with email and password. The password may also be given in
ATLAS_PASSWORD. Tokens are kept in the configured token store.`,
	RunE: runLogin,
}

// registerCmd creates an account
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
	RunE:  runWhoami,
}

func init() {
	for _, cmd := range []*cobra.Command{loginCmd, registerCmd} {
		cmd.Flags().StringVar(&authEmail, "email", "", "Account email")
		cmd.Flags().StringVar(&authPassword, "password", "", "Account password (or ATLAS_PASSWORD)")
		_ = cmd.MarkFlagRequired("email")
	}
	registerCmd.Flags().StringVar(&authFullName, "name", "", "Full name")
	_ = registerCmd.MarkFlagRequired("name")
}

func password() string {
	if authPassword != "" {
		return authPassword
	}
	return os.Getenv("ATLAS_PASSWORD")
}

func runLogin(cmd *cobra.Command, args []string) error {
	user, err := rt.auth.Login(cmd.Context(), entity.LoginCredentials{
		Email:    authEmail,
		Password: password(),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", user.Email)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	user, err := rt.auth.Register(cmd.Context(), entity.RegisterData{
		Email:    authEmail,
		Password: password(),
		FullName: authFullName,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", user.Email)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := rt.auth.Logout(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	user, err := rt.auth.CurrentUser(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", titleStyle.Render(user.Email))
	if user.FullName != "" {
		fmt.Fprintf(out, "Name:  %s\n", user.FullName)
	}
	role := "analyst"
	if user.IsSuperuser {
		role = "admin"
	}
	fmt.Fprintf(out, "Role:  %s\n", role)
	return nil
}
