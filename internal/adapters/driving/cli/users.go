package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gproxy/internal/core/domain"
	"github.com/custodia-labs/gproxy/internal/core/ports/driving"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage dashboard accounts",
	Long: `Add, list, and remove the accounts that can log in through
POST /api/auth/login. No account exists until one is added here.

Examples:
  gproxy users add --email admin@example.com --name "Admin" --role admin --permissions '*'
  gproxy users list
  gproxy users remove admin@example.com`,
}

var usersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an account",
	Long: `Add an account. The password is prompted for without echo, or read
as one line from stdin when stdin is not a terminal.`,
	Args: cobra.NoArgs,
	RunE: runUsersAdd,
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE:  runUsersList,
}

var usersRemoveCmd = &cobra.Command{
	Use:   "remove <email>",
	Short: "Remove an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersRemove,
}

// Flags for users add.
var (
	usersAddEmail       string
	usersAddName        string
	usersAddRole        string
	usersAddPermissions string
)

func init() {
	usersAddCmd.Flags().StringVar(&usersAddEmail, "email", "", "Login email (required)")
	usersAddCmd.Flags().StringVar(&usersAddName, "name", "", "Full name")
	usersAddCmd.Flags().StringVar(&usersAddRole, "role", "", "Role (default user)")
	usersAddCmd.Flags().StringVar(&usersAddPermissions, "permissions", "",
		"Permissions, comma-separated (default read)")
	_ = usersAddCmd.MarkFlagRequired("email")

	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersRemoveCmd)
	rootCmd.AddCommand(usersCmd)
}

func runUsersAdd(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	cmd.Print("Password: ")
	password, err := readPassword(cmd.InOrStdin())
	cmd.Println()
	if err != nil {
		return err
	}

	user, err := a.Auth.AddUser(cmd.Context(), driving.NewUser{
		Email:       usersAddEmail,
		Password:    password,
		FullName:    usersAddName,
		Role:        usersAddRole,
		Permissions: splitList(usersAddPermissions),
	})
	if err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}

	cmd.Printf("User added: %s (%s)\n", user.Email, user.ID)
	return nil
}

func runUsersList(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	users, err := a.Auth.ListUsers(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if len(users) == 0 {
		cmd.Println("No accounts.")
		cmd.Println("Add one with: gproxy users add --email <email>")
		return nil
	}

	cmd.Println(headingStyle.Render("Accounts"))
	cmd.Println()
	for i := range users {
		u := &users[i]
		cmd.Printf("  %s\n", u.Email)
		if u.FullName != "" {
			cmd.Println(field("Name", u.FullName))
		}
		cmd.Println(field("Role", u.Role))
		cmd.Println(field("Permissions", strings.Join(u.Permissions, ", ")))
		if !u.CreatedAt.IsZero() {
			cmd.Println(field("Created", u.CreatedAt.Format(time.RFC3339)))
		}
		cmd.Println()
	}
	return nil
}

func runUsersRemove(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	if err := a.Auth.RemoveUser(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove user: %w", err)
	}
	cmd.Printf("User removed: %s\n", domain.NormaliseEmail(args[0]))
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
