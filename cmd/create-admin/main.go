// Command create-admin bootstraps the first administrator account. Signup
// only ever produces student accounts, so the initial admin has to come
// from this out-of-band path. It refuses to run when an admin already
// exists.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/studentdesk/studentdesk-backend/internal/config"
	"github.com/studentdesk/studentdesk-backend/internal/database"
	"github.com/studentdesk/studentdesk-backend/internal/logger"
	"github.com/studentdesk/studentdesk-backend/internal/model"
	"github.com/studentdesk/studentdesk-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	accountRepo := repository.NewAccountRepository(pool)

	exists, err := accountRepo.AdminExists(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check for existing admin")
	}
	if exists {
		fmt.Println("Admin account already exists")
		return
	}

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Admin Account ===")

	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		fmt.Println("Error: Name must be at least 2 characters")
		return
	}

	fmt.Print("Enter Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		fmt.Println("Error: Email is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println() // Newline after password input
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	fmt.Print("Enter Age (default 25): ")
	ageStr, _ := reader.ReadString('\n')
	ageStr = strings.TrimSpace(ageStr)
	age := 25
	if ageStr != "" {
		n, err := strconv.Atoi(ageStr)
		if err != nil || n < 1 || n > 100 {
			fmt.Println("Error: Age must be a number between 1 and 100")
			return
		}
		age = n
	}

	fmt.Print("Enter Class (default Administrator): ")
	class, _ := reader.ReadString('\n')
	class = strings.TrimSpace(class)
	if class == "" {
		class = "Administrator"
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	admin := &model.Account{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Age:          age,
		Class:        class,
		Role:         model.RoleAdmin,
	}

	if err := accountRepo.Create(ctx, admin); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	fmt.Printf("\nSuccess! Admin '%s' (%s) created with ID: %d\n", admin.Name, admin.Email, admin.ID)
}
