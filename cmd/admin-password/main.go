package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/pawar-yoga/studio-backend/pkg/config"
	"github.com/pawar-yoga/studio-backend/pkg/logger"
	"github.com/pawar-yoga/studio-backend/pkg/security"
)

// admin-password prints the argon2id hash to put in YOGA_ADMIN_PASSWORD_HASH.
// The password is read from -password or, when omitted, the first line of
// stdin.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "admin-password", Format: "console", Output: os.Stderr})

	_ = godotenv.Load()

	password := flag.String("password", "", "admin password to hash (reads stdin when empty)")
	flag.Parse()

	cfg, err := config.LoadPasswordConfig()
	if err != nil {
		logg.Error(ctx, "failed to load password config", err)
		os.Exit(1)
	}

	plain := *password
	if plain == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			logg.Error(ctx, "failed to read password from stdin", err)
			os.Exit(1)
		}
		plain = strings.TrimRight(line, "\r\n")
	}

	hash, err := security.HashPassword(plain, cfg)
	if err != nil {
		logg.Error(ctx, "failed to hash password", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
