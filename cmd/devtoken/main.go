// Command devtoken prints a signed identity token for local testing.
//
//	go run ./cmd/devtoken -email someone@example.com
//	curl --cookie "token=$(go run ./cmd/devtoken -email someone@example.com)" localhost:8080/jobs/someone@example.com
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/rar34/explore-job-server/internal/auth"
	"github.com/rar34/explore-job-server/internal/config"
)

func main() {
	email := flag.String("email", "", "email to put in the token")
	name := flag.String("name", "", "display name to put in the token")
	flag.Parse()

	if *email == "" {
		log.Fatal("missing -email")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	token, err := auth.NewTokenManager(cfg.SecretKey, cfg.TokenTTL).Issue(auth.Identity{Email: *email, Name: *name})
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(token)
}
