// Command token mints a bearer token accepted by the server's write guard,
// or hashes an operator password for ADMIN_PASSWORD_HASH.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"transit_api/internal/controllers"
	"transit_api/internal/middleware"
)

func main() {
	secret := pflag.String("secret", os.Getenv("JWT_SECRET"), "signing secret (defaults to $JWT_SECRET)")
	subject := pflag.String("subject", "operator", "token subject")
	ttl := pflag.Duration("ttl", 24*time.Hour, "token lifetime")
	password := pflag.String("hash-password", "", "print the bcrypt hash of this password instead of a token")
	pflag.Parse()

	if *password != "" {
		hash, err := controllers.HashPassword(*password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "token: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "token: no secret given; pass --secret or set JWT_SECRET")
		os.Exit(2)
	}

	tok, err := middleware.GenerateToken([]byte(*secret), *subject, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
