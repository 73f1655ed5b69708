package main

import (
	"fmt"
	"log"
	"os"
	"syscall"

	"dental_care_app_go/services"

	"golang.org/x/term"
)

// Prints a bcrypt hash for ADMIN_PASSWORD_HASH.
func main() {
	fmt.Fprintln(os.Stderr, "=== Lead Inbox Password ===")
	fmt.Fprintln(os.Stderr)

	// Get password securely
	fmt.Fprint(os.Stderr, "Password: ")
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	fmt.Fprintln(os.Stderr)

	fmt.Fprint(os.Stderr, "Confirm password: ")
	confirmBytes, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatalf("Failed to read password: %v", err)
	}
	fmt.Fprintln(os.Stderr)

	password := string(passwordBytes)
	if err := services.ValidatePassword(password); err != nil {
		log.Fatal(err)
	}
	if password != string(confirmBytes) {
		log.Fatal("Passwords do not match")
	}

	hashedPassword, err := services.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	fmt.Fprintln(os.Stderr, "Set this value as ADMIN_PASSWORD_HASH:")
	fmt.Println(hashedPassword)
}
