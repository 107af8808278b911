// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Viktor Krasov

// Command authctl is a small command-line client for the veriauth HTTP API.
//
// Usage:
//
//	authctl [-addr host:port] <command> [arguments]
//
// The server address defaults to the VERIAUTH_ADDRESS environment variable.
// Commands that need authentication read the bearer token from the
// VERIAUTH_TOKEN environment variable; login prints a fresh token to stdout
// so it can be exported.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vkrasov/veriauth/internal/adapter"
	"github.com/vkrasov/veriauth/internal/logger"
	"github.com/vkrasov/veriauth/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const defaultTimeout = 10 * time.Second

func main() {
	addr := flag.String("addr", os.Getenv("VERIAUTH_ADDRESS"), "server address (host:port or URL)")
	verbose := flag.Bool("v", false, "enable debug logging")
	showBuild := flag.Bool("build-info", false, "print build information and exit")
	flag.Usage = usage
	flag.Parse()

	if *showBuild {
		printBuildInfo()
		return
	}

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	log := logger.Nop()
	if *verbose {
		log = logger.NewLogger("authctl")
	}

	srv, err := adapter.NewHTTPServerAdapter(*addr, defaultTimeout, log)
	if err != nil {
		fail("connect: %v", err)
	}
	if token := os.Getenv("VERIAUTH_TOKEN"); token != "" {
		srv.SetToken(token)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err = runCommand(ctx, srv, flag.Arg(0), flag.Args()[1:]); err != nil {
		fail("%v", err)
	}
}

func runCommand(ctx context.Context, srv adapter.ServerAdapter, command string, args []string) error {
	switch command {
	case "register":
		return register(ctx, srv, args)
	case "verify":
		return verify(ctx, srv, args)
	case "resend":
		return resend(ctx, srv, args)
	case "status":
		return status(ctx, srv, args)
	case "login":
		return login(ctx, srv, args)
	case "forgot":
		return forgot(ctx, srv, args)
	case "reset":
		return reset(ctx, srv, args)
	case "me":
		return me(ctx, srv)
	case "users":
		return users(ctx, srv)
	case "version":
		return serverVersion(ctx, srv)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func register(ctx context.Context, srv adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	msg, err := srv.Register(ctx, models.RegisterRequest{
		Username: *username,
		Email:    *email,
		Password: *password,
	})
	if err != nil {
		return err
	}

	fmt.Println(msg.Message)
	return nil
}

func verify(ctx context.Context, srv adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	code := fs.String("code", "", "verification code from the email")
	_ = fs.Parse(args)

	msg, err := srv.VerifyEmail(ctx, models.VerifyRequest{
		Email:            *email,
		VerificationCode: *code,
	})
	if err != nil {
		return err
	}

	fmt.Println(msg.Message)
	return nil
}

func resend(ctx context.Context, srv adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("resend", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	_ = fs.Parse(args)

	msg, err := srv.ResendVerification(ctx, *email)
	if err != nil {
		return err
	}

	fmt.Println(msg.Message)
	return nil
}

func status(ctx context.Context, srv adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	_ = fs.Parse(args)

	st, err := srv.VerificationStatus(ctx, *email)
	if err != nil {
		return err
	}

	fmt.Printf("email:  %s\n", st.Email)
	fmt.Printf("status: %s\n", st.Status)
	if st.ExpiresAt != "" {
		fmt.Printf("code expires at: %s\n", st.ExpiresAt)
	}
	return nil
}

func login(ctx context.Context, srv adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "account username")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	token, err := srv.Login(ctx, models.LoginRequest{
		Username: *username,
		Password: *password,
	})
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}

func forgot(ctx context.Context, srv adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("forgot", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	_ = fs.Parse(args)

	msg, err := srv.ForgotPassword(ctx, *email)
	if err != nil {
		return err
	}

	fmt.Println(msg.Message)
	return nil
}

func reset(ctx context.Context, srv adapter.ServerAdapter, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ExitOnError)
	token := fs.String("token", "", "reset token from the email link")
	password := fs.String("password", "", "new password")
	_ = fs.Parse(args)

	msg, err := srv.ResetPassword(ctx, *token, *password)
	if err != nil {
		return err
	}

	fmt.Println(msg.Message)
	return nil
}

func me(ctx context.Context, srv adapter.ServerAdapter) error {
	user, err := srv.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("id:       %d\n", user.ID)
	fmt.Printf("username: %s\n", user.Username)
	fmt.Printf("email:    %s\n", user.Email)
	return nil
}

func users(ctx context.Context, srv adapter.ServerAdapter) error {
	list, err := srv.Users(ctx)
	if err != nil {
		return err
	}

	for _, user := range list {
		fmt.Printf("%d\t%s\t%s\n", user.ID, user.Username, user.Email)
	}
	return nil
}

func serverVersion(ctx context.Context, srv adapter.ServerAdapter) error {
	version, err := srv.ServerVersion(ctx)
	if err != nil {
		return err
	}

	fmt.Println(version)
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: authctl [-addr host:port] <command> [arguments]

Commands:
  register  -username U -email E -password P   create an account
  verify    -email E -code C                   confirm the email code
  resend    -email E                           request a fresh code
  status    -email E                           show verification state
  login     -username U -password P            authenticate, print the token
  forgot    -email E                           request a reset link
  reset     -token T -password P               set a new password
  me                                           show the authenticated account
  users                                        list verified accounts
  version                                      show the server version

The bearer token for "me" and "users" is read from VERIAUTH_TOKEN.
`)
	flag.PrintDefaults()
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
