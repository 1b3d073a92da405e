// Command connect links a social account from the terminal by driving the
// same connect flow the dashboard runs.
//
// Usage:
//
//	connect [flags] <platform>      connect an account
//	connect [flags] list            list connected accounts
//	connect [flags] disconnect <id> remove an account
//
// The access token is read from -token or EWASL_ACCESS_TOKEN (a .env file
// in the working directory is loaded first).
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/heartmarshall/ewasl-backend/internal/connect"
	"github.com/heartmarshall/ewasl-backend/internal/domain"
)

func main() {
	_ = godotenv.Load()

	apiURL := flag.String("api", envOr("EWASL_API_URL", "http://localhost:8080"), "API base URL")
	token := flag.String("token", os.Getenv("EWASL_ACCESS_TOKEN"), "dashboard access token")
	timeout := flag.Duration("timeout", connect.DefaultTimeout, "how long to wait for the provider")
	manual := flag.Bool("manual", false, "for redirect platforms, paste the landing URL instead of polling")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: connect [flags] <platform> | list | disconnect <id>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	if *token == "" {
		fmt.Fprintln(os.Stderr, "an access token is required (-token or EWASL_ACCESS_TOKEN)")
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := connect.NewHTTPAPI(*apiURL, *token, &http.Client{Timeout: 30 * time.Second})
	accounts := connect.NewAccountList(api)
	ctrl := connect.NewController(api, newTerminal(os.Stdout), connect.NewMemoryStaging(), accounts,
		connect.WithTimeout(*timeout),
		connect.WithAwaitRedirects(!*manual),
		connect.WithLogger(logger),
	)

	var err error
	switch args := flag.Args(); args[0] {
	case "list":
		err = list(ctx, accounts)
	case "disconnect":
		if len(args) < 2 {
			flag.Usage()
			os.Exit(2)
		}
		err = disconnect(ctx, ctrl, args[1])
	default:
		err = link(ctx, ctrl, args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
}

func link(ctx context.Context, ctrl *connect.Controller, name string) error {
	p, err := domain.ParsePlatform(name)
	if err != nil {
		return err
	}

	res, err := ctrl.Connect(ctx, p)
	if res != nil && res.State == domain.ConnectConnecting {
		fmt.Println("Paste the URL your browser landed on:")
		line, rerr := readLine(ctx)
		if rerr != nil {
			return rerr
		}
		res, err = ctrl.Resolve(ctx, line)
	}
	if err != nil {
		if res != nil && res.Message() != "" {
			return errors.New(res.Message())
		}
		return err
	}

	fmt.Printf("Connected %s as %s (%s)\n", res.Platform, res.Account.Username, res.Account.ID)
	return nil
}

func list(ctx context.Context, accounts *connect.AccountList) error {
	items, err := accounts.Get(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No connected accounts.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPLATFORM\tUSERNAME\tSTATUS")
	for _, a := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.ID, a.Platform, a.Username, a.Status)
	}
	return tw.Flush()
}

func disconnect(ctx context.Context, ctrl *connect.Controller, raw string) error {
	id, err := uuid.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid account id %q", raw)
	}
	if err := ctrl.Disconnect(ctx, id); err != nil {
		return errors.New(domain.ErrorMessage(domain.CodeOf(err)))
	}
	fmt.Printf("Disconnected %s\n", id)
	return nil
}

// readLine reads one line from stdin or gives up when ctx ends.
func readLine(ctx context.Context) (string, error) {
	lines := make(chan string, 1)
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		if sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lines:
		if !ok {
			return "", errors.New("no URL given")
		}
		return line, nil
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
