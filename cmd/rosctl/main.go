// rosctl runs one RouterOS API command against a router and prints the
// result rows.
//
// Usage:
//
//	rosctl [-config rosctl.toml] [-address host:port] [-user name] [-password pw] /path/word [=attr=value ...] [?query=value ...]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/edgewire/routeros"
	"github.com/edgewire/routeros/internal/logging"
	"github.com/edgewire/routeros/proto"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "rosctl: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("rosctl", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a TOML config file")
	address := fs.String("address", "", "router address as host:port")
	user := fs.String("user", "", "login name; no login is attempted when empty")
	password := fs.String("password", "", "login password")
	timeout := fs.Duration("timeout", 0, "per-command timeout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	words := fs.Args()
	if len(words) == 0 {
		return fmt.Errorf("command words required, e.g. /interface/print")
	}
	if !strings.HasPrefix(words[0], "/") {
		return fmt.Errorf("first word must be a command path, got %q", words[0])
	}

	logger := logging.ConfigureRuntime()

	cfg := routeros.Config{}
	if *configPath != "" {
		loaded, err := routeros.LoadConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *address != "" {
		cfg.Address = *address
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	cfg.Logger = &logger

	client, err := routeros.Dial(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *user != "" {
		if err := client.Login(ctx, *user, *password); err != nil {
			return err
		}
	}

	sentences, err := client.Run(ctx, words...)
	if err != nil {
		return err
	}
	res := proto.ParseReply(sentences)
	if !res.Success {
		return fmt.Errorf("router: %s", res.Message)
	}
	printRows(os.Stdout, res.Data)
	return nil
}

func printRows(out *os.File, rows []proto.Row) {
	for i, row := range rows {
		keys := make([]string, 0, len(row))
		for key := range row {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		fmt.Fprintf(out, "row %d\n", i)
		for _, key := range keys {
			fmt.Fprintf(out, "  %s=%s\n", key, row[key])
		}
	}
}
