package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	redis "github.com/damianof/then-redis"
	"github.com/damianof/then-redis/resp"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redis-cli",
		Short: "Interactive command line client for a Redis server",
		Long: "redis-cli connects to a single Redis server and sends commands\n" +
			"typed on stdin, printing each reply. Pub/sub and monitor output\n" +
			"is printed as it arrives.",
		SilenceUsage: true,
		RunE:         run,
	}

	flags := cmd.Flags()
	flags.String("url", "", "connection url (scheme://[db:password@]host:port), overrides host/port flags")
	flags.String("host", redis.DefaultHost, "server host")
	flags.Int("port", redis.DefaultPort, "server port")
	flags.String("password", "", "AUTH password sent during the handshake")
	flags.Int("database", 0, "database index selected during the handshake")
	flags.Duration("timeout", 0, "socket idle timeout, 0 disables")

	viper.SetEnvPrefix("redis")
	viper.AutomaticEnv()
	_ = viper.BindPFlags(flags)

	return cmd
}

func resolveConfig() (*redis.Config, error) {
	if rawURL := viper.GetString("url"); rawURL != "" {
		return redis.ParseURL(rawURL)
	}

	cfg := redis.DefaultConfig()
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.Password = viper.GetString("password")
	cfg.Database = viper.GetInt("database")
	cfg.Timeout = viper.GetDuration("timeout")
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	client := redis.NewClient(cfg)
	defer client.Close()

	client.OnEvent(printEvent)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := client.Connect().Result(ctx); err != nil {
		return fmt.Errorf("connect %s: %w", cfg.Addr(), err)
	}

	fmt.Printf("Connected to %s. Type a command, or 'quit' to exit.\n", cfg.Addr())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("%s> ", cfg.Addr())
		if !scanner.Scan() {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if name := strings.ToLower(fields[0]); name == "quit" || name == "exit" {
			return nil
		}

		cmdArgs := make([]any, len(fields)-1)
		for i, f := range fields[1:] {
			cmdArgs[i] = f
		}

		callCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		reply, err := client.Send(fields[0], cmdArgs...).Result(callCtx)
		cancel()
		if err != nil {
			fmt.Printf("(error) %v\n", err)
			continue
		}
		printReply(reply, "")
	}

	return scanner.Err()
}

func printEvent(ev redis.Event) {
	switch ev.Kind {
	case redis.EventMessage:
		fmt.Printf("\n[message %s] %s\n", ev.Channel, ev.Payload)
	case redis.EventPMessage:
		fmt.Printf("\n[pmessage %s %s] %s\n", ev.Pattern, ev.Channel, ev.Payload)
	case redis.EventSubscribe, redis.EventUnsubscribe:
		fmt.Printf("\n[%s %s] %d active\n", ev.Kind, ev.Channel, ev.Count)
	case redis.EventPSubscribe, redis.EventPUnsubscribe:
		fmt.Printf("\n[%s %s] %d active\n", ev.Kind, ev.Pattern, ev.Count)
	case redis.EventMonitor:
		fmt.Printf("\n[monitor] %s\n", ev.Line)
	case redis.EventError:
		fmt.Fprintf(os.Stderr, "\n[error] %v\n", ev.Err)
	case redis.EventClose:
		fmt.Println("\n[connection closed]")
	}
}

func printReply(reply *resp.Reply, indent string) {
	switch reply.Type {
	case resp.TypeStatus:
		fmt.Printf("%s%s\n", indent, reply.Str)
	case resp.TypeInteger:
		fmt.Printf("%s(integer) %d\n", indent, reply.Int)
	case resp.TypeBulk:
		fmt.Printf("%s%s\n", indent, strconv.Quote(string(reply.Bulk)))
	case resp.TypeNil:
		fmt.Printf("%s(nil)\n", indent)
	case resp.TypeError:
		fmt.Printf("%s(error) %s\n", indent, reply.Str)
	case resp.TypeArray:
		if len(reply.Elems) == 0 {
			fmt.Printf("%s(empty array)\n", indent)
			return
		}
		for i, elem := range reply.Elems {
			fmt.Printf("%s%d) ", indent, i+1)
			printReply(elem, "")
		}
	}
}
