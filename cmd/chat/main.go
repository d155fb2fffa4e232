// Command chat runs the support assistant in a terminal, in process,
// against the configured completion backend and profile store.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"maplemed-support-be/internal/bootstrap"
	"maplemed-support-be/internal/config"
	"maplemed-support-be/internal/dto"
	"maplemed-support-be/internal/pkg/logger"
	"maplemed-support-be/internal/service"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	userID  string
	logFile string

	botColor    = color.New(color.FgCyan)
	alertColor  = color.New(color.FgRed, color.Bold)
	systemColor = color.New(color.FgYellow)
)

var rootCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the MapleMed support assistant",
	Long: `Interactive support chat. Commands:
  /reset      clear this session's memory
  /mood       show your mood summary
  /exercises  suggest exercises for your current profile
  /quit       leave`,
	RunE: runChat,
}

func init() {
	rootCmd.Flags().StringVarP(&userID, "user", "u", "local-user", "user id the profile is stored under")
	rootCmd.Flags().StringVar(&logFile, "log-file", "logs/chat-cli.log", "where diagnostic logs go")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	// file only, so logs don't interleave with the conversation
	sysLogger := logger.NewIsolatedLogger(logFile)
	defer sysLogger.Sync()

	container, err := bootstrap.NewContainer(cfg, sysLogger)
	if err != nil {
		return err
	}
	defer container.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := container.ConsumerService.Consume(ctx); err != nil {
		return err
	}

	return runREPL(ctx, container.SupportService, userID, cmd.InOrStdin(), cmd.OutOrStdout())
}

func runREPL(ctx context.Context, svc service.ISupportService, user string, in io.Reader, out io.Writer) error {
	session, err := svc.CreateSession(ctx, &dto.CreateSessionRequest{UserId: user})
	if err != nil {
		return err
	}

	systemColor.Fprintln(out, "🍁 MapleMed support. Type /quit to leave.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return nil

		case "/reset":
			if err := svc.ResetSession(ctx, session.SessionId); err != nil {
				return err
			}
			systemColor.Fprintln(out, "Session memory cleared.")

		case "/mood":
			mood, err := svc.GetMood(ctx, user)
			if err != nil {
				return err
			}
			for _, e := range mood.Entries {
				systemColor.Fprintf(out, "%-8s %s\n", e.Category+":", e.Value)
			}

		case "/exercises":
			res, err := svc.SuggestExercises(ctx, user)
			if err != nil {
				return err
			}
			botColor.Fprintln(out, res.Response)

		default:
			res, err := svc.SendMessage(ctx, &dto.SendMessageRequest{
				SessionId: session.SessionId,
				UserId:    user,
				Message:   line,
			})
			if err != nil {
				return err
			}
			if res.Override {
				alertColor.Fprintln(out, res.Response)
			} else {
				botColor.Fprintln(out, res.Response)
			}
		}
	}
}
