// =============================================================================
// roundtable 主入口
// =============================================================================
// 让若干角色智能体围绕同一个补全端点进行多轮对话
//
// 使用方法:
//
//	roundtable sequential                     # 喜剧演员依次讲笑话
//	roundtable concurrent -rounds 3           # 喜剧演员并发讲笑话
//	roundtable jury                           # 喜剧演员 + 评委
//	roundtable conversation                   # 三位前总统共享历史闲聊
//	roundtable debate -config debate.yaml     # 主持人 + 候选人 + 观众
//	roundtable version                        # 显示版本信息
// =============================================================================

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/BaSui01/roundtable/agent/conversation"
	"github.com/BaSui01/roundtable/config"
	"github.com/BaSui01/roundtable/internal/console"
)

// =============================================================================
// 📦 版本信息（构建时注入）
// =============================================================================

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// commands 子命令到场景的映射
var commands = map[string]conversation.Scenario{
	"sequential":   conversation.ScenarioSequential,
	"concurrent":   conversation.ScenarioConcurrent,
	"jury":         conversation.ScenarioJury,
	"conversation": conversation.ScenarioConversation,
	"debate":       conversation.ScenarioDebate,
}

// =============================================================================
// 🎯 主函数
// =============================================================================

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run 执行一条命令并返回进程退出码
func run(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...appOption) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "version":
		printVersion(stdout)
		return 0
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	}

	scenario, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[0])
		printUsage(stderr)
		return 1
	}
	return runScenario(ctx, scenario, args[1:], stdout, stderr, opts...)
}

// =============================================================================
// 🎭 场景命令
// =============================================================================

func runScenario(ctx context.Context, scenario conversation.Scenario, args []string, stdout, stderr io.Writer, opts ...appOption) int {
	fs := flag.NewFlagSet(string(scenario), flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to config file (YAML)")
	rounds := fs.Int("rounds", 0, "Number of rounds (overrides scenario.rounds)")
	envFile := fs.String("env-file", ".env", "Path to .env file, ignored when missing")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.NewLoader().
		WithConfigPath(*configPath).
		WithDotEnv(*envFile).
		Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "rounds" {
			cfg.Scenario.Rounds = *rounds
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid config: %v\n", err)
		return 1
	}

	logger := initLogger(cfg.Log, stderr)
	defer func() { _ = logger.Sync() }()

	app, err := newApp(cfg, logger, opts...)
	if err != nil {
		logger.Error("startup failed", zap.Error(err))
		return 1
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Close(closeCtx); err != nil {
			logger.Warn("shutdown incomplete", zap.Error(err))
		}
	}()

	printer := console.New(stdout)
	session := conversation.NewSession(scenario, printer, logger).
		WithRecorder(app.recorder).
		WithObserver(app.metrics)

	logger.Info("run started",
		zap.String("scenario", string(scenario)),
		zap.String("run_id", session.RunID),
		zap.Int("rounds", cfg.Scenario.Rounds),
		zap.String("version", Version),
	)

	if err := app.play(ctx, session); err != nil {
		logger.Error("run failed",
			zap.String("run_id", session.RunID),
			zap.Int("turns", session.Turns()),
			zap.Error(err),
		)
		return 1
	}

	printer.Elapsed(session.Elapsed())
	if err := printer.Err(); err != nil {
		logger.Error("write transcript", zap.Error(err))
		return 1
	}
	return 0
}

// =============================================================================
// 📋 版本和帮助
// =============================================================================

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "roundtable %s\n", Version)
	fmt.Fprintf(w, "  Build Time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Git Commit: %s\n", GitCommit)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `roundtable - persona agents taking turns

Usage:
  roundtable <command> [options]

Commands:
  sequential    Comedians tell jokes one after another
  concurrent    Comedians tell jokes concurrently each round
  jury          Comedians tell jokes, a judge picks the best
  conversation  Former presidents share one rolling conversation
  debate        Moderated debate with two candidates and an audience
  version       Show version information
  help          Show this help message

Options:
  -config <path>    Path to configuration file (YAML)
  -rounds <n>       Number of rounds (default 2)
  -env-file <path>  .env file to load (default .env)

Environment:
  OPENAI_API_KEY    API key for the completion endpoint
  ROUNDTABLE_*      Overrides for any config field, e.g. ROUNDTABLE_LLM_MODEL`)
}
