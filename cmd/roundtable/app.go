package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BaSui01/roundtable/agent"
	agentcontext "github.com/BaSui01/roundtable/agent/context"
	"github.com/BaSui01/roundtable/agent/conversation"
	"github.com/BaSui01/roundtable/agent/deliberation"
	"github.com/BaSui01/roundtable/agent/persistence"
	"github.com/BaSui01/roundtable/agent/roster"
	"github.com/BaSui01/roundtable/config"
	"github.com/BaSui01/roundtable/internal/metrics"
	"github.com/BaSui01/roundtable/internal/server"
	"github.com/BaSui01/roundtable/internal/telemetry"
	"github.com/BaSui01/roundtable/llm"
	"github.com/BaSui01/roundtable/llm/providers"
	"github.com/BaSui01/roundtable/llm/providers/openai"
	"github.com/BaSui01/roundtable/llm/tokenizer"
)

// =============================================================================
// 🧩 运行期依赖装配
// =============================================================================

// App 持有一次运行所需的全部依赖
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	provider llm.Provider
	window   agent.ContextManager
	recorder persistence.Recorder

	metrics       *metrics.Collector
	metricsServer *server.Manager
	otel          *telemetry.Providers
}

type appOptions struct {
	provider llm.Provider
}

// appOption 调整装配过程，测试用来注入 Provider
type appOption func(*appOptions)

func withProvider(p llm.Provider) appOption {
	return func(o *appOptions) { o.provider = p }
}

func newApp(cfg *config.Config, logger *zap.Logger, opts ...appOption) (*App, error) {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{cfg: cfg, logger: logger}

	a.metrics = metrics.NewCollector(cfg.Metrics.Namespace, logger)
	if cfg.Metrics.Addr != "" {
		srvCfg := server.DefaultConfig()
		srvCfg.Addr = cfg.Metrics.Addr
		a.metricsServer = server.NewManager(server.MetricsMux(a.metrics.Handler()), srvCfg, logger)
		if err := a.metricsServer.Start(); err != nil {
			return nil, fmt.Errorf("start metrics endpoint: %w", err)
		}
	}

	otelProviders, err := telemetry.Init(cfg.Telemetry, logger)
	if err != nil {
		logger.Warn("failed to initialize telemetry", zap.Error(err))
	}
	a.otel = otelProviders

	base := o.provider
	if base == nil {
		base = openai.NewOpenAIProvider(providers.OpenAIConfig{
			BaseProviderConfig: providers.BaseProviderConfig{
				APIKey:  cfg.LLM.APIKey,
				BaseURL: cfg.LLM.BaseURL,
				Model:   cfg.LLM.Model,
				Timeout: cfg.LLM.Timeout,
			},
			Organization: cfg.LLM.Organization,
		}, logger)
	}
	a.provider = llm.Wrap(base, a.middleware(base.Name()))

	a.recorder, err = persistence.NewRecorder(cfg.Recorder, logger)
	if err != nil {
		_ = a.Close(context.Background())
		return nil, fmt.Errorf("open recorder: %w", err)
	}

	if cfg.Scenario.Window.Enabled() {
		tok, err := tokenizer.New(cfg.Scenario.Tokenizer, cfg.LLM.Model)
		if err != nil {
			_ = a.Close(context.Background())
			return nil, fmt.Errorf("tokenizer: %w", err)
		}
		var summarizer agentcontext.Summarizer
		if cfg.Scenario.Window.Strategy == agentcontext.StrategySummarize {
			summarizer = &agentcontext.ProviderSummarizer{Provider: a.provider, Model: cfg.LLM.Model}
		}
		a.window = agentcontext.NewWindowManager(cfg.Scenario.Window, tok, summarizer, logger)
	}
	return a, nil
}

// middleware 组装补全调用链，第一个最外层
func (a *App) middleware(providerName string) *llm.Chain {
	c := a.cfg.LLM
	chain := llm.NewChain(
		llm.LoggingMiddleware(a.logger),
		llm.TracingMiddleware(a.otel.Tracer()),
		llm.MetricsMiddleware(providerName, a.metrics),
	)
	if c.MaxRetries > 0 {
		chain.Use(llm.RetryMiddleware(llm.NewRetryer(c.MaxRetries, a.logger)))
	}
	if c.RateLimitRPS > 0 {
		burst := c.RateLimitBurst
		if burst <= 0 {
			burst = 1
		}
		chain.Use(llm.RateLimitMiddleware(rate.NewLimiter(rate.Limit(c.RateLimitRPS), burst)))
	}
	chain.Use(llm.TimeoutMiddleware(c.Timeout))
	chain.Use(llm.EmptyCompletionGuard())
	return chain
}

func (a *App) rosterOptions() roster.Options {
	return roster.Options{
		Provider: a.provider,
		Model:    a.cfg.LLM.Model,
		Context:  a.window,
		Logger:   a.logger,
	}
}

// play 按场景组装阵容并运行
func (a *App) play(ctx context.Context, s *conversation.Session) error {
	sc := a.cfg.Scenario
	cast := sc.Roster()
	o := a.rosterOptions()

	var err error
	switch s.Scenario {
	case conversation.ScenarioSequential, conversation.ScenarioConcurrent:
		var comedians []*agent.Agent
		if comedians, err = cast.ComedianAgents(o); err != nil {
			return err
		}
		d := &conversation.Independent{
			Agents:     comedians,
			Prompt:     sc.Prompt,
			Rounds:     sc.Rounds,
			Concurrent: s.Scenario == conversation.ScenarioConcurrent,
		}
		_, err = d.Run(ctx, s)

	case conversation.ScenarioJury:
		comedians, judge, buildErr := cast.JuryPanel(o)
		if buildErr != nil {
			return buildErr
		}
		d := &conversation.Jury{Comedians: comedians, Judge: judge, Prompt: sc.Prompt, Rounds: sc.Rounds}
		_, err = d.Run(ctx, s)

	case conversation.ScenarioConversation:
		var table []*agent.Agent
		if table, err = cast.Table(o); err != nil {
			return err
		}
		d := &conversation.SharedHistory{Agents: table, Rounds: sc.Rounds}
		_, err = d.Run(ctx, s)

	case conversation.ScenarioDebate:
		stage, buildErr := cast.DebateStage(o)
		if buildErr != nil {
			return buildErr
		}
		d := &deliberation.Debate{
			Moderator:  stage.Moderator,
			Candidates: stage.Candidates,
			Audience:   stage.Audience,
			Rounds:     sc.Rounds,
			Rebuttals:  deliberation.RebuttalCount(sc.Rebuttals),
		}
		_, err = d.Run(ctx, s)

	default:
		return fmt.Errorf("unknown scenario %q", s.Scenario)
	}
	return err
}

// Close 释放录制器、指标端点与遥测
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close recorder: %w", err))
		}
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.otel.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
