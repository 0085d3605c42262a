package run

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xhd2015/less-gen/flags"

	"github.com/bridgekit-ai/aibridge/internal/terminal"
	"github.com/bridgekit-ai/aibridge/manager"
	"github.com/bridgekit-ai/aibridge/server"
	"github.com/bridgekit-ai/aibridge/types"
	"github.com/bridgekit-ai/aibridge/types/models"
	"github.com/bridgekit-ai/aibridge/usagelog"
)

//go:embed VERSION.txt
var version string

//go:embed REVISION.txt
var revision string

const help = `
aibridge route AI requests across providers

Usage: aibridge <cmd> [OPTIONS]

Available commands:
  request <content>               send a request, content can also be piped via stdin
  models                          list known models
  health                          probe every configured provider
  usage                           show recorded usage
  serve                           run the HTTP routing server
  version                         version info
  revision                        revision info
  help                            show help message

Options:
  --task TASK                     task type: summarize, analyze, suggest, classify,
                                  extract, translate, generate (default: generate)
  --model MODEL                   pin an exact model, disables selection and fallback
  --strategy NAME                 selection strategy: balanced, performance, cost,
                                  speed, fallback (default: balanced)
  --prefer-provider NAME          restrict selection to one provider
  --max-cost-usd N                estimated cost ceiling per request, decimal string
  --min-quality N                 worst acceptable quality rank, 1=best 5=basic
  --max-latency DUR               skip providers averaging slower than DUR, e.g. 2s
  --system PROMPT                 override the task's system prompt
  --max-tokens N                  cap the completion length
  --temperature N                 sampling temperature
  --context KEY=VALUE             extra context line, repeatable
  --env-file FILE                 load provider settings from FILE instead of .env
  --usage-db FILE                 record completed requests to a SQLite file
  -c,--config FILE                load request options from a JSON file
  --port N                        serve: listen port (default: 8080)
  -v,--verbose                    show verbose info

Environment:
  AIBRIDGE_OPENAI_API_KEY, AIBRIDGE_ANTHROPIC_API_KEY, AIBRIDGE_GEMINI_API_KEY
  plus optional AIBRIDGE_<PROVIDER>_BASE_URL / _PRIORITY / _DEFAULT_MODEL /
  _RPM / _TPM / _DAILY_BUDGET_USD / _ENABLED

Examples:
  aibridge request --task summarize 'long text here...'
  cat report.txt | aibridge request --task analyze --strategy cost
  aibridge request --task translate --context target_language=French 'hello'
  aibridge request --model gpt-4o-mini 'exactly this model'
  aibridge health
  aibridge usage --usage-db tmp/usage.db
  aibridge serve --port 8080 --usage-db tmp/usage.db
`

type Options struct {
	BaseCmd string
}

func getHelp(baseCmd string) string {
	if baseCmd == "" {
		return help
	}
	return strings.ReplaceAll(help, "aibridge", baseCmd)
}

func Main(args []string, opts Options) error {
	if len(args) == 0 {
		return fmt.Errorf("requires sub command: request, models, health, usage, serve. try `aibridge --help`")
	}
	cmd := args[0]
	args = args[1:]
	if cmd == "help" || cmd == "--help" {
		fmt.Print(strings.TrimPrefix(getHelp(opts.BaseCmd), "\n"))
		return nil
	}
	switch cmd {
	case "request":
		return handleRequest(args, opts.BaseCmd)
	case "models":
		return handleModels(args)
	case "health":
		return handleHealth(args)
	case "usage":
		return handleUsage(args)
	case "serve":
		return handleServe(args)
	case "version":
		fmt.Println(strings.TrimSpace(version))
		return nil
	case "revision":
		fmt.Println(strings.TrimSpace(revision))
		return nil
	default:
		return fmt.Errorf("unrecognized: %s, use 'aibridge help' to see available commands", cmd)
	}
}

func handleRequest(args []string, baseCmd string) error {
	var task string
	var model string
	var strategy string
	var preferProvider string
	var maxCostUSD string
	var minQuality int
	var maxLatency string
	var systemPrompt string
	var maxTokens int
	var temperature string
	var contextPairs []string
	var envFile string
	var usageDB string
	var configFile string
	var verbose bool

	args, err := flags.String("--task", &task).
		String("--model", &model).
		String("--strategy", &strategy).
		String("--prefer-provider", &preferProvider).
		String("--max-cost-usd", &maxCostUSD).
		Int("--min-quality", &minQuality).
		String("--max-latency", &maxLatency).
		String("--system", &systemPrompt).
		Int("--max-tokens", &maxTokens).
		String("--temperature", &temperature).
		StringSlice("--context", &contextPairs).
		String("--env-file", &envFile).
		String("--usage-db", &usageDB).
		String("-c,--config", &configFile).
		Bool("-v,--verbose", &verbose).
		Help("-h,--help", getHelp(baseCmd)).
		Parse(args)
	if err != nil {
		return err
	}

	config, err := LoadConfig(configFile)
	if err != nil {
		return err
	}
	ApplyConfig(config, &task, &model, &strategy, &preferProvider, &maxCostUSD,
		&minQuality, &maxLatency, &systemPrompt, &maxTokens, &temperature,
		&contextPairs, &envFile, &usageDB, &verbose)

	var content string
	if len(args) > 0 {
		content = args[0]
		args = args[1:]
	}
	if len(args) > 0 {
		return fmt.Errorf("unrecognized extra: %s", strings.Join(args, ","))
	}
	if content == "" {
		piped, err := terminal.ReadPipedStdin()
		if err != nil {
			return err
		}
		content = strings.TrimSpace(string(piped))
	}
	if content == "" {
		return fmt.Errorf("requires content, try `aibridge request --help`")
	}

	if task == "" {
		task = string(types.TaskGenerate)
	}
	taskType := types.TaskType(task)
	if !taskType.Valid() {
		return fmt.Errorf("invalid --task: %s, available: %s", task, joinTasks())
	}

	var requestOpts []types.RequestOption
	if systemPrompt != "" {
		requestOpts = append(requestOpts, types.WithSystemPrompt(systemPrompt))
	}
	if maxTokens > 0 {
		requestOpts = append(requestOpts, types.WithMaxTokens(maxTokens))
	}
	if temperature != "" {
		parsed, err := strconv.ParseFloat(temperature, 64)
		if err != nil {
			return fmt.Errorf("invalid --temperature: %s", temperature)
		}
		requestOpts = append(requestOpts, types.WithTemperature(parsed))
	}
	if model != "" {
		requestOpts = append(requestOpts, types.WithModel(model))
	}
	for _, pair := range contextPairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid --context: %s, expect KEY=VALUE", pair)
		}
		requestOpts = append(requestOpts, types.WithContextValue(key, value))
	}
	req := types.NewRequest(taskType, content, requestOpts...)

	crit := types.DefaultCriteria(taskType)
	if strategy != "" {
		crit.Strategy = types.Strategy(strategy)
	}
	crit.PreferProvider = preferProvider
	crit.MaxCostUSD = maxCostUSD
	crit.MinQuality = minQuality
	if maxLatency != "" {
		parsed, err := time.ParseDuration(maxLatency)
		if err != nil {
			return fmt.Errorf("invalid --max-latency: %s", maxLatency)
		}
		crit.MaxLatency = parsed
	}

	ctx := context.Background()
	mgr, cleanup, err := buildManager(ctx, envFile, usageDB, verbose)
	if err != nil {
		return err
	}
	defer cleanup()

	resp, err := mgr.ProcessRequest(ctx, req, crit)
	if err != nil {
		return err
	}

	fmt.Println(resp.Content)
	if verbose {
		return printResponseUsage(resp)
	}
	return nil
}

func handleModels(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unrecognized extra: %s", strings.Join(args, ","))
	}
	return printModelTable(models.GetAllModels())
}

func handleHealth(args []string) error {
	var envFile string
	var verbose bool
	args, err := flags.String("--env-file", &envFile).
		Bool("-v,--verbose", &verbose).
		Parse(args)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		return fmt.Errorf("unrecognized extra: %s", strings.Join(args, ","))
	}

	ctx := context.Background()
	mgr, cleanup, err := buildManager(ctx, envFile, "", verbose)
	if err != nil {
		return err
	}
	defer cleanup()

	health := mgr.CheckAllProviderHealth(ctx)
	for _, id := range mgr.Providers() {
		record := health[id]
		line := fmt.Sprintf("%s: %s", id, record.Status)
		if record.LastError != "" {
			line += fmt.Sprintf(" (%s)", record.LastError)
		}
		fmt.Println(line)
	}
	return nil
}

func handleUsage(args []string) error {
	var usageDB string
	var since string
	args, err := flags.String("--usage-db", &usageDB).
		String("--since", &since).
		Parse(args)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		return fmt.Errorf("unrecognized extra: %s", strings.Join(args, ","))
	}
	if usageDB == "" {
		return fmt.Errorf("requires --usage-db")
	}

	var sinceTime time.Time
	if since != "" {
		dur, err := time.ParseDuration(since)
		if err != nil {
			return fmt.Errorf("invalid --since: %s, expect a duration like 24h", since)
		}
		sinceTime = time.Now().Add(-dur)
	}

	store, err := usagelog.Open(usageDB)
	if err != nil {
		return err
	}
	defer store.Close()

	summaries, err := store.Summarize(context.Background(), sinceTime)
	if err != nil {
		return err
	}
	return printUsageTable(summaries)
}

func handleServe(args []string) error {
	var port int
	var envFile string
	var usageDB string
	var verbose bool
	args, err := flags.String("--env-file", &envFile).
		Int("--port", &port).
		String("--usage-db", &usageDB).
		Bool("-v,--verbose", &verbose).
		Parse(args)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		return fmt.Errorf("unrecognized extra: %s", strings.Join(args, ","))
	}
	if port == 0 {
		port = 8080
	}

	ctx := context.Background()
	mgr, cleanup, err := buildManager(ctx, envFile, usageDB, verbose)
	if err != nil {
		return err
	}
	defer cleanup()

	return server.Start(port, mgr, server.ServerOptions{Verbose: verbose})
}

func buildManager(ctx context.Context, envFile string, usageDB string, verbose bool) (*manager.Manager, func(), error) {
	cfg, err := manager.LoadConfigFromEnv(envFile)
	if err != nil {
		return nil, nil, err
	}

	opts := []manager.Option{}
	if verbose {
		opts = append(opts, manager.WithLogger(stderrLogger))
	}

	cleanup := func() {}
	if usageDB != "" {
		store, err := usagelog.Open(usageDB)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, manager.WithUsageStore(store))
		cleanup = func() {
			store.Close()
		}
	}

	mgr, err := manager.New(ctx, cfg, opts...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return mgr, cleanup, nil
}

var stderrLogger = types.LoggerFunc(func(ctx context.Context, logType types.LogType, format string, logArgs ...interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", logType, fmt.Sprintf(format, logArgs...))
})

func joinTasks() string {
	names := make([]string, 0, len(types.AllTasks))
	for _, task := range types.AllTasks {
		names = append(names, string(task))
	}
	return strings.Join(names, ", ")
}
