package main

// ---------------------------------------------------------------------------
// cmd_triage.go — the ack and resolve workflows
//
// Both commands run the same workflow; only the action, the selection
// criteria, and the batch size differ. Acknowledge additionally restricts
// to unacknowledged incidents so already-acknowledged ones are never
// re-presented to the operator.
//
// Usage:
//   cxtriage ack     [--region eu1] [--batch-size 10] [--yes] [--dry-run]
//   cxtriage resolve [--region eu1] [--batch-size 10] [--yes] [--dry-run]
// ---------------------------------------------------------------------------

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cxtriage-project/cxtriage/internal/triage"
)

func cmdAck(args []string) {
	runTriage("ack", triage.ActionAcknowledge, args)
}

func cmdResolve(args []string) {
	runTriage("resolve", triage.ActionResolve, args)
}

// triageFlags holds the flag values shared by every workflow command.
type triageFlags struct {
	configPath string
	region     string
	apiKey     string
	batchSize  int
	timeout    string
	assumeYes  bool
	dryRun     bool
	logLevel   string
	logFormat  string
}

// registerTriageFlags wires the shared flags onto a FlagSet.
func registerTriageFlags(fs *flag.FlagSet, tf *triageFlags) {
	fs.StringVar(&tf.configPath, "config", "", "Config file path")
	fs.StringVar(&tf.region, "region", "", "Coralogix region: us1, us2, eu1, eu2, ap1, ap2, ap3")
	fs.StringVar(&tf.apiKey, "api-key", "", "Coralogix API key (Alerts, Rules and Tags key)")
	fs.IntVar(&tf.batchSize, "batch-size", 0, "Incident IDs per mutating call")
	fs.StringVar(&tf.timeout, "timeout", "", "Per-call timeout (e.g. 60s)")
	fs.BoolVar(&tf.assumeYes, "yes", false, "Skip the confirmation prompt (non-interactive)")
	fs.BoolVar(&tf.dryRun, "dry-run", false, "Preview only; make no mutating calls")
	fs.StringVar(&tf.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&tf.logFormat, "log-format", "", "Log format: console, json")
}

// runEnv is everything a workflow command needs after config resolution.
type runEnv struct {
	cfg      *triage.Config
	region   string
	client   *triage.Client
	mutator  *triage.Mutator
	workflow *triage.Workflow
	audit    *triage.AuditPublisher
}

// buildRunEnv resolves configuration (flag > env > config file > default),
// validates it, and wires the workflow collaborators. Fatal problems exit
// with code 1 before any network activity.
func buildRunEnv(tf triageFlags) *runEnv {
	cfg, err := triage.LoadConfig(envConfig(tf.configPath))
	if err != nil {
		errorf("%v", err)
	}

	region := firstOf(envRegion(tf.region), cfg.API.Region)
	endpoint, err := triage.RegionEndpoint(region)
	if err != nil {
		errorf("%v", err)
	}

	apiKey := firstOf(envAPIKey(tf.apiKey), cfg.API.Key)
	if apiKey == "" {
		errorf("API key required — pass --api-key or set CXTRIAGE_API_KEY")
	}

	timeout := cfg.API.CallTimeout
	if tf.timeout != "" {
		timeout, err = time.ParseDuration(tf.timeout)
		if err != nil {
			errorf("invalid timeout %q: %v", tf.timeout, err)
		}
	}

	if tf.logLevel != "" {
		cfg.Logging.Level = tf.logLevel
	}
	if tf.logFormat != "" {
		cfg.Logging.Format = tf.logFormat
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, red("error: ")+"%v\n", e)
		}
		os.Exit(1)
	}

	logger := cfg.NewLogger()
	invoker := triage.NewGrpcurlInvoker(endpoint, apiKey, timeout, logger)
	if err := invoker.Probe(); err != nil {
		errorf("%v", err)
	}

	client := triage.NewClient(invoker, cfg.API.MaxPages, logger)
	mutator := triage.NewMutator(client, logger)

	var prompter triage.Prompter
	if tf.assumeYes {
		prompter = &triage.AutoPrompter{Out: os.Stdout}
	} else {
		prompter = &triage.StdinPrompter{In: os.Stdin, Out: os.Stdout}
	}

	return &runEnv{
		cfg:     cfg,
		region:  region,
		client:  client,
		mutator: mutator,
		workflow: &triage.Workflow{
			Client:   client,
			Mutator:  mutator,
			Prompter: prompter,
			Out:      os.Stdout,
			Logger:   logger,
		},
		audit: triage.NewAuditPublisher(cfg.Audit, logger),
	}
}

func runTriage(name string, action triage.Action, args []string) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var tf triageFlags
	registerTriageFlags(fs, &tf)
	fs.Parse(args)

	env := buildRunEnv(tf)

	batchSize := envBatchSize(tf.batchSize)
	if batchSize == 0 {
		batchSize = env.cfg.Batch.Size
	}
	if batchSize <= 0 {
		errorf("invalid batch size %d: must be positive", batchSize)
	}

	criteria := triage.Criteria{State: triage.StateTriggered}
	if action == triage.ActionAcknowledge {
		// Only unacknowledged incidents are candidates for acknowledgment.
		criteria.Status = triage.StatusTriggered
	}

	spec := triage.RunSpec{
		Action:    action,
		Criteria:  criteria,
		BatchSize: batchSize,
		DryRun:    tf.dryRun,
	}

	finishRun(env, spec, fmt.Sprintf("Coralogix Incident %s", actionTitle(action)))
}

// finishRun prints the banner, executes the workflow with streamed batch
// progress, prints the summary, publishes the audit record, and exits.
func finishRun(env *runEnv, spec triage.RunSpec, title string) {
	started := time.Now()
	printRunBanner(title, env.region, spec.Action, started)

	env.mutator.OnProgress(func(outcome triage.BatchOutcome, total int) {
		mark := green("✓")
		if !outcome.OK() {
			mark = red("✗")
		}
		fmt.Printf("  %s %s\n", mark, triage.DescribeBatch(spec.Action, outcome, total))
	})

	result, err := env.workflow.Run(context.Background(), spec)
	if err != nil {
		errorf("%v", err)
	}

	printRunSummary(spec.Action, result)

	if env.audit.Enabled() {
		if err := env.audit.Publish(env.region, spec.Action, result); err != nil {
			warnf("%v", err)
		}
	}

	os.Exit(result.ExitCode())
}

func printRunBanner(title, region string, action triage.Action, started time.Time) {
	fmt.Println(strings60)
	fmt.Println(title)
	fmt.Println(strings60)
	fmt.Printf("Region:  %s\n", region)
	fmt.Printf("Action:  %s\n", action)
	fmt.Printf("Started: %s\n", started.Format("2006-01-02 15:04:05"))
	fmt.Println(strings60)
	fmt.Println()
}

func printRunSummary(action triage.Action, result triage.RunResult) {
	fmt.Println()
	fmt.Println(strings60)
	fmt.Println("SUMMARY")
	fmt.Println(strings60)
	fmt.Printf("Successfully %s: %d\n", action.PastTense(), result.Successful)
	fmt.Printf("Failed to %s: %d\n", action, result.Failed)
	fmt.Printf("Total processed: %d\n", result.Total())
	fmt.Printf("Completed at: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Println(strings60)
}

// strings60 is the banner separator.
const strings60 = "============================================================"

func actionTitle(action triage.Action) string {
	if action == triage.ActionResolve {
		return "Resolution"
	}
	return "Acknowledgment"
}
