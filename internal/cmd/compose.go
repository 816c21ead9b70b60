package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/steveyegge/henchman/internal/deploy"
	"github.com/steveyegge/henchman/internal/engine"
	"github.com/steveyegge/henchman/internal/exitcode"
	"github.com/steveyegge/henchman/internal/lock"
	"github.com/steveyegge/henchman/internal/output"
	"github.com/steveyegge/henchman/internal/source"
	"github.com/steveyegge/henchman/internal/style"
	"github.com/steveyegge/henchman/internal/supervisor"
	"github.com/steveyegge/henchman/internal/workspace"
)

var composeCmd = &cobra.Command{
	Use:     "compose",
	GroupID: GroupCompose,
	Short:   "Run or stop the services of a deployment",
	Long: `Run or stop the services declared in a deployment document.

The document is YAML with a top-level services mapping:

  services:
    web:
      image: nginx:latest
    cache:
      image: redis:7

Services are processed one at a time in name order. Containers are named
<project>_<service>_1, where the project defaults to the name of the
working directory.`,
	RunE: requireSubcommand,
}

var composeUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Run every service in the deployment",
	Long: `Run every service in the deployment with "<engine> run --rm".

Without --detach each container runs in the foreground and the next service
starts only after it exits. Ctrl-C stops the running container and henchman.

Examples:
  henchman compose up -f compose.yml
  henchman compose up -f compose.yml -d
  cat compose.yml | henchman compose up -f -`,
	Args: cobra.NoArgs,
	RunE: runComposeUp,
}

var composeDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Stop every service in the deployment",
	Long: `Stop every service in the deployment with "<engine> container stop".

Examples:
  henchman compose down -f compose.yml
  henchman compose down -f compose.yml -p demo`,
	Args: cobra.NoArgs,
	RunE: runComposeDown,
}

var composeConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved services and engine commands",
	Long: `Parse the deployment and show each service with its container name and
the commands "compose up" and "compose down" would run. Nothing is executed.

With --format yaml the output is itself a valid deployment document.

Examples:
  henchman compose config -f compose.yml
  henchman compose config -f compose.yml --format json`,
	Args: cobra.NoArgs,
	RunE: runComposeConfig,
}

var (
	composeFile    string
	composeProject string
	composeDetach  bool
	composeFormat  string
)

func init() {
	composeCmd.PersistentFlags().StringVarP(&composeFile, "file", "f", "", "Deployment file, or - for stdin")
	composeCmd.PersistentFlags().StringVarP(&composeProject, "project-name", "p", "", "Project name (default: working directory name)")
	composeUpCmd.Flags().BoolVarP(&composeDetach, "detach", "d", false, "Run containers in the background")
	composeConfigCmd.Flags().StringVar(&composeFormat, "format", "", "Output format: text, json or yaml (default text, or $"+output.EnvFormat+")")

	composeCmd.AddCommand(composeUpCmd, composeDownCmd, composeConfigCmd)
	rootCmd.AddCommand(composeCmd)
}

// plan is a parsed deployment bound to a project and engine.
type plan struct {
	dir        string
	project    string
	builder    engine.Builder
	deployment *deploy.Deployment
}

// loadPlan reads and parses the deployment named by --file. It returns nil
// with no error when there is nothing to do; the reason has been printed.
func loadPlan(cmd *cobra.Command, detached bool) (*plan, error) {
	out := cmd.OutOrStdout()
	if composeFile == "" {
		style.PrintWarning(out, "No compose file specified, nothing to do")
		return nil, nil
	}

	text, err := source.Read(composeFile, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}

	d, err := deploy.Load(text, detached)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", displaySource(composeFile), err)
	}
	if d == nil || len(d.Services) == 0 {
		style.PrintWarning(out, "No services defined in %s, nothing to do", displaySource(composeFile))
		return nil, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}
	override := composeProject
	if override == "" {
		override = cfg.Project
	}
	project, err := workspace.Resolve(override, dir)
	if err != nil {
		return nil, err
	}

	logger.WithFields(log.Fields{
		"source":   displaySource(composeFile),
		"project":  project,
		"engine":   cfg.Engine,
		"services": len(d.Services),
	}).Debug("loaded deployment")

	return &plan{
		dir:        dir,
		project:    project,
		builder:    engine.New(cfg.Engine),
		deployment: d,
	}, nil
}

// lock takes the project operation lock unless this is a dry run.
func (p *plan) lock() (func(), error) {
	if dryRun {
		return func() {}, nil
	}
	return lock.AcquireProject(p.project, p.dir, cfg.Lock.Timeout.Duration)
}

type buildFunc func(engine.Builder, deploy.Service, string) engine.Argv

// apply builds one engine command per service and runs them in order,
// stopping at the first failure.
func (p *plan) apply(cmd *cobra.Command, verb, done string, build buildFunc) error {
	out := cmd.OutOrStdout()
	sup := supervisor.New(
		supervisor.WithStdio(cmd.InOrStdin(), out, cmd.ErrOrStderr()),
		supervisor.WithLogger(logger),
	)

	for _, name := range p.deployment.Names() {
		svc := p.deployment.Services[name]
		container := engine.ContainerName(p.project, name)
		argv := build(p.builder, svc, container)

		if dryRun {
			fmt.Fprintf(out, "%s %s\n", style.ArrowPrefix, formatArgv(argv))
			continue
		}

		fmt.Fprintf(out, "%s %s %s\n", style.ArrowPrefix, verb, style.Bold.Render(container))
		logger.WithFields(log.Fields{"service": name, "container": container}).Debug(verb)

		if _, err := sup.Run(argv); err != nil {
			printStatus(out, container, false, "failed")
			return fmt.Errorf("service %s: %w", name, err)
		}
		printStatus(out, container, true, done)
	}
	return nil
}

func runComposeUp(cmd *cobra.Command, args []string) error {
	p, err := loadPlan(cmd, composeDetach)
	if err != nil || p == nil {
		return err
	}

	// Attached containers block for their whole lifetime, so only detached
	// runs hold the project lock.
	if composeDetach {
		release, err := p.lock()
		if err != nil {
			return err
		}
		defer release()
	}

	return p.apply(cmd, "Starting", "started", engine.Builder.RunCommand)
}

func runComposeDown(cmd *cobra.Command, args []string) error {
	p, err := loadPlan(cmd, false)
	if err != nil || p == nil {
		return err
	}

	release, err := p.lock()
	if err != nil {
		return err
	}
	defer release()

	return p.apply(cmd, "Stopping", "stopped", engine.Builder.StopCommand)
}

// configView is the structured form of "compose config".
type configView struct {
	Project  string                 `json:"project" yaml:"project"`
	Engine   string                 `json:"engine" yaml:"engine"`
	Services map[string]serviceView `json:"services" yaml:"services"`
}

type serviceView struct {
	Image     string   `json:"image" yaml:"image"`
	Container string   `json:"container" yaml:"container"`
	Up        []string `json:"up" yaml:"up,flow"`
	Down      []string `json:"down" yaml:"down,flow"`
}

func runComposeConfig(cmd *cobra.Command, args []string) error {
	format, err := output.ResolveFormat(composeFormat)
	if err != nil {
		return exitcode.Usage("%v", err)
	}

	p, err := loadPlan(cmd, false)
	if err != nil || p == nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format != output.FormatText {
		view := configView{Project: p.project, Engine: p.builder.Engine, Services: make(map[string]serviceView)}
		for _, name := range p.deployment.Names() {
			svc := p.deployment.Services[name]
			container := engine.ContainerName(p.project, name)
			view.Services[name] = serviceView{
				Image:     svc.Image,
				Container: container,
				Up:        p.builder.RunCommand(svc, container),
				Down:      p.builder.StopCommand(svc, container),
			}
		}
		return output.Write(out, view, format)
	}

	fmt.Fprintf(out, "%s %s\n", style.Bold.Render("Project:"), p.project)
	fmt.Fprintf(out, "%s %s\n\n", style.Bold.Render("Engine:"), p.builder.Engine)

	tbl := style.NewTable(
		style.Column{Name: "SERVICE", Width: 16},
		style.Column{Name: "IMAGE", Width: 28},
		style.Column{Name: "CONTAINER", Width: 32},
		style.Column{Name: "COMMAND", Width: 72, Style: style.Dim},
	)
	for _, name := range p.deployment.Names() {
		svc := p.deployment.Services[name]
		container := engine.ContainerName(p.project, name)
		tbl.AddRow(name, svc.Image, container, formatArgv(p.builder.RunCommand(svc, container)))
	}
	fmt.Fprint(out, tbl.Render())
	return nil
}

func printStatus(w io.Writer, name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(w, "%s %s: %s\n", style.SuccessPrefix, name, style.Dim.Render(detail))
	} else {
		fmt.Fprintf(w, "%s %s: %s\n", style.ErrorPrefix, name, detail)
	}
}

func displaySource(path string) string {
	if path == source.Stdin {
		return "stdin"
	}
	return path
}

// formatArgv renders argv for display, quoting arguments that would not
// survive a shell round trip.
func formatArgv(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		if a == "" || strings.ContainsAny(a, " \t\n\"'\\$`") {
			a = strconv.Quote(a)
		}
		parts[i] = a
	}
	return strings.Join(parts, " ")
}
