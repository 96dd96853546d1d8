package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/jsontoggle/jsontoggle/internal/config"
	"github.com/jsontoggle/jsontoggle/internal/demo"
	"github.com/jsontoggle/jsontoggle/internal/document"
	"github.com/jsontoggle/jsontoggle/internal/errors"
	"github.com/jsontoggle/jsontoggle/internal/render"
	"github.com/jsontoggle/jsontoggle/internal/store"
	"github.com/jsontoggle/jsontoggle/internal/toggle"
)

// CLI defines the command-line interface
var CLI struct {
	File       string           `help:"Path to the JSON document." short:"f" default:"demo.json" type:"path"`
	TogglesDir string           `help:"Directory holding toggle records. Overrides the config file." short:"t"`
	Config     string           `help:"Path to a config file. Discovered automatically when omitted." short:"c" type:"path"`
	Debug      bool             `help:"Enable debug logging." short:"d"`
	Version    kong.VersionFlag `help:"Show version information." short:"v"`

	Show   ShowCmd   `cmd:"" help:"Render the working document as a tree."`
	Toggle ToggleCmd `cmd:"" help:"Toggle a node out of the document, or revert it if already toggled."`
	List   ListCmd   `cmd:"" help:"List the currently toggled paths."`
	Demo   DemoCmd   `cmd:"" help:"Write the demonstration document."`
}

// Context holds the runtime context shared by all commands
type Context struct {
	Config *config.Config
}

// manager constructs the toggle manager for the selected document and config
func (c *Context) manager() (*toggle.Manager, error) {
	st := store.New(c.Config.TogglesDir)
	return toggle.NewManager(CLI.File, st, toggle.Options{
		Indent:      c.Config.Indent,
		Placeholder: c.Config.Placeholder.Sentinel,
		DeleteNodes: !c.Config.Placeholder.Enabled,
	})
}

// ShowCmd renders the working or original document, or a single node
type ShowCmd struct {
	Original bool   `help:"Render the original document with every toggle replayed back in."`
	Path     string `help:"Show only the node at this path." short:"p"`
	JSON     bool   `help:"Print pretty JSON instead of a tree." short:"j"`
}

// Run executes the show command
func (cmd *ShowCmd) Run(ctx *Context) error {
	m, err := ctx.manager()
	if err != nil {
		return err
	}

	doc := m.Working()
	if cmd.Original {
		doc = m.Original()
	}

	if cmd.Path != "" {
		node, ok, err := m.NodeAt(doc, cmd.Path)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("%s: no value\n", cmd.Path)
			return nil
		}
		doc = node
	}

	if cmd.JSON {
		out, err := document.Encode(doc, ctx.Config.Indent)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}
	fmt.Print(render.Tree(doc))
	return nil
}

// ToggleCmd toggles a node out or reverts it, depending on store state
type ToggleCmd struct {
	Path string `arg:"" help:"Path to toggle, e.g. settings.theme or users[0].name."`
}

// Run executes the toggle command
func (cmd *ToggleCmd) Run(ctx *Context) error {
	m, err := ctx.manager()
	if err != nil {
		return err
	}
	result, err := m.Toggle(cmd.Path)
	if err != nil {
		return err
	}
	fmt.Println(result.Message())
	return nil
}

// ListCmd lists the currently toggled paths
type ListCmd struct{}

// Run executes the list command
func (cmd *ListCmd) Run(ctx *Context) error {
	m, err := ctx.manager()
	if err != nil {
		return err
	}
	paths, err := m.ActiveToggles()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Println("No toggled paths.")
		return nil
	}
	for _, p := range paths {
		fmt.Println(p.String())
	}
	return nil
}

// DemoCmd writes the demonstration document
type DemoCmd struct {
	Name string `arg:"" optional:"" help:"File name for the demo document." default:"demo.json"`
}

// Run executes the demo command
func (cmd *DemoCmd) Run(ctx *Context) error {
	name := cmd.Name
	if name == "" {
		name = demo.DefaultFileName
	}
	if err := demo.Write(name, ctx.Config.Indent); err != nil {
		return err
	}
	fmt.Printf("Demo document written to %s\n", name)
	return nil
}

// Version information
const Version = "0.1.0"

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsontoggle"),
		kong.Description("A tool to hide and restore parts of a JSON document"),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("jsontoggle version %s", Version)},
	)

	ctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	verbosity := 1
	if CLI.Debug {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	if err := ctx.Run(&Context{Config: cfg}); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: defaults, then an explicit
// or discovered config file, then CLI overrides.
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}

	cfg := config.NewConfig()
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if CLI.TogglesDir != "" {
		cfg.TogglesDir = CLI.TogglesDir
	}
	return cfg, nil
}
