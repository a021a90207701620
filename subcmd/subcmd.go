// Package subcmd wraps flag.FlagSet with usage output for one musicareas
// subcommand and its optional positional argument.
package subcmd

import (
	"flag"
	"fmt"
	"os"
)

func New(name, doc string) *Subcommand {
	sc := &Subcommand{
		FlagSet: flag.NewFlagSet(name, flag.ContinueOnError),
		name:    name,
		doc:     doc,
	}
	sc.FlagSet.SetOutput(os.Stderr)
	sc.FlagSet.Usage = sc.usage
	return sc
}

type Subcommand struct {
	*flag.FlagSet
	name, doc string
	arg       *arg
}

type arg struct {
	name     string
	typename string
	usage    string
}

func (sc *Subcommand) SetArg(name, typname, usage string) *Subcommand {
	sc.arg = &arg{name, typname, usage}
	return sc
}

// Arg returns the positional argument after parsing, or an error if it's
// missing or there are extras.
func (sc *Subcommand) Arg() (string, error) {
	if sc.arg == nil {
		return "", fmt.Errorf("%s takes no argument", sc.name)
	}
	switch sc.NArg() {
	case 1:
		return sc.FlagSet.Arg(0), nil
	case 0:
		return "", fmt.Errorf("missing <%s>", sc.arg.name)
	default:
		return "", fmt.Errorf("expected one <%s>, got %d arguments", sc.arg.name, sc.NArg())
	}
}

func (sc *Subcommand) usage() {
	w := sc.Output()
	argSuffix := ""
	if sc.arg != nil {
		argSuffix = fmt.Sprintf(" <%s>", sc.arg.name)
	}
	fmt.Fprintf(w, "\n%s\n\n", sc.doc)
	fmt.Fprintf(w, "  musicareas %s [flags]%s\n\n", sc.name, argSuffix)
	fmt.Fprintf(w, "flags:\n")
	sc.FlagSet.PrintDefaults()
	if sc.arg != nil {
		fmt.Fprintf(w, "  <%s> %s\n", sc.arg.name, sc.arg.typename)
		fmt.Fprintf(w, "  \t%s\n", sc.arg.usage)
	}
}

