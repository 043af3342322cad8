package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/services"
)

// shell is the interactive planning loop. Command failures are printed
// and the loop continues; only quit or end of input stop it.
type shell struct {
	session *services.Session
	in      io.Reader
	out     io.Writer
}

func newShell(session *services.Session, in io.Reader, out io.Writer) *shell {
	return &shell{session: session, in: in, out: out}
}

func (sh *shell) run(ctx context.Context) {
	fmt.Fprintln(sh.out, `Route planner. Type "help" for commands.`)

	scanner := bufio.NewScanner(sh.in)
	sh.prompt()
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			sh.prompt()
			continue
		}

		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		if cmd == "quit" || cmd == "exit" {
			fmt.Fprintln(sh.out, "Bye.")
			return
		}

		// Errors are shown as-is; no command failure ends the session.
		if err := sh.dispatch(ctx, cmd, args); err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
		sh.prompt()
	}
}

func (sh *shell) prompt() {
	fmt.Fprint(sh.out, "> ")
}

func (sh *shell) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		sh.printHelp()
	case "load":
		return sh.load(ctx, args)
	case "list":
		sh.printList()
	case "toggle":
		return sh.toggle(args)
	case "start":
		return sh.start(args)
	case "optimize":
		return sh.optimize(ctx)
	default:
		fmt.Fprintf(sh.out, "Unknown command %q. Type \"help\" for commands.\n", cmd)
	}
	return nil
}

func (sh *shell) printHelp() {
	fmt.Fprint(sh.out, `Commands:
  load <sheet-key>     load the customer list from a sheet
  list                 show the loaded customers and selection
  toggle <n>           select or unselect customer n
  start <address>      set the starting address
  optimize             compute the best visiting order
  quit                 leave
`)
}

func (sh *shell) load(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: load <sheet-key>")
	}

	records, err := sh.session.LoadSheet(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(sh.out, "Loaded %d customers.\n", len(records))
	sh.printList()
	return nil
}

func (sh *shell) printList() {
	records, selected := sh.session.Records()
	if len(records) == 0 {
		fmt.Fprintln(sh.out, `No customers loaded. Use "load <sheet-key>" first.`)
		return
	}

	for i, r := range records {
		mark := " "
		if selected[i] {
			mark = "x"
		}
		fmt.Fprintf(sh.out, "%3d. [%s] %s, %s\n", i+1, mark, r.Name, r.Address)
	}

	if start := sh.session.StartingAddress(); start != "" {
		fmt.Fprintf(sh.out, "Starting from: %s\n", start)
	}
}

func (sh *shell) toggle(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: toggle <number>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%q is not a number", args[0])
	}

	on, err := sh.session.Toggle(n - 1)
	if err != nil {
		return err
	}

	state := "unselected"
	if on {
		state = "selected"
	}
	records, _ := sh.session.Records()
	fmt.Fprintf(sh.out, "%s is now %s.\n", records[n-1].Name, state)
	return nil
}

func (sh *shell) start(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: start <address>")
	}

	sh.session.SetStartingAddress(strings.Join(args, " "))
	fmt.Fprintf(sh.out, "Starting from: %s\n", sh.session.StartingAddress())
	return nil
}

func (sh *shell) optimize(ctx context.Context) error {
	outcome, err := sh.session.Optimize(ctx)
	if err != nil {
		return err
	}

	sh.printRoute(outcome)
	return nil
}

func (sh *shell) printRoute(outcome *domain.OptimizeOutcome) {
	route := outcome.Route

	fmt.Fprintf(sh.out, "\nOptimized route from %s:\n", route.Origin)

	legs := route.Legs
	haveLegs := len(legs) == len(route.Stops)+1

	for i, stop := range route.Stops {
		if haveLegs {
			fmt.Fprintf(sh.out, "%3d. %s, %s  (%s)\n", i+1, stop.Name, stop.Address, legSummary(legs[i]))
		} else {
			fmt.Fprintf(sh.out, "%3d. %s, %s\n", i+1, stop.Name, stop.Address)
		}
	}
	if haveLegs {
		fmt.Fprintf(sh.out, "Return to %s  (%s)\n", route.Origin, legSummary(legs[len(legs)-1]))
	} else {
		fmt.Fprintf(sh.out, "Return to %s\n", route.Origin)
	}

	fmt.Fprintf(sh.out, "Total: %.2f km, %d min\n",
		float64(route.TotalDistanceMeters)/1000, minutes(route.TotalDurationSeconds))
	fmt.Fprintf(sh.out, "Open in Google Maps:\n%s\n\n", outcome.NavigationURL)
}

func legSummary(leg domain.RouteLeg) string {
	return fmt.Sprintf("%.1f km, %d min", float64(leg.DistanceMeters)/1000, minutes(leg.DurationSeconds))
}

// minutes rounds a duration up to whole minutes for display.
func minutes(seconds int) int {
	return (seconds + 59) / 60
}
