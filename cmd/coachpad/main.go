// Command coachpad is the terminal data-entry client: login, roster
// browsing, and metric entry against a coachpad API server.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/coachpad/coachpad/internal/client"
	"github.com/coachpad/coachpad/internal/config"
	"github.com/coachpad/coachpad/internal/development"
	"github.com/coachpad/coachpad/internal/roster"
	"github.com/coachpad/coachpad/internal/session"
)

const usage = `Usage: coachpad <command> [flags]

Commands:
  login       Sign in and store the session
  logout      Sign out and clear the session
  whoami      Show the current session
  leagues     List leagues
  teams       List teams of a league          (-league)
  roster      List footballers of a team      (-team)
  show        Show one entry                  (-domain -footballer -date)
  submit      Create or update an entry       (-domain -footballer -date field=value...)
  delete      Delete an entry                 (-domain -entry)
  history     Show recent entries             (-domain -footballer [-limit])
  graph       Fetch chart data                (-domain -footballer -type [-start -end])

Domains: physical, conditional, endurance
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		fatal(err)
	}

	store, err := session.Open(cfg.StatePath)
	if err != nil {
		fatal(err)
	}
	defer store.Close()

	var opts []client.Option
	if cfg.RequestTimeout > 0 {
		opts = append(opts, client.WithTimeout(time.Duration(cfg.RequestTimeout)*time.Second))
	}
	api := client.New(cfg.APIBaseURL, store, opts...)
	sessions := session.NewManager(api, store)
	browser := roster.NewBrowser(api)

	ctx := context.Background()
	cmd, args := os.Args[1], os.Args[2:]

	if err := run(ctx, cmd, args, api, browser, sessions); err != nil {
		fatal(err)
	}
}

func run(ctx context.Context, cmd string, args []string, api *client.Client, browser *roster.Browser, sessions *session.Manager) error {
	switch cmd {
	case "login":
		return runLogin(ctx, args, sessions)
	case "logout":
		return runLogout(ctx, sessions)
	case "whoami":
		return runWhoami(ctx, sessions)
	case "leagues":
		return runLeagues(ctx, browser, sessions)
	case "teams":
		return runTeams(ctx, args, browser, sessions)
	case "roster":
		return runRoster(ctx, args, browser, sessions)
	case "show":
		return runShow(ctx, args, api, sessions)
	case "submit":
		return runSubmit(ctx, args, api, sessions)
	case "delete":
		return runDelete(ctx, args, api, sessions)
	case "history":
		return runHistory(ctx, args, api, sessions)
	case "graph":
		return runGraph(ctx, args, api, sessions)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func runLogin(ctx context.Context, args []string, sessions *session.Manager) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("user", "", "username (prompted when empty)")
	fs.Parse(args)

	name := *username
	if name == "" {
		fmt.Print("Username: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		name = strings.TrimSpace(line)
	}

	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return err
	}

	profile, err := sessions.Login(ctx, name, string(raw))
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s", profile.Username)
	if profile.IsAdmin {
		fmt.Print(" (admin)")
	}
	fmt.Println()
	return nil
}

func runLogout(ctx context.Context, sessions *session.Manager) error {
	if err := sessions.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func runWhoami(ctx context.Context, sessions *session.Manager) error {
	_, err := sessions.Bootstrap(ctx)
	var netErr *client.NetworkError
	if errors.As(err, &netErr) {
		fmt.Println("Server unreachable; the stored session could not be verified.")
		return nil
	}
	if err != nil {
		return err
	}
	if !sessions.IsAuthenticated(ctx) {
		fmt.Println("Not logged in.")
		return nil
	}
	u := sessions.CurrentUser()
	fmt.Printf("User:  %s (id %d)\n", u.Username, u.ID)
	if u.Role != nil {
		fmt.Printf("Role:  %s\n", *u.Role)
	}
	fmt.Printf("Admin: %v\n", u.IsAdmin)
	if teamID := sessions.TeamID(); teamID != 0 {
		fmt.Printf("Team:  %d\n", teamID)
	}
	return nil
}

func runLeagues(ctx context.Context, browser *roster.Browser, sessions *session.Manager) error {
	if err := requireSession(ctx, sessions); err != nil {
		return err
	}
	leagues, err := browser.LoadLeagues(ctx)
	if err != nil {
		return err
	}
	for _, l := range leagues {
		fmt.Printf("%-8s %s\n", l.LeagueID, l.LeagueName)
	}
	return nil
}

func runTeams(ctx context.Context, args []string, browser *roster.Browser, sessions *session.Manager) error {
	fs := flag.NewFlagSet("teams", flag.ExitOnError)
	league := fs.String("league", "", "league id")
	fs.Parse(args)
	if *league == "" {
		return errors.New("-league is required")
	}
	if err := requireSession(ctx, sessions); err != nil {
		return err
	}
	teams, err := browser.SelectLeague(ctx, *league)
	if err != nil {
		return err
	}
	for _, t := range teams {
		fmt.Printf("%-6d %s\n", t.TeamID, t.TeamName)
	}
	return nil
}

func runRoster(ctx context.Context, args []string, browser *roster.Browser, sessions *session.Manager) error {
	fs := flag.NewFlagSet("roster", flag.ExitOnError)
	team := fs.Int64("team", 0, "team id")
	fs.Parse(args)
	if *team == 0 {
		return errors.New("-team is required")
	}
	if err := requireSession(ctx, sessions); err != nil {
		return err
	}
	footballers, err := browser.SelectTeam(ctx, *team)
	if err != nil {
		if errors.Is(err, client.ErrPermissionDenied) {
			return errors.New("you do not have access to this team")
		}
		return err
	}
	for _, f := range footballers {
		num := "-"
		if f.TrikotNum != nil {
			num = *f.TrikotNum
		}
		pos := ""
		if f.Position != nil {
			pos = *f.Position
		}
		fmt.Printf("%-6d #%-3s %-24s %s\n", f.FootballerID, num, f.FootballerName, pos)
	}
	return nil
}

type entryFlags struct {
	domain     string
	footballer int64
	date       string
}

func parseEntryFlags(name string, args []string, withDate bool) (entryFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	var ef entryFlags
	fs.StringVar(&ef.domain, "domain", "", "metric domain: physical|conditional|endurance")
	fs.Int64Var(&ef.footballer, "footballer", 0, "footballer id")
	if withDate {
		fs.StringVar(&ef.date, "date", time.Now().Format("2006-01-02"), "entry date (YYYY-MM-DD)")
	}
	fs.Parse(args)
	if ef.domain == "" {
		return ef, nil, errors.New("-domain is required")
	}
	if ef.footballer == 0 {
		return ef, nil, errors.New("-footballer is required")
	}
	return ef, fs.Args(), nil
}

func runShow(ctx context.Context, args []string, api *client.Client, sessions *session.Manager) error {
	ef, _, err := parseEntryFlags("show", args, true)
	if err != nil {
		return err
	}
	if err := requireSession(ctx, sessions); err != nil {
		return err
	}
	switch ef.domain {
	case development.DomainPhysical:
		return showEntry(ctx, api.Physical(), ef)
	case development.DomainConditional:
		return showEntry(ctx, api.Conditional(), ef)
	case development.DomainEndurance:
		return showEntry(ctx, api.Endurance(), ef)
	}
	return fmt.Errorf("unknown domain: %s", ef.domain)
}

func showEntry[R any](ctx context.Context, svc *client.DevelopmentService[R], ef entryFlags) error {
	rec, err := svc.DataByDate(ctx, ef.footballer, ef.date)
	if err != nil {
		return err
	}
	if rec == nil {
		fmt.Printf("No entry for %s.\n", ef.date)
		return nil
	}
	return printJSON(rec)
}

func runSubmit(ctx context.Context, args []string, api *client.Client, sessions *session.Manager) error {
	ef, rest, err := parseEntryFlags("submit", args, true)
	if err != nil {
		return err
	}
	values, err := parseFieldArgs(rest)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return errors.New("at least one field=value argument is required")
	}
	if err := requireSession(ctx, sessions); err != nil {
		return err
	}
	switch ef.domain {
	case development.DomainPhysical:
		return submitEntry[development.Physical](ctx, api.Physical(), ef, values)
	case development.DomainConditional:
		return submitEntry[development.Conditional](ctx, api.Conditional(), ef, values)
	case development.DomainEndurance:
		return submitEntry[development.Endurance](ctx, api.Endurance(), ef, values)
	}
	return fmt.Errorf("unknown domain: %s", ef.domain)
}

// submitEntry creates the entry for the date, or updates it when one already
// exists. The query-first shape keeps the server's one-entry-per-date rule
// out of the user's way.
func submitEntry[R any, P development.RecordPtr[R]](ctx context.Context, svc *client.DevelopmentService[R], ef entryFlags, values map[string]string) error {
	existing, err := svc.DataByDate(ctx, ef.footballer, ef.date)
	if err != nil {
		return err
	}
	if existing == nil {
		if _, err := svc.Add(ctx, ef.footballer, ef.date, values); err != nil {
			return err
		}
		fmt.Printf("Added %s entry for %s.\n", ef.domain, ef.date)
		return nil
	}
	entryID := P(existing).Header().ID
	if _, err := svc.Update(ctx, entryID, values); err != nil {
		return err
	}
	fmt.Printf("Updated %s entry for %s.\n", ef.domain, ef.date)
	return nil
}

func runDelete(ctx context.Context, args []string, api *client.Client, sessions *session.Manager) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	domain := fs.String("domain", "", "metric domain: physical|conditional|endurance")
	entry := fs.Int64("entry", 0, "entry id")
	fs.Parse(args)
	if *domain == "" || *entry == 0 {
		return errors.New("-domain and -entry are required")
	}
	if err := requireSession(ctx, sessions); err != nil {
		return err
	}
	var err error
	switch *domain {
	case development.DomainPhysical:
		err = api.Physical().Delete(ctx, *entry)
	case development.DomainConditional:
		err = api.Conditional().Delete(ctx, *entry)
	case development.DomainEndurance:
		err = api.Endurance().Delete(ctx, *entry)
	default:
		return fmt.Errorf("unknown domain: %s", *domain)
	}
	if err != nil {
		return err
	}
	fmt.Println("Entry deleted.")
	return nil
}

func runHistory(ctx context.Context, args []string, api *client.Client, sessions *session.Manager) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	domain := fs.String("domain", "", "metric domain: physical|conditional|endurance")
	footballer := fs.Int64("footballer", 0, "footballer id")
	limit := fs.Int("limit", 0, "number of entries (default 10)")
	fs.Parse(args)
	if *domain == "" || *footballer == 0 {
		return errors.New("-domain and -footballer are required")
	}
	if err := requireSession(ctx, sessions); err != nil {
		return err
	}
	switch *domain {
	case development.DomainPhysical:
		return printHistory(ctx, api.Physical(), *footballer, *limit)
	case development.DomainConditional:
		return printHistory(ctx, api.Conditional(), *footballer, *limit)
	case development.DomainEndurance:
		return printHistory(ctx, api.Endurance(), *footballer, *limit)
	}
	return fmt.Errorf("unknown domain: %s", *domain)
}

func printHistory[R any](ctx context.Context, svc *client.DevelopmentService[R], footballerID int64, limit int) error {
	recs, err := svc.History(ctx, footballerID, limit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No entries yet.")
		return nil
	}
	return printJSON(recs)
}

func runGraph(ctx context.Context, args []string, api *client.Client, sessions *session.Manager) error {
	fs := flag.NewFlagSet("graph", flag.ExitOnError)
	domain := fs.String("domain", "", "metric domain: physical|conditional|endurance")
	footballer := fs.Int64("footballer", 0, "footballer id")
	graphType := fs.String("type", development.GraphProgressTracker, "graph type: progress-tracker|time-tracker")
	start := fs.String("start", "", "start date (YYYY-MM-DD)")
	end := fs.String("end", "", "end date (YYYY-MM-DD)")
	fs.Parse(args)
	if *domain == "" || *footballer == 0 {
		return errors.New("-domain and -footballer are required")
	}
	if err := requireSession(ctx, sessions); err != nil {
		return err
	}

	req := development.GraphRequest{
		FootballerID: *footballer,
		GraphType:    *graphType,
		StartDate:    *start,
		EndDate:      *end,
	}

	var raw json.RawMessage
	var err error
	switch *domain {
	case development.DomainPhysical:
		raw, err = api.Physical().GenerateGraph(ctx, req)
	case development.DomainConditional:
		raw, err = api.Conditional().GenerateGraph(ctx, req)
	case development.DomainEndurance:
		raw, err = api.Endurance().GenerateGraph(ctx, req)
	default:
		return fmt.Errorf("unknown domain: %s", *domain)
	}
	if err != nil {
		return err
	}
	return printJSON(raw)
}

// requireSession restores the stored session before an authenticated
// command. An unreachable server leaves the token stored and the session
// unverified; the command proceeds anyway and its own request reports
// whatever the server says once it answers.
func requireSession(ctx context.Context, sessions *session.Manager) error {
	_, err := sessions.Bootstrap(ctx)
	var netErr *client.NetworkError
	if errors.As(err, &netErr) {
		fmt.Fprintln(os.Stderr, "Warning: server unreachable, retrying with the stored session.")
		return nil
	}
	if err != nil {
		return err
	}
	if !sessions.IsAuthenticated(ctx) {
		return errors.New("not logged in; run `coachpad login` first")
	}
	return nil
}

func parseFieldArgs(args []string) (map[string]string, error) {
	values := make(map[string]string, len(args))
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("expected field=value, got %q", arg)
		}
		values[field] = value
	}
	return values, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func fatal(err error) {
	var remote *client.RemoteError
	switch {
	case errors.Is(err, client.ErrAuthExpired):
		fmt.Fprintln(os.Stderr, "Session expired; please log in again.")
	case errors.Is(err, client.ErrPermissionDenied):
		fmt.Fprintln(os.Stderr, "Permission denied.")
	case errors.As(err, &remote):
		fmt.Fprintln(os.Stderr, remote.Message)
	default:
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(1)
}
