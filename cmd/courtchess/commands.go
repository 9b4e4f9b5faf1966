package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"courtchess/internal/game"
	"courtchess/internal/link"
	"courtchess/internal/protocol"
	"courtchess/internal/store"
)

var errNoGame = errors.New("no game in progress; start one with `new` or open a link with `join`")

type app struct {
	store   *store.Store
	log     *zap.Logger
	out     io.Writer
	baseURL string
	name    string
	mode    string
	opts    []game.Option
}

func (a *app) run(cmd string, args []string) error {
	switch cmd {
	case "new":
		return a.cmdNew(args)
	case "join":
		return a.cmdJoin(args)
	case "receive":
		return a.cmdReceive(args)
	case "resync":
		return a.cmdResync(args)
	case "move":
		return a.cmdMove(args)
	case "moves":
		return a.cmdMoves(args)
	case "show":
		return a.cmdShow(args)
	case "link":
		return a.cmdLink(args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) cmdNew(args []string) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	fs.SetOutput(a.out)
	lightLineup := fs.String("lineup", "RNB", "your pieces, left to right")
	darkLineup := fs.String("dark-lineup", "", "opponent pieces; defaults to -lineup")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *darkLineup == "" {
		*darkLineup = *lightLineup
	}
	light, err := game.ParseLineup(*lightLineup)
	if err != nil {
		return err
	}
	dark, err := game.ParseLineup(*darkLineup)
	if err != nil {
		return err
	}

	profile, err := a.profile()
	if err != nil {
		return err
	}
	mode, err := a.resolveMode()
	if err != nil {
		return err
	}
	player := profile.Player()
	e, err := game.StartEngine(game.Config{
		Light:       &player,
		LightLineup: light,
		DarkLineup:  dark,
	}, a.engineOptions()...)
	if err != nil {
		return err
	}
	s := e.State()
	if err := a.store.SaveState(s); err != nil {
		return err
	}
	a.log.Info("game created", zap.String("game_id", s.GameID), zap.String("mode", string(mode)))
	render(a.out, s)
	if mode == store.ModeLink {
		return a.printLink(s, profile.Name)
	}
	return nil
}

func (a *app) cmdJoin(args []string) error {
	raw, err := oneArg("join", "link", args)
	if err != nil {
		return err
	}
	profile, err := a.profile()
	if err != nil {
		return err
	}
	p, err := a.decodeLink(raw)
	if err != nil {
		return err
	}
	if p.Type != protocol.TypeFullState {
		return fmt.Errorf("join needs a full game link, got a %s payload", p.Type)
	}
	s, err := protocol.Accept(nil, p)
	if err != nil {
		return explain(err)
	}
	if s.LightPlayer != nil && s.LightPlayer.ID == profile.ID {
		return errors.New("you started this game; use `receive` for your opponent's links")
	}
	s, err = game.Join(s, game.Dark, profile.Player())
	if err != nil {
		return err
	}
	if err := a.store.SaveState(s); err != nil {
		return err
	}
	if err := a.store.SaveMode(store.ModeLink); err != nil {
		return err
	}
	a.log.Info("joined game",
		zap.String("game_id", s.GameID),
		zap.String("opponent", p.PlayerName),
		zap.Int("turn", s.CurrentTurn),
	)
	render(a.out, s)
	return nil
}

func (a *app) cmdReceive(args []string) error {
	return a.adopt("receive", args, protocol.Accept)
}

func (a *app) cmdResync(args []string) error {
	return a.adopt("resync", args, protocol.Resync)
}

func (a *app) adopt(cmd string, args []string, accept func(*game.GameState, *protocol.Payload) (game.GameState, error)) error {
	raw, err := oneArg(cmd, "link", args)
	if err != nil {
		return err
	}
	local, err := a.state()
	if err != nil {
		return err
	}
	p, err := a.decodeLink(raw)
	if err != nil {
		return err
	}
	next, err := accept(&local, p)
	if err != nil {
		a.log.Warn("payload refused",
			zap.String("command", cmd),
			zap.String("game_id", local.GameID),
			zap.Int("local_turn", local.CurrentTurn),
			zap.Int("payload_turn", p.TargetTurn()),
			zap.Error(err),
		)
		return explain(err)
	}
	if err := a.store.SaveState(next); err != nil {
		return err
	}
	a.log.Debug("payload adopted",
		zap.String("command", cmd),
		zap.String("game_id", next.GameID),
		zap.Int("turn", next.CurrentTurn),
		zap.String("checksum", next.Checksum),
	)
	render(a.out, next)
	return nil
}

func (a *app) cmdMove(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: move <row,col> <row,col|off>")
	}
	from, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	to, err := parsePosition(args[1])
	if err != nil {
		return err
	}
	s, err := a.state()
	if err != nil {
		return err
	}
	mode, err := a.resolveMode()
	if err != nil {
		return err
	}
	profile, err := a.profile()
	if err != nil {
		return err
	}
	if mode == store.ModeLink {
		color, ok := seatOf(s, profile.ID)
		if !ok {
			return errors.New("you are not seated in this game")
		}
		if s.Status == game.StatusActive && s.CurrentPlayer != color {
			return fmt.Errorf("waiting for %s to move", s.CurrentPlayer)
		}
	}

	e := game.NewEngine(s, a.engineOptions()...)
	if err := e.MakeMove(from, to); err != nil {
		return err
	}
	next := e.State()
	if err := a.store.SaveState(next); err != nil {
		return err
	}
	render(a.out, next)
	if mode == store.ModeLink {
		return a.printLink(next, profile.Name)
	}
	return nil
}

func (a *app) cmdMoves(args []string) error {
	raw, err := oneArg("moves", "square", args)
	if err != nil {
		return err
	}
	from, err := parsePosition(raw)
	if err != nil {
		return err
	}
	s, err := a.state()
	if err != nil {
		return err
	}
	moves := game.NewEngine(s).ValidMoves(from)
	if len(moves) == 0 {
		fmt.Fprintf(a.out, "no legal moves from %s\n", from)
		return nil
	}
	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.String()
	}
	fmt.Fprintf(a.out, "%s: %s\n", from, strings.Join(names, " "))
	return nil
}

func (a *app) cmdShow(args []string) error {
	if len(args) != 0 {
		return errors.New("usage: show")
	}
	s, err := a.state()
	if err != nil {
		return err
	}
	render(a.out, s)
	return nil
}

func (a *app) cmdLink(args []string) error {
	if len(args) != 0 {
		return errors.New("usage: link")
	}
	s, err := a.state()
	if err != nil {
		return err
	}
	profile, err := a.profile()
	if err != nil {
		return err
	}
	return a.printLink(s, profile.Name)
}

func (a *app) state() (game.GameState, error) {
	s, ok, err := a.store.State()
	if err != nil {
		return game.GameState{}, err
	}
	if !ok {
		return game.GameState{}, errNoGame
	}
	return s, nil
}

// profile loads the local profile, creating it from -name on first use and
// renaming it when -name differs from the stored name.
func (a *app) profile() (store.Profile, error) {
	p, ok, err := a.store.Profile()
	if err != nil {
		return store.Profile{}, err
	}
	switch {
	case !ok:
		if a.name == "" {
			return store.Profile{}, errors.New("set your name with -name or COURTCHESS_NAME")
		}
		if p, err = store.NewProfile(a.name); err != nil {
			return store.Profile{}, err
		}
	case a.name != "" && a.name != p.Name:
		p.Name = a.name
	default:
		return p, nil
	}
	if err := a.store.SaveProfile(p); err != nil {
		return store.Profile{}, err
	}
	return p, nil
}

func (a *app) resolveMode() (store.Mode, error) {
	if a.mode == "" {
		return a.store.Mode()
	}
	m, ok := store.ParseMode(a.mode)
	if !ok {
		return "", fmt.Errorf("unknown mode %q (want link or hotseat)", a.mode)
	}
	if err := a.store.SaveMode(m); err != nil {
		return "", err
	}
	return m, nil
}

func (a *app) engineOptions() []game.Option {
	return append([]game.Option{game.WithLogger(a.log)}, a.opts...)
}

func (a *app) printLink(s game.GameState, name string) error {
	payload, err := protocol.EncodeFullState(s, name)
	if err != nil {
		return explain(err)
	}
	url, err := link.Build(a.baseURL, payload)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\nsend this link to your opponent:\n%s\n", url)
	return nil
}

func (a *app) decodeLink(raw string) (*protocol.Payload, error) {
	payload, err := link.Extract(raw)
	if err != nil {
		return nil, err
	}
	p, err := protocol.Decode(payload)
	if err != nil {
		return nil, explain(err)
	}
	return p, nil
}

// explain appends the recovery hint to errors that mean one side's copy of
// the game can no longer be trusted.
func explain(err error) error {
	if errors.Is(err, protocol.ErrChecksumMismatch) || errors.Is(err, protocol.ErrTurnGap) {
		return fmt.Errorf("%w; %s", err, protocol.Recovery)
	}
	return err
}

func seatOf(s game.GameState, id string) (game.Color, bool) {
	for _, c := range []game.Color{game.Light, game.Dark} {
		if p := s.Player(c); p != nil && p.ID == id {
			return c, true
		}
	}
	return 0, false
}

func oneArg(cmd, what string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: %s <%s>", cmd, what)
	}
	return args[0], nil
}

// parsePosition reads "row,col", "[row,col]" or "off".
func parsePosition(s string) (game.Position, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "off" || s == "off-board" {
		return game.OffBoard, nil
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return game.Position{}, fmt.Errorf("square %q: want row,col or off", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return game.Position{}, fmt.Errorf("square %q: %w", s, err)
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return game.Position{}, fmt.Errorf("square %q: %w", s, err)
	}
	p := game.Pos(row, col)
	if !p.OnBoard() {
		return game.Position{}, fmt.Errorf("square %q is off the board", s)
	}
	return p, nil
}
