package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"EconSim/internal/advisor"
	"EconSim/internal/engine"
	"EconSim/internal/model"
	"EconSim/internal/notifier"
	"EconSim/internal/scenario"
)

const historyWindow = 10

// HandleCommand processes a text command and returns the reply.
func (s *Session) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "/rate", "/spend", "/tariff", "/fx", "/debt", "/tax":
		lever, _ := engine.ParseLever(strings.TrimPrefix(cmd, "/"))
		if len(args) != 1 {
			return fmt.Sprintf("Usage: %s &lt;number&gt;", cmd)
		}
		mag, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Sprintf("❌ %q is not a number", args[0])
		}
		return s.applyCommand(lever, mag)

	case "/austerity", "/restructure", "/monetize":
		lever, _ := engine.ParseLever(strings.TrimPrefix(cmd, "/"))
		return s.applyCommand(lever, 0)

	case "/preview":
		return s.previewCommand(args)

	case "/state":
		return notifier.FormatState(s.State(), s.Status())

	case "/history":
		window := historyWindow
		if len(args) == 1 {
			if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
				window = n
			}
		}
		return notifier.FormatHistory(s.History(), window)

	case "/reset":
		st := s.Reset()
		return "🔄 Simulation reset.\n\n" + notifier.FormatState(st, s.Status())

	case "/advice":
		text, err := s.Commentary(ctx)
		if err != nil {
			return notifier.FormatUnavailable(err)
		}
		return notifier.FormatCommentary("Economist commentary", text)

	case "/ask":
		q := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(command), fields[0]))
		if q == "" {
			return "Usage: /ask &lt;question&gt;"
		}
		text, err := s.Ask(ctx, q)
		if err != nil {
			return notifier.FormatUnavailable(err)
		}
		return notifier.FormatCommentary("Answer", text)

	case "/scenario":
		if len(args) != 1 {
			return "Usage: /scenario &lt;name&gt;"
		}
		return s.scenarioCommand(args[0])

	default:
		return notifier.FormatHelp()
	}
}

func (s *Session) applyCommand(lever model.Lever, magnitude float64) string {
	st, turn, err := s.apply(lever, magnitude, false)
	if err != nil {
		return "❌ " + describe(err)
	}
	status := model.Status{Turn: turn, Band: engine.Band(st), Warning: engine.Sustainability(st)}
	return notifier.FormatTurnReport(lever, magnitude, st, status)
}

func (s *Session) previewCommand(args []string) string {
	if len(args) == 0 || len(args) > 2 {
		return "Usage: /preview &lt;lever&gt; [number]"
	}
	lever, err := engine.ParseLever(args[0])
	if err != nil {
		return "❌ " + describe(err)
	}
	var mag float64
	if len(args) == 2 {
		if mag, err = strconv.ParseFloat(args[1], 64); err != nil {
			return fmt.Sprintf("❌ %q is not a number", args[1])
		}
	}
	cur := s.State()
	next, err := s.Preview(lever, mag)
	if err != nil {
		return "❌ " + describe(err)
	}
	return notifier.FormatPreview(lever, mag, cur, next)
}

// RunScenario replays a scenario through the session; each turn is recorded
// and broadcast but no per-turn report is sent.
func (s *Session) RunScenario(sc *scenario.Scenario) ([]scenario.Result, error) {
	return scenario.Run(&quiet{s: s}, sc)
}

func (s *Session) scenarioCommand(name string) string {
	if s.scenarioDir == "" {
		return "❌ Scenarios are not configured."
	}
	file := filepath.Base(name)
	if filepath.Ext(file) == "" {
		file += ".yaml"
	}
	sc, err := scenario.LoadFile(filepath.Join(s.scenarioDir, file))
	if err != nil {
		return "❌ " + err.Error()
	}

	start := s.Turn()
	results, err := s.RunScenario(sc)
	head := fmt.Sprintf("🎬 <b>%s</b>: %d actions, turn %d → %d\n", sc.Name, len(results), start, s.Turn())
	if err != nil {
		head += "❌ stopped: " + describe(err) + "\n"
	}
	return head + "\n" + notifier.FormatState(s.State(), s.Status())
}

// quiet applies without pushing reports and remembers the turn of its own
// last commit, so results stay paired with their state under concurrent use.
type quiet struct {
	s    *Session
	turn int
}

func (q *quiet) Apply(lever model.Lever, magnitude float64) (model.EconomicState, error) {
	st, turn, err := q.s.apply(lever, magnitude, false)
	q.turn = turn
	return st, err
}

func (q *quiet) Turn() int { return q.turn }

func describe(err error) string {
	switch {
	case errors.Is(err, engine.ErrInvalidLever):
		return "unknown lever. " + err.Error()
	case errors.Is(err, engine.ErrInvalidMagnitude):
		return "invalid amount. " + err.Error()
	case errors.Is(err, engine.ErrOutOfBounds):
		return "rejected, out of bounds. " + err.Error()
	case errors.Is(err, advisor.ErrUnavailable):
		return notifier.FormatUnavailable(err)
	default:
		return err.Error()
	}
}
