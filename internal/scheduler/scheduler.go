package scheduler

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"FleetConsole/internal/calculator"
	"FleetConsole/internal/logistics"
	"FleetConsole/internal/model"
	"FleetConsole/internal/notifier"
	"FleetConsole/internal/recorder"
)

// DeadlineWarning is how close a contract deadline must be before it is announced.
const DeadlineWarning = 24 * time.Hour

const (
	sendRetries    = 3
	journalEntries = 10
)

// Console is the read surface the scheduler polls. *api.Session satisfies it.
type Console interface {
	Agent(ctx context.Context) (model.Agent, error)
	AllShips(ctx context.Context) ([]model.Ship, error)
	AllContracts(ctx context.Context) ([]model.Contract, error)
	Ship(ctx context.Context, symbol string) (model.Ship, error)
	SystemWaypoints(ctx context.Context, system string) ([]model.Waypoint, error)
}

// creditHistory is implemented by journals that can report the last recorded balance.
type creditHistory interface {
	LatestCredits() (int64, error)
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Console  Console
	Notifier notifier.Notifier
	Recorder recorder.Recorder
	Ctx      context.Context
	Now      func() time.Time

	mu       sync.Mutex
	lastNav  map[string]model.NavStatus
	arrivals map[string]string // ship -> route arrival already announced
	warned   map[string]bool   // contract ids already announced
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, c Console, n notifier.Notifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Console:  c,
		Notifier: n,
		Recorder: rec,
		Ctx:      ctx,
		Now:      time.Now,
		lastNav:  make(map[string]model.NavStatus),
		arrivals: make(map[string]string),
		warned:   make(map[string]bool),
	}
}

// RegisterAll registers the fleet and contract polls.
func (s *Scheduler) RegisterAll(fleetCron, contractCron string) error {
	if _, err := s.Cron.AddFunc(fleetCron, s.fleetTask); err != nil {
		return fmt.Errorf("register fleet task: %w", err)
	}
	if _, err := s.Cron.AddFunc(contractCron, s.contractTask); err != nil {
		return fmt.Errorf("register contract task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow runs every poll once, seeding arrival tracking before the first tick.
func (s *Scheduler) RunNow() {
	s.fleetTask()
	s.contractTask()
}

func (s *Scheduler) fleetTask() {
	log.Println("[INFO] polling fleet")
	ships, err := s.Console.AllShips(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] fleet poll: %v", err)
		return
	}
	for _, sh := range s.detectArrivals(ships, s.Now()) {
		s.trySend(notifier.FormatArrival(sh))
	}

	agent, err := s.Console.Agent(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] agent poll: %v", err)
		return
	}
	if h, ok := s.Recorder.(creditHistory); ok {
		if prev, err := h.LatestCredits(); err == nil && prev != agent.Credits {
			log.Printf("[INFO] credits %s -> %s", calculator.FormatCredits(prev), calculator.FormatCredits(agent.Credits))
		}
	}
	if err := s.Recorder.RecordAgentSnapshot(&recorder.AgentSnapshot{
		Unix: s.Now().Unix(), Symbol: agent.Symbol, Credits: agent.Credits, ShipCount: agent.ShipCount,
	}); err != nil {
		log.Printf("[ERROR] record agent snapshot: %v", err)
	}
}

// detectArrivals returns ships that were in transit at the previous poll and
// have since arrived, either by status or because the route arrival passed.
// Each route arrival is reported once.
func (s *Scheduler) detectArrivals(ships []model.Ship, now time.Time) []model.Ship {
	s.mu.Lock()
	defer s.mu.Unlock()

	var arrived []model.Ship
	for _, sh := range ships {
		prev, known := s.lastNav[sh.Symbol]
		s.lastNav[sh.Symbol] = sh.Nav.Status
		if !known || prev != model.StatusInTransit {
			continue
		}
		if sh.Nav.Status == model.StatusInTransit {
			arr, ok := calculator.ParseTimestamp(sh.Nav.Route.Arrival)
			if !ok || arr.After(now) {
				continue
			}
		}
		if s.arrivals[sh.Symbol] == sh.Nav.Route.Arrival {
			continue
		}
		s.arrivals[sh.Symbol] = sh.Nav.Route.Arrival
		arrived = append(arrived, sh)
	}
	return arrived
}

func (s *Scheduler) contractTask() {
	log.Println("[INFO] polling contracts")
	contracts, err := s.Console.AllContracts(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] contract poll: %v", err)
		return
	}
	now := s.Now()
	for _, c := range s.dueSoon(contracts, now) {
		deadline, _ := calculator.ParseTimestamp(c.Terms.Deadline)
		s.trySend(notifier.FormatDeadline(c, deadline.Sub(now)))
	}
}

// dueSoon returns active contracts whose deadline falls within DeadlineWarning,
// each only the first time it qualifies.
func (s *Scheduler) dueSoon(contracts []model.Contract, now time.Time) []model.Contract {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []model.Contract
	for _, c := range contracts {
		if !c.Active() || s.warned[c.ID] {
			continue
		}
		deadline, ok := calculator.ParseTimestamp(c.Terms.Deadline)
		if !ok {
			continue
		}
		left := deadline.Sub(now)
		if left <= 0 || left > DeadlineWarning {
			continue
		}
		s.warned[c.ID] = true
		due = append(due, c)
	}
	return due
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	switch strings.ToLower(fields[0]) {
	case "/fleet":
		ships, err := s.Console.AllShips(s.Ctx)
		if err != nil {
			return failure("fleet", err)
		}
		return notifier.FormatFleet(ships, s.Now())
	case "/agent":
		agent, err := s.Console.Agent(s.Ctx)
		if err != nil {
			return failure("agent", err)
		}
		return notifier.FormatAgent(agent)
	case "/contracts":
		contracts, err := s.Console.AllContracts(s.Ctx)
		if err != nil {
			return failure("contracts", err)
		}
		return notifier.FormatContracts(contracts, s.Now())
	case "/logistics":
		if len(fields) < 2 {
			return "Usage: /logistics &lt;ship&gt;"
		}
		return s.logisticsReply(fields[1])
	case "/journal":
		events, err := s.Recorder.RecentCommands(journalEntries)
		if err != nil {
			return failure("journal", err)
		}
		return notifier.FormatJournal(events)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) logisticsReply(ship string) string {
	sh, err := s.Console.Ship(s.Ctx, ship)
	if err != nil {
		return failure("ship", err)
	}
	wps, err := s.Console.SystemWaypoints(s.Ctx, sh.Nav.SystemSymbol)
	if err != nil {
		return failure("waypoints", err)
	}
	return notifier.FormatLogistics(sh.Nav.WaypointSymbol, logistics.Summarize(wps, sh.Nav.WaypointSymbol))
}

func failure(what string, err error) string {
	log.Printf("[ERROR] %s: %v", what, err)
	return fmt.Sprintf("❌ %s lookup failed: %s", what, html.EscapeString(err.Error()))
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
