package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sarthakvk/tradedeck/config"
	"github.com/sarthakvk/tradedeck/models"
)

// Tab identifies one dashboard view. Exactly one tab is active at a time.
type Tab string

const (
	TabPending   Tab = "pending"
	TabPositions Tab = "positions"
	TabOrders    Tab = "orders"
	TabReports   Tab = "reports"
	TabOptions   Tab = "options"
)

// ParseTab maps a command word to a tab.
func ParseTab(word string) (Tab, bool) {
	switch Tab(strings.ToLower(word)) {
	case TabPending, TabPositions, TabOrders, TabReports, TabOptions:
		return Tab(strings.ToLower(word)), true
	}
	return "", false
}

// EventKind enumerates everything the controller reacts to: user
// interactions and fetch completions alike.
type EventKind int

const (
	EventTabSelect EventKind = iota
	EventRefresh
	EventApprove
	EventReject
	EventGenerate
	EventLoadChain
	EventExplain
	EventFetchDone
	EventQuit
	EventNoop
)

// Event is one unit of work for Dispatch. Only the fields relevant to its
// Kind are set.
type Event struct {
	Kind   EventKind
	Tab    Tab
	CardID int64
	Symbol string
	Expiry string

	// FetchDone fields. Gen is the generation the fetch was started under;
	// a completion whose generation no longer matches the tab's current one
	// is discarded instead of overwriting newer data.
	Gen    uint64
	Result interface{}
	Err    error
}

// reportsResult carries the two report payloads that render together.
type reportsResult struct {
	EOD     *models.EODReport
	Monthly *models.MonthlyReport
}

// Gateway is the remote service surface the controller orchestrates.
type Gateway interface {
	AuthStatus(ctx context.Context) (*models.AuthStatus, error)
	PendingCards(ctx context.Context) ([]models.TradeCard, error)
	ApproveCard(ctx context.Context, cardID int64, notes string) error
	RejectCard(ctx context.Context, cardID int64, reason string) error
	ExplainGuardrails(ctx context.Context, cardID int64) (*models.GuardrailExplanation, error)
	Positions(ctx context.Context) ([]models.Position, error)
	Orders(ctx context.Context) ([]models.Order, error)
	RunSignals(ctx context.Context, req models.SignalRunRequest) (*models.SignalRunResponse, error)
	EODReport(ctx context.Context, date string) (*models.EODReport, error)
	MonthlyReport(ctx context.Context, month string) (*models.MonthlyReport, error)
	OptionChain(ctx context.Context, symbol, expiry string) (*models.OptionChain, error)
	LoginURL() string
}

// Prompter collects interactive operator input. Approve and Reject block
// on it before any network call is made.
type Prompter interface {
	ConfirmApprove(card *models.TradeCard) (bool, error)
	RejectReason(card *models.TradeCard) (string, error)
	ConfirmGenerate() (bool, error)
	ChainParams() (symbol, expiry string, err error)
}

// ErrQuit is returned by Dispatch when the operator asks to exit.
var ErrQuit = errors.New("quit requested")

// errValidation marks client-side input gating: a cancelled prompt or an
// empty required field. The action never happened and nothing reached the
// network.
var errValidation = errors.New("input validation failed")

// Controller owns all mutable UI state: the active tab, the cached entity
// lists, and the per-tab fetch generations. It is single-threaded; fetch
// goroutines never touch state directly, they post FetchDone events back
// through the event channel.
type Controller struct {
	cfg      *config.Config
	gw       Gateway
	prompter Prompter
	render   *Renderer
	logger   *zap.Logger

	events chan Event

	activeTab Tab
	gens      map[Tab]uint64

	pending   []models.TradeCard
	positions []models.Position
	orders    []models.Order
	eod       *models.EODReport
	monthly   *models.MonthlyReport
	chain     *models.OptionChain

	lastChainSymbol string
	lastChainExpiry string

	authNoticeShown bool
}

func NewController(cfg *config.Config, gw Gateway, prompter Prompter, render *Renderer, logger *zap.Logger) *Controller {
	return &Controller{
		cfg:       cfg,
		gw:        gw,
		prompter:  prompter,
		render:    render,
		logger:    logger,
		events:    make(chan Event, 16),
		activeTab: TabPending,
		gens:      make(map[Tab]uint64),
	}
}

// Events exposes the channel fetch completions arrive on. The run loop
// feeds these back into Dispatch.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// ActiveTab returns the currently selected tab.
func (c *Controller) ActiveTab() Tab {
	return c.activeTab
}

// Startup checks authentication and loads the initial tab. A failed status
// check is diagnostic-only: it is logged and the client degrades to the
// logged-out affordance.
func (c *Controller) Startup(ctx context.Context) {
	c.logger.Info("dashboard starting",
		zap.String("api", c.cfg.APIBaseURL),
		zap.String("user", c.cfg.UserID))

	status, err := c.gw.AuthStatus(ctx)
	switch {
	case err != nil:
		c.logger.Warn("auth status check failed", zap.Error(err))
		c.render.Warn("Broker session unknown. Type 'login' to authenticate.")
	case !status.Authenticated:
		c.render.Warn("Not authenticated with broker. Type 'login' to authenticate.")
	}

	c.Dispatch(ctx, Event{Kind: EventTabSelect, Tab: TabPending})
}

// ConsumeAuthRedirect inspects a post-login redirect URL. The auth=success
// marker is honoured exactly once: the first sighting shows the success
// notice and the parameter is stripped from the returned URL.
func (c *Controller) ConsumeAuthRedirect(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	query := u.Query()
	if query.Get("auth") != "success" {
		return raw
	}

	if !c.authNoticeShown {
		c.authNoticeShown = true
		c.render.Success("Broker authentication successful")
	}

	query.Del("auth")
	u.RawQuery = query.Encode()
	return u.String()
}

// Dispatch is the single event-processing function. Every user interaction
// and every fetch completion goes through here, on one goroutine.
func (c *Controller) Dispatch(ctx context.Context, ev Event) error {
	switch ev.Kind {
	case EventTabSelect:
		return c.handleTabSelect(ctx, ev.Tab)
	case EventRefresh:
		return c.handleRefresh(ctx)
	case EventApprove:
		return c.handleApprove(ctx, ev.CardID)
	case EventReject:
		return c.handleReject(ctx, ev.CardID)
	case EventGenerate:
		return c.handleGenerate(ctx)
	case EventLoadChain:
		return c.handleLoadChain(ctx, ev.Symbol, ev.Expiry)
	case EventExplain:
		return c.handleExplain(ctx, ev.CardID)
	case EventFetchDone:
		c.handleFetchDone(ev)
		return nil
	case EventQuit:
		return ErrQuit
	case EventNoop:
		return nil
	default:
		return fmt.Errorf("unknown event kind %d", ev.Kind)
	}
}

// handleTabSelect switches the active view and auto-fetches its data. The
// options tab is the exception: it is parameterized and only loads on an
// explicit chain command.
func (c *Controller) handleTabSelect(ctx context.Context, tab Tab) error {
	c.activeTab = tab

	if tab == TabOptions {
		c.renderActive()
		if c.chain == nil {
			c.render.Info("Type 'chain' to load an option chain.")
		}
		return nil
	}

	c.startFetch(ctx, tab)
	return nil
}

func (c *Controller) handleRefresh(ctx context.Context) error {
	if c.activeTab == TabOptions {
		if c.lastChainSymbol == "" {
			c.render.Info("Nothing to refresh. Type 'chain' to load an option chain.")
			return nil
		}
		return c.handleLoadChain(ctx, c.lastChainSymbol, c.lastChainExpiry)
	}
	c.startFetch(ctx, c.activeTab)
	return nil
}

// startFetch bumps the tab's generation and launches the fetch in the
// background; the completion comes back as a FetchDone event stamped with
// the generation it was started under.
func (c *Controller) startFetch(ctx context.Context, tab Tab) {
	c.gens[tab]++
	gen := c.gens[tab]

	c.render.ShowLoading(string(tab))

	go func() {
		result, err := c.fetch(ctx, tab)
		c.events <- Event{Kind: EventFetchDone, Tab: tab, Gen: gen, Result: result, Err: err}
	}()
}

func (c *Controller) fetch(ctx context.Context, tab Tab) (interface{}, error) {
	switch tab {
	case TabPending:
		return c.gw.PendingCards(ctx)
	case TabPositions:
		return c.gw.Positions(ctx)
	case TabOrders:
		return c.gw.Orders(ctx)
	case TabReports:
		// Both reports load concurrently and render together; if either
		// fails neither panel updates.
		var result reportsResult
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			eod, err := c.gw.EODReport(gctx, "")
			result.EOD = eod
			return err
		})
		g.Go(func() error {
			monthly, err := c.gw.MonthlyReport(gctx, "")
			result.Monthly = monthly
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return result, nil
	default:
		return nil, fmt.Errorf("tab %q has no automatic fetch", tab)
	}
}

// handleFetchDone commits a completed fetch. Stale completions, those
// whose generation no longer matches the tab's current one, are discarded
// so a slow earlier request can never overwrite newer data.
func (c *Controller) handleFetchDone(ev Event) {
	if ev.Gen != c.gens[ev.Tab] {
		c.logger.Debug("discarding stale fetch",
			zap.String("tab", string(ev.Tab)),
			zap.Uint64("gen", ev.Gen),
			zap.Uint64("current", c.gens[ev.Tab]))
		return
	}

	defer c.render.HideLoading()

	if ev.Err != nil {
		// Stale content stays in place; the operator re-triggers manually.
		c.render.Error(ev.Err.Error())
		return
	}

	switch result := ev.Result.(type) {
	case []models.TradeCard:
		c.pending = result
	case []models.Position:
		c.positions = result
	case []models.Order:
		c.orders = result
	case reportsResult:
		c.eod = result.EOD
		c.monthly = result.Monthly
	case *models.OptionChain:
		c.chain = result
	}

	if ev.Tab == c.activeTab {
		c.renderActive()
	}
}

// renderActive redraws the active tab from cached state. The previous
// view is cleared first so tabs replace each other instead of stacking.
func (c *Controller) renderActive() {
	c.render.ClearScreen()
	switch c.activeTab {
	case TabPending:
		c.render.RenderPending(c.pending)
	case TabPositions:
		c.render.RenderPositions(c.positions)
	case TabOrders:
		c.render.RenderOrders(c.orders)
	case TabReports:
		if c.eod != nil && c.monthly != nil {
			c.render.RenderReports(c.eod, c.monthly)
		}
	case TabOptions:
		if c.chain != nil {
			c.render.RenderChain(c.chain)
		}
	}
}

func (c *Controller) cardByID(cardID int64) *models.TradeCard {
	for i := range c.pending {
		if c.pending[i].ID == cardID {
			return &c.pending[i]
		}
	}
	return nil
}

// handleApprove confirms and submits an approval. On success the card is
// removed from view solely by the unconditional pending re-fetch; nothing
// is patched locally.
func (c *Controller) handleApprove(ctx context.Context, cardID int64) error {
	card := c.cardByID(cardID)
	if card == nil {
		c.render.Error(fmt.Sprintf("No pending trade card #%d", cardID))
		return nil
	}

	confirmed, err := c.prompter.ConfirmApprove(card)
	if err != nil || !confirmed {
		c.render.Info("Approval cancelled")
		return nil
	}

	if err := c.gw.ApproveCard(ctx, cardID, ""); err != nil {
		// The card stays visible and re-approvable.
		c.render.Error("Approve failed: " + err.Error())
		return nil
	}

	c.render.Success(fmt.Sprintf("Trade card #%d approved, order placed", cardID))
	c.startFetch(ctx, TabPending)
	return nil
}

// handleReject collects a mandatory reason and submits the rejection. An
// empty or cancelled reason aborts with zero network calls.
func (c *Controller) handleReject(ctx context.Context, cardID int64) error {
	card := c.cardByID(cardID)
	if card == nil {
		c.render.Error(fmt.Sprintf("No pending trade card #%d", cardID))
		return nil
	}

	reason, err := c.promptRejectReason(card)
	if err != nil {
		c.render.Info("Rejection cancelled")
		return nil
	}

	if err := c.gw.RejectCard(ctx, cardID, reason); err != nil {
		c.render.Error("Reject failed: " + err.Error())
		return nil
	}

	c.render.Success(fmt.Sprintf("Trade card #%d rejected", cardID))
	c.startFetch(ctx, TabPending)
	return nil
}

func (c *Controller) promptRejectReason(card *models.TradeCard) (string, error) {
	reason, err := c.prompter.RejectReason(card)
	if err != nil {
		return "", errValidation
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", errValidation
	}
	return reason, nil
}

// handleGenerate triggers the server-side signal pipeline. The pending
// list refreshes only when that tab is what the operator is looking at.
func (c *Controller) handleGenerate(ctx context.Context) error {
	confirmed, err := c.prompter.ConfirmGenerate()
	if err != nil || !confirmed {
		c.render.Info("Signal generation cancelled")
		return nil
	}

	c.render.ShowLoading("signal generation")
	result, err := c.gw.RunSignals(ctx, models.SignalRunRequest{})
	c.render.HideLoading()
	if err != nil {
		c.render.Error("Signal generation failed: " + err.Error())
		return nil
	}

	c.render.Success(fmt.Sprintf("Signals generated: %d candidates, %d trade cards created",
		result.CandidatesFound, result.TradeCardsCreated))

	if c.activeTab == TabPending {
		c.startFetch(ctx, TabPending)
	}
	return nil
}

// handleLoadChain loads the option chain for an explicit symbol/expiry.
func (c *Controller) handleLoadChain(ctx context.Context, symbol, expiry string) error {
	symbol = strings.TrimSpace(strings.ToUpper(symbol))
	if symbol == "" {
		c.render.Error("Symbol is required to load an option chain")
		return nil
	}

	c.lastChainSymbol = symbol
	c.lastChainExpiry = expiry
	c.activeTab = TabOptions

	c.gens[TabOptions]++
	gen := c.gens[TabOptions]
	c.render.ShowLoading("option chain")

	go func() {
		chain, err := c.gw.OptionChain(ctx, symbol, expiry)
		c.events <- Event{Kind: EventFetchDone, Tab: TabOptions, Gen: gen, Result: chain, Err: err}
	}()
	return nil
}

// handleExplain shows the guardrail breakdown for a card. Explanations are
// only offered for cards carrying risk warnings.
func (c *Controller) handleExplain(ctx context.Context, cardID int64) error {
	card := c.cardByID(cardID)
	if card == nil {
		c.render.Error(fmt.Sprintf("No pending trade card #%d", cardID))
		return nil
	}
	if len(card.RiskWarnings) == 0 {
		c.render.Info(fmt.Sprintf("Trade card #%d has no risk warnings", cardID))
		return nil
	}

	explanation, err := c.gw.ExplainGuardrails(ctx, cardID)
	if err != nil {
		c.render.Error("Explain failed: " + err.Error())
		return nil
	}

	c.render.RenderExplanation(explanation)
	return nil
}
