// Command console is the StoreFlow order console: a terminal client for the
// remote order-management API with a local dashboard server.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	localapi "github.com/storeflow/order-console/internal/api"
	"github.com/storeflow/order-console/internal/core/domain"
	"github.com/storeflow/order-console/internal/core/notice"
	"github.com/storeflow/order-console/internal/core/ports"
	"github.com/storeflow/order-console/internal/core/service"
	apiclient "github.com/storeflow/order-console/internal/infrastructure/api"
	"github.com/storeflow/order-console/internal/infrastructure/config"
	"github.com/storeflow/order-console/internal/infrastructure/store"
	"github.com/storeflow/order-console/pkg/logger"
)

type cli struct {
	Login     loginCmd     `cmd:"" help:"Log in to the order service."`
	Register  registerCmd  `cmd:"" help:"Register a new shop account."`
	Logout    logoutCmd    `cmd:"" help:"Clear the stored session."`
	Whoami    whoamiCmd    `cmd:"" help:"Show the current session."`
	Orders    ordersCmd    `cmd:"" help:"List and manage orders."`
	Customers customersCmd `cmd:"" help:"Show orders grouped by customer."`
	Dashboard dashboardCmd `cmd:"" help:"Show the dashboard figures."`
	Activity  activityCmd  `cmd:"" help:"Show the 52-week order activity grid."`
	Serve     serveCmd     `cmd:"" help:"Run the local dashboard server."`
}

// app carries the wired services into command Run methods via kong bindings.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	sessions *service.SessionService
	orders   *service.OrderService
	notices  *notice.Center
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	client, err := apiclient.NewClient(apiclient.Config{
		BaseURL:       cfg.APIBaseURL,
		VerifyTimeout: cfg.VerifyTimeout,
		AuthTimeout:   cfg.AuthTimeout,
		OrderTimeout:  cfg.OrderTimeout,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build api client")
	}

	tokens, err := buildTokenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build token store")
	}

	sessions := service.NewSessionService(client, tokens, log)
	orders := service.NewOrderService(client, sessions, log)
	a := &app{
		cfg:      cfg,
		log:      log,
		sessions: sessions,
		orders:   orders,
		notices:  notice.NewCenter(notice.DefaultTTL),
	}

	parsed := kong.Parse(&cli{},
		kong.Description("Terminal console for the StoreFlow order-management service."),
		kong.UsageOnError(),
		kong.Bind(a),
	)

	// Restore a persisted session before any command runs. A transient
	// backend outage keeps the token for the next run instead of logging out.
	sessions.Initialize(ctx)

	parsed.FatalIfErrorf(parsed.Run(ctx))
}

func buildTokenStore(ctx context.Context, cfg *config.Config) (ports.TokenStore, error) {
	switch cfg.Session.Backend {
	case "redis":
		client, err := store.Connect(ctx, store.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		return store.NewRedisStore(client), nil
	default:
		return store.NewFileStore(cfg.Session.TokenFile)
	}
}

type loginCmd struct {
	Email    string `required:"" help:"Account email."`
	Password string `required:"" help:"Account password."`
}

func (c *loginCmd) Run(a *app, ctx context.Context) error {
	out := a.sessions.Login(ctx, c.Email, c.Password)
	if !out.Success {
		return errors.New(out.Message)
	}
	if user := a.sessions.User(); user != nil && user.ShopName != "" {
		fmt.Printf("Logged in to %s.\n", user.ShopName)
	} else {
		fmt.Println("Logged in.")
	}
	return nil
}

type registerCmd struct {
	Shop     string `required:"" help:"Shop name."`
	Owner    string `required:"" help:"Owner name."`
	Email    string `required:"" help:"Account email."`
	Password string `required:"" help:"Account password."`
}

func (c *registerCmd) Run(a *app, ctx context.Context) error {
	out := a.sessions.Register(ctx, ports.RegisterInput{
		ShopName:  c.Shop,
		OwnerName: c.Owner,
		Email:     c.Email,
		Password:  c.Password,
	})
	if !out.Success {
		return errors.New(out.Message)
	}
	fmt.Println("Account created and logged in.")
	return nil
}

type logoutCmd struct{}

func (c *logoutCmd) Run(a *app) error {
	a.sessions.Logout()
	fmt.Println("Logged out.")
	return nil
}

type whoamiCmd struct{}

func (c *whoamiCmd) Run(a *app) error {
	if user := a.sessions.User(); user != nil {
		fmt.Printf("%s <%s> — %s\n", user.OwnerName, user.Email, user.ShopName)
		return nil
	}
	if a.sessions.Token() != "" {
		fmt.Println("Session token held, but not verified this run (backend unreachable).")
		return nil
	}
	fmt.Println("Not logged in.")
	return nil
}

type ordersCmd struct {
	List   ordersListCmd   `cmd:"" default:"withargs" help:"List orders."`
	Add    ordersAddCmd    `cmd:"" help:"Place a new order."`
	Update ordersUpdateCmd `cmd:"" help:"Replace an order's fields."`
	Delete ordersDeleteCmd `cmd:"" help:"Delete an order."`
}

type ordersListCmd struct {
	Query string `short:"q" help:"Filter customers by name, phone, or address."`
}

func (c *ordersListCmd) Run(a *app, ctx context.Context) error {
	groups, err := a.orders.Customers(ctx, c.Query)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tCUSTOMER\tITEMS\tTOTAL\tPLACED")
	for _, g := range groups {
		for _, o := range g.Orders {
			fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%s\n",
				o.ID, o.CustomerName, len(o.Products), o.Total(), o.OrderTime.Local().Format("2006-01-02 15:04"))
		}
	}
	return w.Flush()
}

type ordersAddCmd struct {
	Name    string   `required:"" help:"Customer name."`
	Phone   string   `required:"" help:"Customer phone."`
	Address string   `required:"" help:"Customer address."`
	Item    []string `required:"" help:"Line item as name:qty:price (repeatable)."`
}

func (c *ordersAddCmd) Run(a *app, ctx context.Context) error {
	form := service.NewOrderForm(a.orders, a.notices, a.log)
	form.SetCustomer(c.Name, c.Phone, c.Address)

	for i, raw := range c.Item {
		name, qty, price, err := splitItem(raw)
		if err != nil {
			return err
		}
		if i > 0 {
			form.AddLine()
		}
		form.UpdateLine(i, service.FieldName, name)
		form.UpdateLine(i, service.FieldQuantity, qty)
		form.UpdateLine(i, service.FieldPrice, price)
	}

	if err := form.Submit(ctx); err != nil {
		if n := a.notices.Current(); n != nil {
			return errors.New(n.Text)
		}
		return err
	}
	if n := a.notices.Current(); n != nil {
		fmt.Println(n.Text)
	}
	fmt.Printf("Total: %.2f\n", sumItems(c.Item))
	return nil
}

type ordersUpdateCmd struct {
	ID      string   `arg:"" help:"Order id to update."`
	Name    string   `required:"" help:"Customer name."`
	Phone   string   `required:"" help:"Customer phone."`
	Address string   `required:"" help:"Customer address."`
	Item    []string `required:"" help:"Line item as name:qty:price (repeatable)."`
}

func (c *ordersUpdateCmd) Run(a *app, ctx context.Context) error {
	items, err := parseItems(c.Item)
	if err != nil {
		return err
	}
	input := ports.OrderInput{
		CustomerName:    c.Name,
		CustomerPhone:   c.Phone,
		CustomerAddress: c.Address,
		Products:        items,
	}
	if err := a.orders.Update(ctx, c.ID, input); err != nil {
		return err
	}
	fmt.Println("Order updated.")
	return nil
}

type ordersDeleteCmd struct {
	ID string `arg:"" help:"Order id to delete."`
}

func (c *ordersDeleteCmd) Run(a *app, ctx context.Context) error {
	if err := a.orders.Delete(ctx, c.ID); err != nil {
		return err
	}
	fmt.Println("Order deleted.")
	return nil
}

type customersCmd struct {
	Query string `short:"q" help:"Filter by name, phone, or address."`
}

func (c *customersCmd) Run(a *app, ctx context.Context) error {
	groups, err := a.orders.Customers(ctx, c.Query)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CUSTOMER\tPHONE\tADDRESS\tORDERS\tSPEND")
	for _, g := range groups {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\n",
			g.CustomerName, g.CustomerPhone, g.CustomerAddress, g.OrderCount(), g.TotalSpend())
	}
	return w.Flush()
}

type dashboardCmd struct{}

func (c *dashboardCmd) Run(a *app, ctx context.Context) error {
	view, err := a.orders.Dashboard(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Customers:      %d\n", view.Stats.TotalCustomers)
	fmt.Printf("Orders:         %d\n", view.Stats.TotalOrders)
	fmt.Printf("Revenue:        %.2f\n", view.Stats.TotalRevenue)
	fmt.Printf("Orders today:   %d\n", view.Stats.TodayOrders)
	return nil
}

type activityCmd struct{}

var levelGlyphs = []rune{'·', '░', '▒', '▓', '█'}

func (c *activityCmd) Run(a *app, ctx context.Context) error {
	view, err := a.orders.Dashboard(ctx)
	if err != nil {
		return err
	}

	// One row per day-of-week, one column per week, oldest week first.
	for day := 0; day < domain.ActivityDaysPerWeek; day++ {
		var row strings.Builder
		for _, week := range view.Activity {
			row.WriteRune(levelGlyphs[domain.ActivityLevel(week[day].Count)])
		}
		fmt.Println(row.String())
	}
	return nil
}

type serveCmd struct {
	Port string `help:"Port to listen on (overrides STOREFLOW_SERVE_PORT)."`
}

func (c *serveCmd) Run(a *app) error {
	port := c.Port
	if port == "" {
		port = a.cfg.Serve.Port
	}
	e := localapi.NewRouter(a.sessions, a.orders, a.log)
	a.log.Info().Str("port", port).Msg("local dashboard listening")
	return e.Start(":" + port)
}

// splitItem parses "name:qty:price". The name may itself contain colons;
// the last two segments are always quantity and price.
func splitItem(raw string) (name, qty, price string, err error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 3 {
		return "", "", "", fmt.Errorf("invalid item %q: expected name:qty:price", raw)
	}
	return strings.Join(parts[:len(parts)-2], ":"), parts[len(parts)-2], parts[len(parts)-1], nil
}

func parseItems(raw []string) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, len(raw))
	for i, r := range raw {
		name, qtyStr, priceStr, err := splitItem(r)
		if err != nil {
			return nil, err
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil || qty < 1 {
			qty = 1
		}
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			price = 0
		}
		items[i] = domain.LineItem{Name: name, Quantity: qty, Price: price}
	}
	return items, nil
}

func sumItems(raw []string) float64 {
	items, err := parseItems(raw)
	if err != nil {
		return 0
	}
	var total float64
	for _, li := range items {
		total += li.Subtotal()
	}
	return total
}
