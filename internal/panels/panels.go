package panels

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/five82/bazaar/internal/market"
	"github.com/five82/bazaar/internal/surface"
	"github.com/five82/bazaar/internal/table"
)

// Surface ids written by the panel loaders.
const (
	CraftingSurface       = "crafting-container"
	LiquiditySurface      = "liquidity-container"
	ArbitrageSurface      = "arbitrage-container"
	ConstantOrdersSurface = "constant-orders-container"
	OneTimeOrdersSurface  = "onetime-orders-container"
	SuppliersSurface      = "suppliers-container"
)

// SurfaceIDs lists every table surface in display order.
func SurfaceIDs() []string {
	return []string{
		CraftingSurface,
		LiquiditySurface,
		ArbitrageSurface,
		ConstantOrdersSurface,
		OneTimeOrdersSurface,
		SuppliersSurface,
	}
}

// Titles maps each table surface to a human title.
var Titles = map[string]string{
	CraftingSurface:       "Crafting Opportunities",
	LiquiditySurface:      "Market Liquidity",
	ArbitrageSurface:      "Arbitrage Routes",
	ConstantOrdersSurface: "Constant Orders",
	OneTimeOrdersSurface:  "One-Time Orders",
	SuppliersSurface:      "Suppliers",
}

// Source is the part of the advisor API the panels read.
type Source interface {
	Crafting(ctx context.Context, top int) []market.CraftingOpportunity
	Liquidity(ctx context.Context) []market.LiquidityRecord
	Arbitrage(ctx context.Context) []market.ArbitrageRoute
	Orders(ctx context.Context) []market.Order
	Suppliers(ctx context.Context) []market.Supplier
}

// Options tune loader transforms.
type Options struct {
	CraftingTop  int // result cap requested from the server
	LiquidityTop int // rows kept after fetching
}

const (
	defaultCraftingTop  = 15
	defaultLiquidityTop = 10
)

// Loader loads one panel.
type Loader struct {
	Name string
	Load func(ctx context.Context)
}

// Panels owns the dashboard's five table panels.
type Panels struct {
	source Source
	engine *table.Engine
	opts   Options
}

// New returns panels reading from source and rendering through engine.
func New(source Source, engine *table.Engine, opts Options) *Panels {
	if opts.CraftingTop <= 0 {
		opts.CraftingTop = defaultCraftingTop
	}
	if opts.LiquidityTop <= 0 {
		opts.LiquidityTop = defaultLiquidityTop
	}
	return &Panels{source: source, engine: engine, opts: opts}
}

// Loaders returns one loader per panel. They are independent and safe to
// run concurrently.
func (p *Panels) Loaders() []Loader {
	return []Loader{
		{Name: "crafting", Load: p.LoadCrafting},
		{Name: "liquidity", Load: p.LoadLiquidity},
		{Name: "arbitrage", Load: p.LoadArbitrage},
		{Name: "orders", Load: p.LoadOrders},
		{Name: "suppliers", Load: p.LoadSuppliers},
	}
}

// LoadAll runs every loader concurrently and waits for all of them.
func (p *Panels) LoadAll(ctx context.Context) {
	var g errgroup.Group
	for _, l := range p.Loaders() {
		g.Go(func() error {
			l.Load(ctx)
			return nil
		})
	}
	_ = g.Wait()
}

// LoadCrafting shows the top crafting opportunities.
func (p *Panels) LoadCrafting(ctx context.Context) {
	p.loading(CraftingSurface, "Calculating Smart Sourcing...")
	rows := p.source.Crafting(ctx, p.opts.CraftingTop)
	table.Render(p.engine, CraftingSurface, CraftingColumns, rows)
}

// LoadLiquidity shows the most liquid items.
func (p *Panels) LoadLiquidity(ctx context.Context) {
	p.loading(LiquiditySurface, "Fetching market volume...")
	rows := TopN(p.source.Liquidity(ctx), p.opts.LiquidityTop)
	table.Render(p.engine, LiquiditySurface, LiquidityColumns, rows)
}

// LoadArbitrage shows arbitrage routes scored by volume.
func (p *Panels) LoadArbitrage(ctx context.Context) {
	p.loading(ArbitrageSurface, "Scoring by Volume...")
	rows := p.source.Arbitrage(ctx)
	table.Render(p.engine, ArbitrageSurface, ArbitrageColumns, rows)
}

// LoadOrders splits client orders into the constant and one-time tables.
func (p *Panels) LoadOrders(ctx context.Context) {
	constant, oneTime := PartitionOrders(p.source.Orders(ctx))
	table.Render(p.engine, ConstantOrdersSurface, OrderColumns, constant)
	table.Render(p.engine, OneTimeOrdersSurface, OrderColumns, oneTime)
}

// LoadSuppliers shows known suppliers.
func (p *Panels) LoadSuppliers(ctx context.Context) {
	rows := p.source.Suppliers(ctx)
	table.Render(p.engine, SuppliersSurface, SupplierColumns, rows)
}

func (p *Panels) loading(id, text string) {
	if target := p.engine.Target(); target != nil {
		target.Set(id, surface.Loading(text))
	}
}

// PartitionOrders splits orders by Order_Type into constant orders and
// everything else. Relative order within each side matches the input.
func PartitionOrders(orders []market.Order) (constant, other []market.Order) {
	for _, o := range orders {
		if o.IsConstant() {
			constant = append(constant, o)
		} else {
			other = append(other, o)
		}
	}
	return constant, other
}

// TopN returns at most n leading rows.
func TopN[R any](rows []R, n int) []R {
	if n <= 0 || len(rows) <= n {
		return rows
	}
	return rows[:n]
}
