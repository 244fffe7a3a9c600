package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/urfave/cli/v2"

	"github.com/stockroom/replenish-backend/internal/adapter/postgres"
	"github.com/stockroom/replenish-backend/internal/adapter/postgres/notification"
	"github.com/stockroom/replenish-backend/internal/adapter/postgres/staff"
	"github.com/stockroom/replenish-backend/internal/app"
	"github.com/stockroom/replenish-backend/internal/auth"
	"github.com/stockroom/replenish-backend/internal/config"
	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/pkg/ctxutil"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "manage the database schema",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply pending migrations",
				Action: func(c *cli.Context) error {
					return withMigrator(c, func(ctx context.Context, m *postgres.Migrator) error {
						applied, err := m.Up(ctx)
						if err != nil {
							return err
						}
						if len(applied) == 0 {
							fmt.Fprintln(c.App.Writer, "schema is up to date")
							return nil
						}
						for _, v := range applied {
							fmt.Fprintf(c.App.Writer, "applied %05d\n", v)
						}
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "list migrations and whether they are applied",
				Action: func(c *cli.Context) error {
					return withMigrator(c, func(ctx context.Context, m *postgres.Migrator) error {
						states, err := m.Status(ctx)
						if err != nil {
							return err
						}
						return printMigrations(c.App.Writer, states)
					})
				},
			},
		},
	}
}

func suppliersCommand() *cli.Command {
	return &cli.Command{
		Name:  "suppliers",
		Usage: "supplier maintenance",
		Subcommands: []*cli.Command{
			{
				Name:  "rescore",
				Usage: "recompute every supplier score from delivery history",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "actor", Usage: "staff id recorded as the operator", Required: true},
				},
				Action: func(c *cli.Context) error {
					actor, err := uuid.Parse(c.String("actor"))
					if err != nil {
						return fmt.Errorf("--actor: %w", err)
					}
					return withServices(c, func(ctx context.Context, s *app.Services) error {
						res, err := s.Suppliers.Rescore(operatorCtx(ctx, actor))
						if err != nil {
							return err
						}
						tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
						fmt.Fprintln(tw, "SUPPLIER\tSCORE\tORDERS")
						for _, u := range res.Updated {
							fmt.Fprintf(tw, "%s\t%s\t%d\n", u.SupplierID, u.Score.StringFixed(2), u.Orders)
						}
						if err := tw.Flush(); err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "%d updated, %d skipped\n", len(res.Updated), res.Skipped)
						return nil
					})
				},
			},
		},
	}
}

func stockCommand() *cli.Command {
	return &cli.Command{
		Name:  "stock",
		Usage: "stock reports",
		Subcommands: []*cli.Command{
			{
				Name:  "alerts",
				Usage: "list products at or below their minimum threshold",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "actor", Usage: "staff id running the report", Required: true},
				},
				Action: func(c *cli.Context) error {
					actor, err := uuid.Parse(c.String("actor"))
					if err != nil {
						return fmt.Errorf("--actor: %w", err)
					}
					return withServices(c, func(ctx context.Context, s *app.Services) error {
						products, err := s.Ledger.ListAlerts(operatorCtx(ctx, actor))
						if err != nil {
							return err
						}
						return printAlerts(c.App.Writer, products)
					})
				},
			},
		},
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "identity tokens",
		Subcommands: []*cli.Command{
			{
				Name:  "issue",
				Usage: "sign a token for an active staff member",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "staff", Usage: "staff id", Required: true},
				},
				Action: func(c *cli.Context) error {
					staffID, err := uuid.Parse(c.String("staff"))
					if err != nil {
						return fmt.Errorf("--staff: %w", err)
					}
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					return withPool(c, cfg, func(ctx context.Context, pool *pgxpool.Pool) error {
						member, err := staff.New(pool).GetByID(ctx, staffID)
						if err != nil {
							return err
						}
						if !member.Active {
							return fmt.Errorf("staff %s is inactive", staffID)
						}
						token, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.TokenTTL).Issue(member.ID, member.Role)
						if err != nil {
							return err
						}
						fmt.Fprintln(c.App.Writer, token)
						return nil
					})
				},
			},
		},
	}
}

func staffCommand() *cli.Command {
	return &cli.Command{
		Name:  "staff",
		Usage: "staff directory maintenance",
		Subcommands: []*cli.Command{
			{
				Name:  "promote",
				Usage: "change a staff member's role, e.g. to bootstrap the first ADMIN",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Usage: "email of the staff member", Required: true},
					&cli.StringFlag{Name: "role", Usage: "new role", Value: domain.UserRoleAdmin.String()},
				},
				Action: func(c *cli.Context) error {
					role := domain.UserRole(strings.ToUpper(c.String("role")))
					if !role.IsValid() {
						return fmt.Errorf("--role: unknown role %q", c.String("role"))
					}
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					return withPool(c, cfg, func(ctx context.Context, pool *pgxpool.Pool) error {
						member, err := staff.New(pool).SetRoleByEmail(ctx, c.String("email"), role)
						if err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "%s (%s) is now %s\n", member.Email, member.ID, member.Role)
						return nil
					})
				},
			},
		},
	}
}

func notificationsCommand() *cli.Command {
	return &cli.Command{
		Name:  "notifications",
		Usage: "in-app notification maintenance",
		Subcommands: []*cli.Command{
			{
				Name:  "purge",
				Usage: "delete notifications read longer ago than --older-than",
				Flags: []cli.Flag{
					&cli.DurationFlag{Name: "older-than", Usage: "retention for read notifications", Value: 90 * 24 * time.Hour},
				},
				Action: func(c *cli.Context) error {
					retention := c.Duration("older-than")
					if retention <= 0 {
						return fmt.Errorf("--older-than must be positive")
					}
					cfg, err := config.Load()
					if err != nil {
						return err
					}
					return withPool(c, cfg, func(ctx context.Context, pool *pgxpool.Pool) error {
						cutoff := time.Now().UTC().Add(-retention)
						n, err := notification.New(pool).PurgeRead(ctx, cutoff)
						if err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "purged %d notifications read before %s\n", n, cutoff.Format(time.RFC3339))
						return nil
					})
				},
			},
		},
	}
}

func withMigrator(c *cli.Context, fn func(context.Context, *postgres.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	m, err := postgres.NewMigrator(c.Context, cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer m.Close()
	return fn(c.Context, m)
}

func withPool(c *cli.Context, cfg *config.Config, fn func(context.Context, *pgxpool.Pool) error) error {
	pool, err := postgres.NewPool(c.Context, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(c.Context, pool)
}

// operatorCtx runs a command as an administrator identified by actor.
func operatorCtx(ctx context.Context, actor uuid.UUID) context.Context {
	ctx = ctxutil.WithUserID(ctx, actor)
	return ctxutil.WithRole(ctx, domain.UserRoleAdmin.String())
}

func withServices(c *cli.Context, fn func(context.Context, *app.Services) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	return withPool(c, cfg, func(ctx context.Context, pool *pgxpool.Pool) error {
		services, err := app.NewServices(cfg, pool, logger)
		if err != nil {
			return err
		}
		defer services.Close()
		return fn(ctx, services)
	})
}

func printMigrations(w io.Writer, states []postgres.MigrationState) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tSTATE\tFILE")
	for _, s := range states {
		state := "pending"
		if s.Applied {
			state = "applied"
		}
		fmt.Fprintf(tw, "%05d\t%s\t%s\n", s.Version, state, s.Path)
	}
	return tw.Flush()
}

func printAlerts(w io.Writer, products []domain.Product) error {
	if len(products) == 0 {
		_, err := fmt.Fprintln(w, "no products below threshold")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT\tNAME\tON HAND\tMINIMUM\tSTATUS")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", p.ID, p.Name, p.OnHand, p.MinimumThreshold, p.Status())
	}
	return tw.Flush()
}
