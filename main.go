package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"worldpav/config"
	"worldpav/database"
	"worldpav/handlers"
	"worldpav/logger"
	"worldpav/middleware"
	"worldpav/models"
	"worldpav/overtime"
	"worldpav/service"
	"worldpav/store"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "worldpav",
		Short:        "Overtime hours and pay for field crews",
		SilenceUsage: true,
		RunE:         runServe,
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE:  runServe,
		},
		newCalcCmd(),
		newTokenCmd(),
	)
	return root
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Setup(cfg.IsLocalDev)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	middleware.SetJWTSecret(cfg.JWTSecret)

	if err := database.Init(cfg.DatabaseURL, cfg.AutoMigrate); err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	log.Info().Msg("Successfully connected to the database.")

	db := database.GetDB()
	rules := overtime.NewResolver(loc)
	gate := overtime.NewGate(overtime.NewCalculator(rules))
	repo := store.NewRepository(db)
	saver := store.NewOvertimeStore(store.NewGormWriter(db), store.WithStrictSchema(cfg.StrictSchema))
	svc := service.NewOvertimeService(gate, repo, saver)

	router := newRouter(
		handlers.NewOvertimeHandler(svc, repo, rules),
		handlers.NewRosterHandler(repo),
		database.Ping,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.ServerPort).Str("timezone", loc.String()).Bool("strict_schema", cfg.StrictSchema).Msg("API starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exiting")
	return nil
}

func newRouter(overtimeHandler *handlers.OvertimeHandler, rosterHandler *handlers.RosterHandler, ping func(context.Context) error) http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(logger.RequestLogger)
	router.Use(chimiddleware.Recoverer)

	router.Get("/healthz", handlers.Health(ping))

	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)

		r.Get("/workers", rosterHandler.ListWorkers)
		r.Get("/teams", rosterHandler.ListTeams)

		r.Post("/overtime/preview", overtimeHandler.Preview)
		r.Post("/overtime", overtimeHandler.CreateEntry)
		r.Put("/overtime/{id}", overtimeHandler.UpdateEntry)
		r.Get("/overtime", overtimeHandler.ListEntries)
		r.Get("/overtime/summary", overtimeHandler.Summary)

		// Admin and HR only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleHR))
			r.Delete("/overtime/{id}", overtimeHandler.DeleteEntry)
		})
	})

	return router
}

func newCalcCmd() *cobra.Command {
	var (
		date, entry, exit, shift, wage, timezone string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Evaluate one shift offline and print hours and amount",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := time.LoadLocation(timezone)
			if err != nil {
				return fmt.Errorf("load timezone %q: %w", timezone, err)
			}
			monthlyWage, err := decimal.NewFromString(wage)
			if err != nil {
				return fmt.Errorf("invalid wage %q: %w", wage, err)
			}
			payShift, err := overtime.ParsePayShiftType(shift)
			if err != nil {
				return err
			}

			gate := overtime.NewGate(overtime.NewCalculator(overtime.NewResolver(loc)))
			v := gate.Evaluate(overtime.Input{
				Date:        date,
				Entry:       entry,
				Exit:        exit,
				Shift:       payShift,
				MonthlyWage: monthlyWage,
			})

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "state:   %s\n", v.State)
			fmt.Fprintf(out, "hours:   %.1f\n", v.Preview.OvertimeHours)
			fmt.Fprintf(out, "amount:  %s\n", v.Preview.ComputedAmount.StringFixed(2))
			if !v.Valid() {
				fmt.Fprintf(out, "reason:  %s\n", v.Reason)
				return fmt.Errorf("entry rejected: %s", v.Problem)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Shift date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&entry, "entry", "", "Entry time HH:MM")
	cmd.Flags().StringVar(&exit, "exit", "", "Exit time HH:MM")
	cmd.Flags().StringVar(&shift, "shift", string(overtime.PayDay), "Shift type (day, night, saturday, sunday, holiday)")
	cmd.Flags().StringVar(&wage, "wage", "0", "Monthly wage")
	cmd.Flags().StringVar(&timezone, "timezone", overtime.DefaultTimezone, "Civil timezone dates are read in")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token for an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Setup(cfg.IsLocalDev)
			middleware.SetJWTSecret(cfg.JWTSecret)

			if err := database.Init(cfg.DatabaseURL, false); err != nil {
				return fmt.Errorf("initialize database: %w", err)
			}

			user, err := database.FindUserByUsername(username)
			if err != nil {
				return err
			}

			token, err := middleware.GenerateToken(user, cfg.JWTExpiration)
			if err != nil {
				return fmt.Errorf("sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "admin", "User to issue the token for")
	return cmd
}
