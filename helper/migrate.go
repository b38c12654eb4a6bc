package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"garage/config"
	"net"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

// migrationsSource is relative to the working directory of cmd/app and cmd/migrate.
const migrationsSource = "file://migrations/postgres"

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"
)

var ErrUnknownAction = errors.New("unknown migration action")

type migration struct {
	run  func(mig *migrate.Migrate) error
	done string
}

var migrations = map[string]migration{
	ActionUp:     {run: (*migrate.Migrate).Up, done: "appointments schema is up to date"},
	ActionStepUp: {run: func(mig *migrate.Migrate) error { return mig.Steps(1) }, done: "applied one appointments migration"},
	ActionDown:   {run: func(mig *migrate.Migrate) error { return mig.Steps(-1) }, done: "rolled back one appointments migration"},
	ActionDrop:   {run: (*migrate.Migrate).Down, done: "rolled back every appointments migration"},
}

// databaseURL builds the golang-migrate postgres URL from the write connection.
func databaseURL(cfg *config.Config) string {
	write := cfg.DB.Postgres.Write

	query := url.Values{}
	query.Set("sslmode", write.SSLMode)

	if cfg.DB.Postgres.MigrationTable != "" {
		query.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     cfg.DB.Postgres.Prefix + write.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Runner applies action against the appointments database.
func Runner(cfg *config.Config, action string) error {
	step, ok := migrations[action]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	mig, err := migrate.New(migrationsSource, databaseURL(cfg))
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	defer mig.Close()

	if err = step.run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migration %s: %w", action, err)
	}

	log.Info().Str("action", action).Str("table", cfg.DB.Postgres.MigrationTable).Msg(step.done)

	return nil
}

func Up(cfg *config.Config) error {
	return Runner(cfg, ActionUp)
}

func StepUp(cfg *config.Config) error {
	return Runner(cfg, ActionStepUp)
}

func Down(cfg *config.Config) error {
	return Runner(cfg, ActionDown)
}

func Drop(cfg *config.Config) error {
	return Runner(cfg, ActionDrop)
}
