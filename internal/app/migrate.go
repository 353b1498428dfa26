package app

import (
	"errors"
	"fmt"
	"os"
	"time"

	errorsUtils "github.com/Egor213/LogiScan/pkg/errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	log "github.com/sirupsen/logrus"
)

const (
	defaultAttempts = 10
	defaultTimeout  = time.Second
)

// Migrate brings the archive schema up to date.
func Migrate(pgUrl, migrationsPath string) error {
	log.WithField("migrations", migrationsPath).Info("Migrating archive schema")

	if _, err := os.Stat(migrationsPath); err != nil {
		return errorsUtils.WrapPathErr(fmt.Errorf("migrations directory %q: %w", migrationsPath, err))
	}

	var (
		connAttempts = defaultAttempts
		err          error
		mgrt         *migrate.Migrate
	)

	for connAttempts > 0 {
		mgrt, err = migrate.New("file://"+migrationsPath, pgUrl)
		if err == nil {
			break
		}

		connAttempts--
		log.Infof("Postgres trying to connect, attempts left: %d", connAttempts)
		time.Sleep(defaultTimeout)
	}

	if err != nil {
		return errorsUtils.WrapPathErr(err)
	}
	defer mgrt.Close()

	if err = mgrt.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errorsUtils.WrapPathErr(err)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("Migration no change")
		return nil
	}

	log.Info("Migration successful up")
	return nil
}
