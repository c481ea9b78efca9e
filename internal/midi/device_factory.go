package midi

import "github.com/rs/zerolog"

// NewController opens the named device, or returns a Null controller for a dry run
func NewController(name string, dryRun bool, logger *zerolog.Logger) (Controller, error) {
	if dryRun {
		logger.Info().Msg("Dry run, no device will be opened")
		return NewNull(logger), nil
	}
	lp, err := Open(name, logger)
	if err != nil {
		return nil, err
	}
	return lp, nil
}
