package logs

import (
	"context"
	"io"
	"log/slog"

	"github.com/reusee/vort/modes"
	slogmulti "github.com/samber/slog-multi"
)

type Logger = *slog.Logger

// Logger fans records out to the terminal and, when running as a systemd
// service or with -log-journal, to the journal. Test mode never touches the
// journal.
func (Module) Logger(
	writer Writer,
	mode modes.Mode,
) Logger {
	service := runningAsService()
	terminal := terminalHandler(writer)

	var handlers []slog.Handler
	var journalErr error
	if mode == modes.ModeProduction && (service || *toJournal) {
		journal, err := newJournalHandler()
		if err != nil {
			journalErr = err
		} else {
			handlers = append(handlers, journal)
		}
	}
	// a service's stderr already lands in the journal
	if !service || len(handlers) == 0 {
		handlers = append(handlers, terminal)
	}
	if journalErr != nil && terminal.Enabled(context.Background(), slog.LevelDebug) {
		slog.New(terminal).Debug("journal unavailable", "error", journalErr)
	}

	return slog.New(&Handler{
		Handler: slogmulti.Fanout(handlers...),
	})
}

func terminalHandler(w io.Writer) slog.Handler {
	options := &slog.HandlerOptions{
		Level: level,
	}
	if *jsonFormat {
		return slog.NewJSONHandler(w, options)
	}
	return slog.NewTextHandler(w, options)
}
