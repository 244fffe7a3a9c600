package notify

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/stockroom/replenish-backend/internal/domain"
	"github.com/stockroom/replenish-backend/pkg/ctxutil"
)

// Dispatch sends every event to each of its recipients. It must be called
// after the transaction that produced the events has committed. Failures
// never abort the remaining sends; each one is logged at WARN and returned
// as a warning.
func (s *Service) Dispatch(ctx context.Context, events []domain.NotificationEvent) []domain.NotificationWarning {
	var (
		mu       sync.Mutex
		warnings []domain.NotificationWarning
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, ev := range events {
		for _, recipient := range ev.Recipients {
			g.Go(func() error {
				err := s.dispatcher.Send(gctx, recipient, ev.Kind, ev.Payload)
				if err == nil {
					return nil
				}

				s.log.WarnContext(ctx, "notification not delivered",
					slog.String("kind", ev.Kind.String()),
					slog.String("recipient_id", recipient.String()),
					slog.String("request_id", ctxutil.RequestIDFromCtx(ctx)),
					slog.String("error", err.Error()),
				)

				mu.Lock()
				warnings = append(warnings, domain.NotificationWarning{Recipient: recipient, Kind: ev.Kind, Err: err})
				mu.Unlock()
				return nil
			})
		}
	}

	_ = g.Wait()
	return warnings
}
